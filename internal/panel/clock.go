package panel

import "time"

// DefaultAnimationDuration matches the collapse/expand transition length.
const DefaultAnimationDuration = 200 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules animation completion callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns the wall-clock timer source.
func RealClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// animation is the single in-flight collapse/expand transition of a panel.
type animation struct {
	seq        uint64
	collapsing bool
	timer      Timer
}
