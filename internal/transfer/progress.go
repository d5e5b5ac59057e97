package transfer

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/ytget/transfer-panel/internal/model"
)

// DefaultProgressInterval is the minimum gap between progress reports.
const DefaultProgressInterval = 250 * time.Millisecond

// progressWriter counts copied bytes and reports at most once per interval.
type progressWriter struct {
	done    int64
	limiter *rate.Limiter
	report  func(done int64)
}

func newProgressWriter(interval time.Duration, report func(done int64)) *progressWriter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &progressWriter{limiter: rate.NewLimiter(limit, 1), report: report}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.done += int64(len(p))
	if w.limiter.Allow() {
		w.report(w.done)
	}
	return len(p), nil
}

// applyProgress fills byte counters, percent, speed and ETA.
func applyProgress(task *model.TransferTask, done, total int64, elapsed time.Duration) {
	task.BytesDone = done
	task.BytesTotal = total

	if total > 0 {
		task.Percent = model.ClampPercent(int(done * 100 / total))
	}

	task.ETASec = -1
	secs := elapsed.Seconds()
	if secs <= 0 {
		return
	}
	bytesPerSecond := float64(done) / secs
	task.Speed = formatSpeed(bytesPerSecond)
	if total > 0 && bytesPerSecond > 0 && done < total {
		task.ETASec = int(float64(total-done) / bytesPerSecond)
	}
}

func formatSpeed(bytesPerSecond float64) string {
	switch {
	case bytesPerSecond >= 1024*1024:
		return fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
	case bytesPerSecond >= 1024:
		return fmt.Sprintf("%.1fKB/s", bytesPerSecond/1024)
	default:
		return fmt.Sprintf("%.0fB/s", bytesPerSecond)
	}
}
