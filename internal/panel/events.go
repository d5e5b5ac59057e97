package panel

import "github.com/ytget/transfer-panel/internal/model"

// EventType identifies a panel state change
type EventType int

const (
	EventItemAdded EventType = iota
	EventItemAttached
	EventItemRemoved
	EventItemChanged
	EventSummaryShown
	EventSummaryUpdated
	EventSummaryRemoved
	EventCollapseStarted
	EventCollapseFinished
	EventCollapseCancelled
)

var eventNames = map[EventType]string{
	EventItemAdded:         "item_added",
	EventItemAttached:      "item_attached",
	EventItemRemoved:       "item_removed",
	EventItemChanged:       "item_changed",
	EventSummaryShown:      "summary_shown",
	EventSummaryUpdated:    "summary_updated",
	EventSummaryRemoved:    "summary_removed",
	EventCollapseStarted:   "collapse_started",
	EventCollapseFinished:  "collapse_finished",
	EventCollapseCancelled: "collapse_cancelled",
}

// String returns the string representation of EventType
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// Summary is a snapshot of the aggregated summary row
type Summary struct {
	State     model.SummaryState
	Percent   int // mean progress of attached progress items
	Count     int // attached progress items
	Collapsed bool
	Phase     model.LayoutPhase
}

// Visible reports whether the summary row is shown.
func (s Summary) Visible() bool {
	return summaryVisible(s.Count)
}

// Event is delivered to subscribers after every mutation. Item is set for
// item events; Summary always reflects the panel right after the mutation.
type Event struct {
	Type    EventType
	Item    model.PanelItem
	Summary Summary
}

// Listener receives panel events. Listeners run with no panel lock held and
// may read or mutate the panel; events caused by a listener are delivered
// after the ones already queued.
type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

func summaryVisible(count int) bool {
	return count > 1
}
