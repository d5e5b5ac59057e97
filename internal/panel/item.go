package panel

import (
	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/model"
)

// Item is a handle to one tracked operation hosted by a Panel. Its state is
// owned by the panel; setters route through the panel so the summary stays
// in step. Handles of removed items turn every setter into a no-op.
type Item struct {
	panel *Panel
	state model.PanelItem
}

// ID returns the item identifier.
func (it *Item) ID() string {
	return it.state.ID
}

// Snapshot returns a copy of the current item state.
func (it *Item) Snapshot() model.PanelItem {
	it.panel.mu.Lock()
	defer it.panel.mu.Unlock()
	return it.state.Clone()
}

// SetProgress stores percent (clamped to 0..100) and refreshes the summary
// percentage.
func (it *Item) SetProgress(percent int) {
	p := it.panel
	p.mu.Lock()
	if !p.ownsLocked(it) {
		p.mu.Unlock()
		return
	}

	percent = model.ClampPercent(percent)
	if it.state.ProgressPercent == percent {
		p.mu.Unlock()
		return
	}
	it.state.ProgressPercent = percent

	events := []Event{p.eventLocked(EventItemChanged, it)}
	if p.updateProgressLocked() && summaryVisible(p.count) {
		events = append(events, p.eventLocked(EventSummaryUpdated, nil))
	}
	p.unlockAndDispatch(events)
}

// SetText updates the primary and secondary text lines.
func (it *Item) SetText(primary, secondary string) {
	p := it.panel
	p.mu.Lock()
	if !p.ownsLocked(it) || (it.state.PrimaryText == primary && it.state.SecondaryText == secondary) {
		p.mu.Unlock()
		return
	}
	it.state.PrimaryText = primary
	it.state.SecondaryText = secondary
	p.unlockAndDispatch([]Event{p.eventLocked(EventItemChanged, it)})
}

// SetStatus changes the indicator. Non-progress indicators take the item
// out of the summary aggregation.
func (it *Item) SetStatus(status model.ItemStatus) {
	p := it.panel
	p.mu.Lock()
	if !p.ownsLocked(it) {
		p.mu.Unlock()
		return
	}

	prevKind := it.state.Kind
	prevStatus := it.state.Status
	it.state.SetStatus(status)
	if it.state.Status == prevStatus {
		p.mu.Unlock()
		return
	}

	p.logger.Debug("panel item status changed",
		zap.String("id", it.state.ID),
		zap.String("status", string(it.state.Status)))

	events := []Event{p.eventLocked(EventItemChanged, it)}
	if it.state.Kind != prevKind {
		events = p.recomputeLocked(events)
	}
	p.unlockAndDispatch(events)
}
