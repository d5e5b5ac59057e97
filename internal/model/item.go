package model

// ItemKind decides whether an item takes part in progress aggregation
type ItemKind int

const (
	// KindProgress items are counted by the summary
	KindProgress ItemKind = iota
	// KindOther covers finished, failed and informational items
	KindOther
)

// String returns the string representation of ItemKind
func (k ItemKind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// ItemStatus is the visual indicator shown on a panel item
type ItemStatus string

const (
	ItemStatusProgress ItemStatus = "progress"
	ItemStatusDone     ItemStatus = "done"
	ItemStatusError    ItemStatus = "error"
	ItemStatusInfo     ItemStatus = "info"
)

// Kind maps the indicator to the aggregation kind
func (s ItemStatus) Kind() ItemKind {
	if s == ItemStatusProgress || s == "" {
		return KindProgress
	}
	return KindOther
}

// Percent bounds
const (
	MinPercent = 0
	MaxPercent = 100
)

// PanelItem represents one tracked operation hosted by a panel
type PanelItem struct {
	ID              string
	Kind            ItemKind
	Status          ItemStatus
	ProgressPercent int
	Attached        bool
	PrimaryText     string
	SecondaryText   string
}

// NewPanelItem creates a detached progress item at 0%
func NewPanelItem(id string) *PanelItem {
	return &PanelItem{
		ID:     id,
		Kind:   KindProgress,
		Status: ItemStatusProgress,
	}
}

// IsAggregated reports whether the item counts towards the summary
func (it *PanelItem) IsAggregated() bool {
	return it.Attached && it.Kind == KindProgress
}

// SetProgress stores percent clamped to 0..100
func (it *PanelItem) SetProgress(percent int) {
	it.ProgressPercent = ClampPercent(percent)
}

// SetStatus updates the indicator and the derived kind
func (it *PanelItem) SetStatus(status ItemStatus) {
	if status == "" {
		status = ItemStatusProgress
	}
	it.Status = status
	it.Kind = status.Kind()
}

// Clone returns a value copy safe to hand to listeners
func (it *PanelItem) Clone() PanelItem {
	return *it
}

// ClampPercent limits percent to the 0..100 range
func ClampPercent(percent int) int {
	if percent < MinPercent {
		return MinPercent
	}
	if percent > MaxPercent {
		return MaxPercent
	}
	return percent
}
