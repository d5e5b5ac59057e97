package model

// SummaryState is the visibility state of the aggregated summary row
type SummaryState int

const (
	// SummaryNone means at most one progress item is attached
	SummaryNone SummaryState = iota
	// SummaryCollapsed shows only the summary row
	SummaryCollapsed
	// SummaryExpanded shows the summary row and the full item list
	SummaryExpanded
)

// String returns the string representation of SummaryState
func (s SummaryState) String() string {
	switch s {
	case SummaryNone:
		return "none"
	case SummaryCollapsed:
		return "collapsed"
	case SummaryExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// LayoutPhase tracks the item list animation
type LayoutPhase int

const (
	LayoutSettled LayoutPhase = iota
	LayoutExpanding
	LayoutCollapsing
)

// String returns the string representation of LayoutPhase
func (p LayoutPhase) String() string {
	switch p {
	case LayoutSettled:
		return "settled"
	case LayoutExpanding:
		return "expanding"
	case LayoutCollapsing:
		return "collapsing"
	default:
		return "unknown"
	}
}
