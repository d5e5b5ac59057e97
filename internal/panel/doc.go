package panel

// Package panel implements the progress aggregation panel: an ordered set of
// progress-bearing items, the derived summary row shown while more than one
// progress item is attached, and the collapse/expand animation that switches
// between the summary-only and full-list layouts.
//
// The panel owns item state only. Renderers subscribe to events and
// materialise or destroy their visual nodes in response; the panel never
// holds references into a render tree.
