package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconDone     = "✔"
	IconError    = "❌"
	IconInfo     = "ℹ"
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (ItemRow / SummaryRow)
const (
	StatusLabelWidth  float32 = 28
	PercentLabelWidth float32 = 48

	RowMinWidth float32 = 400
)

// Notification behavior
const (
	NotificationAutoHide = 4 * time.Second
)
