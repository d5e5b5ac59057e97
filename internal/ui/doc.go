package ui

// Package ui contains the Fyne desktop interface. DisplayPanel renders a
// progress panel from its events; RootUI wires the source entry, the
// settings dialog and item actions to the transfer tracker. All widget
// mutation triggered from other goroutines goes through fyne.Do, and all UI
// strings are localized via Localization.
