package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/transfer-panel/internal/model"
	"github.com/ytget/transfer-panel/internal/panel"
)

// SummaryRow shows the aggregate "N% complete" line with an expand/collapse
// toggle.
type SummaryRow struct {
	widget.BaseWidget

	summary      panel.Summary
	localization *Localization

	textLabel   *widget.Label
	countLabel  *widget.Label
	progressBar *widget.ProgressBar
	toggleBtn   *widget.Button

	onToggle func()
}

// NewSummaryRow creates a summary row; onToggle runs when the button is tapped.
func NewSummaryRow(localization *Localization, onToggle func()) *SummaryRow {
	s := &SummaryRow{
		localization: localization,
		onToggle:     onToggle,
	}
	s.ExtendBaseWidget(s)

	s.textLabel = widget.NewLabel("")
	s.textLabel.TextStyle = fyne.TextStyle{Bold: true}
	s.countLabel = widget.NewLabel("")
	s.progressBar = widget.NewProgressBar()
	s.progressBar.Max = model.MaxPercent
	s.progressBar.TextFormatter = func() string { return "" }
	s.toggleBtn = widget.NewButton("", func() {
		if s.onToggle != nil {
			s.onToggle()
		}
	})
	s.toggleBtn.Importance = widget.LowImportance

	s.Update(panel.Summary{Collapsed: true})
	return s
}

// Update renders a summary snapshot. Must run on the UI goroutine.
func (s *SummaryRow) Update(summary panel.Summary) {
	s.summary = summary
	s.textLabel.SetText(s.localization.SummaryText(summary.Percent))
	s.countLabel.SetText(s.localization.CountText(summary.Count))
	s.progressBar.SetValue(float64(summary.Percent))

	if summary.Collapsed {
		s.toggleBtn.SetText(s.localization.GetText(KeyShowDetails))
	} else {
		s.toggleBtn.SetText(s.localization.GetText(KeyHideDetails))
	}
}

// Text returns the rendered summary label
func (s *SummaryRow) Text() string {
	return s.textLabel.Text
}

// MinSize keeps the summary as wide as the item rows
func (s *SummaryRow) MinSize() fyne.Size {
	return atLeastRowWidth(s.BaseWidget.MinSize())
}

// CreateRenderer creates the widget renderer
func (s *SummaryRow) CreateRenderer() fyne.WidgetRenderer {
	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(s.countLabel, s.toggleBtn),
		s.textLabel,
	)
	return widget.NewSimpleRenderer(container.NewVBox(header, s.progressBar, widget.NewSeparator()))
}
