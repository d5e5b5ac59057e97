package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/transfer-panel/internal/model"
)

// ItemRow renders one panel item: title, progress bar, percent, secondary
// text and the actions that fit its status.
type ItemRow struct {
	widget.BaseWidget

	item         model.PanelItem
	localization *Localization

	// UI components
	statusLabel    *widget.Label
	titleLabel     *widget.Label
	secondaryLabel *widget.Label
	percentLabel   *widget.Label
	progressBar    *widget.ProgressBar

	// Action buttons
	cancelBtn  *widget.Button
	dismissBtn *widget.Button
	revealBtn  *widget.Button

	// Callbacks
	onCancel  func(id string)
	onDismiss func(id string)
	onReveal  func(id string)
}

// NewItemRow creates a row for item
func NewItemRow(item model.PanelItem, localization *Localization) *ItemRow {
	r := &ItemRow{
		item:         item,
		localization: localization,
	}
	r.ExtendBaseWidget(r)
	r.createUI()
	r.updateFromItem()
	return r
}

// SetCallbacks sets the action callbacks
func (r *ItemRow) SetCallbacks(onCancel, onDismiss, onReveal func(id string)) {
	r.onCancel = onCancel
	r.onDismiss = onDismiss
	r.onReveal = onReveal
}

// Item returns the last rendered item state
func (r *ItemRow) Item() model.PanelItem {
	return r.item
}

// Update renders a new item state. Must run on the UI goroutine.
func (r *ItemRow) Update(item model.PanelItem) {
	r.item = item
	r.updateFromItem()
	r.Refresh()
}

// RefreshTexts re-reads localized button labels
func (r *ItemRow) RefreshTexts() {
	r.cancelBtn.SetText(r.localization.GetText(KeyCancel))
	r.dismissBtn.SetText(r.localization.GetText(KeyDismiss))
	r.revealBtn.SetText(r.localization.GetText(KeyReveal))
}

func (r *ItemRow) createUI() {
	r.statusLabel = widget.NewLabel("")

	r.titleLabel = widget.NewLabel("")
	r.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.titleLabel.Truncation = fyne.TextTruncateEllipsis

	r.secondaryLabel = widget.NewLabel("")
	r.secondaryLabel.TextStyle = fyne.TextStyle{Monospace: true}
	r.secondaryLabel.Truncation = fyne.TextTruncateEllipsis

	r.percentLabel = widget.NewLabel("")
	r.percentLabel.Alignment = fyne.TextAlignTrailing

	r.progressBar = widget.NewProgressBar()
	r.progressBar.Max = model.MaxPercent
	r.progressBar.TextFormatter = func() string { return "" }

	r.cancelBtn = widget.NewButton(r.localization.GetText(KeyCancel), func() {
		if r.onCancel != nil {
			r.onCancel(r.item.ID)
		}
	})
	r.dismissBtn = widget.NewButton(r.localization.GetText(KeyDismiss), func() {
		if r.onDismiss != nil {
			r.onDismiss(r.item.ID)
		}
	})
	r.revealBtn = widget.NewButton(r.localization.GetText(KeyReveal), func() {
		if r.onReveal != nil {
			r.onReveal(r.item.ID)
		}
	})
}

// updateFromItem updates UI components based on item state
func (r *ItemRow) updateFromItem() {
	r.titleLabel.SetText(cleanText(r.item.PrimaryText))
	r.secondaryLabel.SetText(cleanText(r.item.SecondaryText))
	r.progressBar.SetValue(float64(r.item.ProgressPercent))
	r.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, r.item.ProgressPercent))

	switch r.item.Status {
	case model.ItemStatusDone:
		r.statusLabel.Importance = widget.SuccessImportance
		r.statusLabel.SetText(IconDone)
		r.percentLabel.SetText("")
	case model.ItemStatusError:
		r.statusLabel.Importance = widget.DangerImportance
		r.statusLabel.SetText(IconError)
	case model.ItemStatusInfo:
		r.statusLabel.Importance = widget.MediumImportance
		r.statusLabel.SetText(IconInfo)
	default:
		r.statusLabel.Importance = widget.HighImportance
		r.statusLabel.SetText(IconPlay)
	}

	r.updateButtons()
}

// updateButtons shows cancel while an item is in progress and dismiss after
func (r *ItemRow) updateButtons() {
	if r.item.Kind == model.KindProgress {
		r.cancelBtn.Show()
		r.dismissBtn.Hide()
	} else {
		r.cancelBtn.Hide()
		r.dismissBtn.Show()
	}

	if r.item.Status == model.ItemStatusDone {
		r.revealBtn.Show()
	} else {
		r.revealBtn.Hide()
	}
}

// MinSize keeps rows at least RowMinWidth wide
func (r *ItemRow) MinSize() fyne.Size {
	return atLeastRowWidth(r.BaseWidget.MinSize())
}

// CreateRenderer creates the widget renderer
func (r *ItemRow) CreateRenderer() fyne.WidgetRenderer {
	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	actions := container.NewHBox(r.revealBtn, r.cancelBtn, r.dismissBtn)
	header := container.NewBorder(nil, nil,
		fixedWidth(StatusLabelWidth, r.statusLabel),
		actions,
		r.titleLabel,
	)
	progress := container.NewBorder(nil, nil, nil,
		fixedWidth(PercentLabelWidth, r.percentLabel),
		r.progressBar,
	)

	return widget.NewSimpleRenderer(container.NewVBox(
		header,
		progress,
		r.secondaryLabel,
		widget.NewSeparator(),
	))
}

func atLeastRowWidth(size fyne.Size) fyne.Size {
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	return size
}

// cleanText flattens control whitespace that breaks single-line labels
func cleanText(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
