package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/model"
	"github.com/ytget/transfer-panel/internal/panel"
)

// DisplayPanel renders a panel.Panel: one ItemRow per attached item and a
// SummaryRow while the panel shows a summary. The collapsed layout hides the
// item rows once the collapse transition settles.
type DisplayPanel struct {
	widget.BaseWidget

	panel        *panel.Panel
	localization *Localization
	logger       *zap.Logger

	rows    map[string]*ItemRow
	order   []string
	summary *SummaryRow
	list    *fyne.Container
	empty   *widget.Label
	content *fyne.Container

	unsubscribe func()

	onCancel  func(id string)
	onDismiss func(id string)
	onReveal  func(id string)
}

// NewDisplayPanel creates the widget and subscribes it to p.
func NewDisplayPanel(p *panel.Panel, localization *Localization, logger *zap.Logger) *DisplayPanel {
	d := &DisplayPanel{
		panel:        p,
		localization: localization,
		logger:       logging.OrNop(logger),
		rows:         make(map[string]*ItemRow),
	}
	d.ExtendBaseWidget(d)

	d.summary = NewSummaryRow(localization, p.Toggle)
	d.summary.Hide()
	d.list = container.NewVBox()
	d.empty = widget.NewLabel(localization.GetText(KeyNoTransfers))
	d.empty.Alignment = fyne.TextAlignCenter
	d.content = container.NewVBox(d.summary, d.list, d.empty)

	d.unsubscribe = p.Subscribe(d.onEvent)
	d.sync()
	return d
}

// SetCallbacks sets the actions wired into every row
func (d *DisplayPanel) SetCallbacks(onCancel, onDismiss, onReveal func(id string)) {
	d.onCancel = onCancel
	d.onDismiss = onDismiss
	d.onReveal = onReveal
	for _, row := range d.rows {
		row.SetCallbacks(onCancel, onDismiss, onReveal)
	}
}

// RefreshTexts re-renders localized strings
func (d *DisplayPanel) RefreshTexts() {
	d.empty.SetText(d.localization.GetText(KeyNoTransfers))
	d.summary.Update(d.panel.Summary())
	for _, row := range d.rows {
		row.RefreshTexts()
	}
}

// Close stops listening to the panel
func (d *DisplayPanel) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// RowIDs returns the ids of rendered item rows in display order
func (d *DisplayPanel) RowIDs() []string {
	return append([]string(nil), d.order...)
}

// ListVisible reports whether the item rows are shown
func (d *DisplayPanel) ListVisible() bool {
	return d.list.Visible()
}

// CreateRenderer creates the widget renderer
func (d *DisplayPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}

// onEvent runs on the goroutine that mutated the panel; rendering is
// handed to the UI goroutine.
func (d *DisplayPanel) onEvent(ev panel.Event) {
	fyne.Do(func() { d.apply(ev) })
}

func (d *DisplayPanel) apply(ev panel.Event) {
	switch ev.Type {
	case panel.EventItemAttached:
		d.upsertRow(ev.Item)
	case panel.EventItemChanged:
		if row, ok := d.rows[ev.Item.ID]; ok {
			row.Update(ev.Item)
		}
	case panel.EventItemRemoved:
		d.removeRow(ev.Item.ID)
	}
	d.applySummary(ev.Summary)
}

// sync renders the panel's current state
func (d *DisplayPanel) sync() {
	for _, item := range d.panel.Items() {
		if item.Attached {
			d.upsertRow(item)
		}
	}
	d.applySummary(d.panel.Summary())
}

func (d *DisplayPanel) upsertRow(item model.PanelItem) {
	if row, ok := d.rows[item.ID]; ok {
		row.Update(item)
		return
	}

	row := NewItemRow(item, d.localization)
	row.SetCallbacks(d.onCancel, d.onDismiss, d.onReveal)
	d.rows[item.ID] = row
	d.order = append(d.order, item.ID)
	d.list.Add(row)
	d.logger.Debug("item row created", zap.String("id", item.ID))
}

func (d *DisplayPanel) removeRow(id string) {
	row, ok := d.rows[id]
	if !ok {
		return
	}
	delete(d.rows, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.list.Remove(row)
	d.logger.Debug("item row destroyed", zap.String("id", id))
}

func (d *DisplayPanel) applySummary(s panel.Summary) {
	if s.Visible() {
		d.summary.Update(s)
		d.summary.Show()
	} else {
		d.summary.Hide()
	}

	// Rows stay visible while a collapse is still running.
	if s.Visible() && s.Collapsed && s.Phase == model.LayoutSettled {
		d.list.Hide()
	} else {
		d.list.Show()
	}

	if len(d.rows) == 0 {
		d.empty.Show()
	} else {
		d.empty.Hide()
	}
	d.Refresh()
}
