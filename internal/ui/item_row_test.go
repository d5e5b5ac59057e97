package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/transfer-panel/internal/model"
)

func progressItem() model.PanelItem {
	return model.PanelItem{
		ID:              "a",
		Kind:            model.KindProgress,
		Status:          model.ItemStatusProgress,
		ProgressPercent: 42,
		Attached:        true,
		PrimaryText:     "file.zip",
		SecondaryText:   "1.0MB/s · 00:05",
	}
}

func TestItemRow_Progress(t *testing.T) {
	test.NewApp()
	row := NewItemRow(progressItem(), NewLocalization())

	assert.Equal(t, "file.zip", row.titleLabel.Text)
	assert.Equal(t, "1.0MB/s · 00:05", row.secondaryLabel.Text)
	assert.Equal(t, "42%", row.percentLabel.Text)
	assert.Equal(t, 42.0, row.progressBar.Value)
	assert.Equal(t, IconPlay, row.statusLabel.Text)

	assert.True(t, row.cancelBtn.Visible())
	assert.False(t, row.dismissBtn.Visible())
	assert.False(t, row.revealBtn.Visible())
}

func TestItemRow_Done(t *testing.T) {
	test.NewApp()
	row := NewItemRow(progressItem(), NewLocalization())

	item := progressItem()
	item.Kind = model.KindOther
	item.Status = model.ItemStatusDone
	item.ProgressPercent = 100
	row.Update(item)

	assert.Equal(t, item, row.Item())
	assert.Equal(t, IconDone, row.statusLabel.Text)
	assert.Empty(t, row.percentLabel.Text)
	assert.False(t, row.cancelBtn.Visible())
	assert.True(t, row.dismissBtn.Visible())
	assert.True(t, row.revealBtn.Visible())
}

func TestItemRow_Error(t *testing.T) {
	test.NewApp()
	item := progressItem()
	item.Kind = model.KindOther
	item.Status = model.ItemStatusError
	item.SecondaryText = "unexpected status\n404"
	row := NewItemRow(item, NewLocalization())

	assert.Equal(t, IconError, row.statusLabel.Text)
	assert.Equal(t, "unexpected status 404", row.secondaryLabel.Text)
	assert.True(t, row.dismissBtn.Visible())
	assert.False(t, row.revealBtn.Visible())
}

func TestItemRow_Callbacks(t *testing.T) {
	test.NewApp()
	row := NewItemRow(progressItem(), NewLocalization())

	var cancelled, dismissed, revealed string
	row.SetCallbacks(
		func(id string) { cancelled = id },
		func(id string) { dismissed = id },
		func(id string) { revealed = id },
	)

	test.Tap(row.cancelBtn)
	test.Tap(row.dismissBtn)
	test.Tap(row.revealBtn)

	assert.Equal(t, "a", cancelled)
	assert.Equal(t, "a", dismissed)
	assert.Equal(t, "a", revealed)
}

func TestItemRow_RefreshTexts(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()
	row := NewItemRow(progressItem(), loc)

	loc.SetLanguage("pt")
	row.RefreshTexts()

	assert.Equal(t, "Cancelar", row.cancelBtn.Text)
	assert.Equal(t, "Descartar", row.dismissBtn.Text)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", cleanText(" a\nb\tc\r"))
	assert.Equal(t, "", cleanText("\n"))
}
