package ui

import (
	"strconv"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/transfer-panel/internal/config"
)

func TestSettingsDialog_LoadsCurrentSettings(t *testing.T) {
	a := test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	s := config.NewSettings(a)
	s.SetTransferDirectory("/tmp/in")
	sd := NewSettingsDialog(s, NewLocalization(), w, nil)

	sd.loadCurrentSettings()

	assert.Equal(t, "/tmp/in", sd.transferDirEntry.Text)
	assert.Equal(t, strconv.Itoa(config.DefaultMaxParallel), sd.maxParallelEntry.Text)
	assert.Equal(t, strconv.Itoa(config.DefaultAnimationMillis), sd.animationEntry.Text)
	assert.Equal(t, strconv.Itoa(config.DefaultCompletedLinger), sd.lingerEntry.Text)
	assert.Equal(t, config.DefaultStartCollapsed, sd.collapsedCheck.Checked)
	assert.Equal(t, config.DefaultRevealOnComplete, sd.revealCheck.Checked)
}

func TestSettingsDialog_Save(t *testing.T) {
	a := test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	s := config.NewSettings(a)
	saved := 0
	sd := NewSettingsDialog(s, NewLocalization(), w, func() { saved++ })
	sd.loadCurrentSettings()

	sd.transferDirEntry.SetText("/tmp/out")
	sd.maxParallelEntry.SetText("4")
	sd.animationEntry.SetText("500")
	sd.lingerEntry.SetText("soon")
	sd.collapsedCheck.SetChecked(false)
	sd.revealCheck.SetChecked(true)
	sd.languageSelect.SetSelected("pt")

	sd.onSave(true)

	assert.Equal(t, 1, saved)
	assert.Equal(t, "/tmp/out", s.GetTransferDirectory())
	assert.Equal(t, 4, s.GetMaxParallelTransfers())
	assert.Equal(t, 500*time.Millisecond, s.GetAnimationDuration())
	// Unparsable input keeps the stored value.
	assert.Equal(t, time.Duration(config.DefaultCompletedLinger)*time.Second, s.GetCompletedLinger())
	assert.False(t, s.GetStartCollapsed())
	assert.True(t, s.GetRevealOnComplete())
	assert.Equal(t, "pt", s.GetLanguage())
}

func TestSettingsDialog_CancelKeepsSettings(t *testing.T) {
	a := test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	s := config.NewSettings(a)
	saved := 0
	sd := NewSettingsDialog(s, NewLocalization(), w, func() { saved++ })
	sd.loadCurrentSettings()
	sd.maxParallelEntry.SetText("9")

	sd.onSave(false)

	assert.Equal(t, 0, saved)
	assert.Equal(t, config.DefaultMaxParallel, s.GetMaxParallelTransfers())
}
