package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/transfer-panel/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	transferDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	animationEntry   *widget.Entry
	lingerEntry      *widget.Entry
	collapsedCheck   *widget.Check
	revealCheck      *widget.Check
	languageSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// new values are stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.transferDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	transferDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.transferDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(strconv.Itoa(config.MinParallel) + "-" + strconv.Itoa(config.MaxParallel))

	sd.animationEntry = widget.NewEntry()
	sd.animationEntry.SetPlaceHolder(strconv.Itoa(config.MinAnimationMillis) + "-" + strconv.Itoa(config.MaxAnimationMillis))

	sd.lingerEntry = widget.NewEntry()
	sd.lingerEntry.SetPlaceHolder("0-" + strconv.Itoa(config.MaxCompletedLinger))

	sd.collapsedCheck = widget.NewCheck(text(KeyStartCollapsed), nil)
	sd.revealCheck = widget.NewCheck(text(KeyRevealOnComplete), nil)

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyTransferDirectory), transferDirRow),
		widget.NewFormItem(text(KeyMaxParallel), sd.maxParallelEntry),
		widget.NewFormItem(text(KeyAnimationMillis), sd.animationEntry),
		widget.NewFormItem(text(KeyCompletedLinger), sd.lingerEntry),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
	)

	content := container.NewVBox(form, sd.collapsedCheck, sd.revealCheck)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(520, 380))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.transferDirEntry.SetText(sd.settings.GetTransferDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelTransfers()))
	sd.animationEntry.SetText(strconv.FormatInt(sd.settings.GetAnimationDuration().Milliseconds(), 10))
	sd.lingerEntry.SetText(strconv.Itoa(int(sd.settings.GetCompletedLinger() / time.Second)))
	sd.collapsedCheck.SetChecked(sd.settings.GetStartCollapsed())
	sd.revealCheck.SetChecked(sd.settings.GetRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.transferDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave stores the entered values. Unparsable numbers keep the old value;
// out-of-range ones are clamped by Settings.
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.transferDirEntry.Text; dir != "" {
		sd.settings.SetTransferDirectory(dir)
	}

	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelTransfers(n)
	}

	if ms, err := strconv.Atoi(sd.animationEntry.Text); err == nil {
		sd.settings.SetAnimationDuration(time.Duration(ms) * time.Millisecond)
	}

	if sec, err := strconv.Atoi(sd.lingerEntry.Text); err == nil {
		sd.settings.SetCompletedLinger(time.Duration(sec) * time.Second)
	}

	sd.settings.SetStartCollapsed(sd.collapsedCheck.Checked)
	sd.settings.SetRevealOnComplete(sd.revealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
