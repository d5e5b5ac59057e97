package ui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/config"
	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/model"
	"github.com/ytget/transfer-panel/internal/panel"
	"github.com/ytget/transfer-panel/internal/platform"
	"github.com/ytget/transfer-panel/internal/tracker"
	"github.com/ytget/transfer-panel/internal/transfer"
)

const fileScheme = "file://"

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger

	panel   *panel.Panel
	tracker *tracker.Tracker
	svc     transfer.Transferrer

	sourceEntry *widget.Entry
	addBtn      *widget.Button
	browseBtn   *widget.Button
	settingsBtn *widget.Button
	display     *DisplayPanel

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSeq       int

	// touched only on the UI goroutine
	notified map[string]struct{}

	reveal      func(path string) error
	unsubscribe func()
}

// NewRootUI creates and initializes the main UI
func NewRootUI(
	window fyne.Window,
	settings *config.Settings,
	localization *Localization,
	p *panel.Panel,
	tr *tracker.Tracker,
	svc transfer.Transferrer,
	logger *zap.Logger,
) *RootUI {
	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logging.OrNop(logger),
		panel:        p,
		tracker:      tr,
		svc:          svc,
		notified:     make(map[string]struct{}),
		reveal:       platform.OpenFileInManager,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.unsubscribe = p.Subscribe(ui.onPanelEvent)
	return ui
}

// Close detaches the UI from the panel
func (ui *RootUI) Close() {
	if ui.unsubscribe != nil {
		ui.unsubscribe()
		ui.unsubscribe = nil
	}
	ui.display.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.sourceEntry = widget.NewEntry()
	ui.sourceEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterSource))
	ui.sourceEntry.Validator = validateSource
	// Trigger a transfer when user presses Enter in the source field
	ui.sourceEntry.OnSubmitted = func(string) {
		ui.onAddClick()
	}

	ui.addBtn = widget.NewButton(ui.localization.GetText(KeyAdd), ui.onAddClick)
	ui.addBtn.Importance = widget.HighImportance

	ui.browseBtn = widget.NewButton(IconFolder, ui.onBrowseFile)
	ui.browseBtn.Importance = widget.LowImportance

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil,
		ui.settingsBtn,
		container.NewHBox(ui.browseBtn, ui.addBtn),
		ui.sourceEntry,
	)

	// Notification panel under the source input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.display = NewDisplayPanel(ui.panel, ui.localization, ui.logger)
	ui.display.SetCallbacks(ui.onCancelItem, ui.onDismissItem, ui.onRevealItem)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationContainer),
		nil,
		nil,
		nil,
		container.NewVScroll(ui.display),
	)

	ui.window.SetContent(content)
	ui.logger.Debug("ui setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.sourceEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterSource))
	ui.addBtn.SetText(ui.localization.GetText(KeyAdd))
	ui.display.RefreshTexts()
}

// validateSource accepts http(s) URLs and paths of existing regular files
func validateSource(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil // Empty is allowed
	}

	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		parsedURL, err := url.Parse(input)
		if err != nil {
			return err
		}
		if parsedURL.Host == "" {
			return errors.New("URL has no host")
		}
		return nil
	}

	if strings.Contains(input, "://") && !strings.HasPrefix(lower, fileScheme) {
		return errors.New("only http://, https:// and local files are supported")
	}

	path := strings.TrimPrefix(input, fileScheme)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// onAddClick handles the add button click
func (ui *RootUI) onAddClick() {
	source := cleanText(ui.sourceEntry.Text)
	if source == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterSource))
		return
	}

	if err := validateSource(source); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidSource) + ": " + err.Error())
		return
	}

	task, err := ui.tracker.Add(source)
	if err != nil {
		if errors.Is(err, transfer.ErrDuplicateSource) {
			ui.showNotification(ui.localization.GetText(KeyAlreadyInQueue))
		} else {
			ui.showNotification(err.Error())
		}
		return
	}

	ui.logger.Info("transfer added", zap.String("id", task.ID), zap.String("source", source))
	ui.sourceEntry.SetText("")
	ui.showNotification(ui.localization.GetText(KeyTransferAdded))
}

// onBrowseFile picks a local file as the source
func (ui *RootUI) onBrowseFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.sourceEntry.SetText(path)
	}, ui.window)
}

func (ui *RootUI) onCancelItem(id string) {
	if err := ui.tracker.Cancel(id); err != nil {
		ui.logger.Warn("failed to stop transfer", zap.String("id", id), zap.Error(err))
		ui.showNotification(ui.localization.GetText(KeyErrorStopping) + ": " + err.Error())
	}
}

func (ui *RootUI) onDismissItem(id string) {
	ui.tracker.Dismiss(id)
}

// onRevealItem shows a completed transfer in the system file manager
func (ui *RootUI) onRevealItem(id string) {
	task, ok := ui.svc.GetTask(id)
	if !ok || task.Destination == "" {
		return
	}
	if err := ui.reveal(task.Destination); err != nil {
		ui.logger.Error("failed to reveal file", zap.String("path", task.Destination), zap.Error(err))
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes stored settings into the running components
func (ui *RootUI) applySettings() {
	ui.svc.SetDestinationDir(ui.settings.GetTransferDirectory())
	ui.svc.SetMaxParallel(ui.settings.GetMaxParallelTransfers())
	ui.tracker.SetLinger(ui.settings.GetCompletedLinger())
	ui.tracker.SetRevealOnComplete(ui.settings.GetRevealOnComplete())
	ui.panel.SetAnimationDuration(ui.settings.GetAnimationDuration())

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	ui.showNotification(ui.localization.GetText(KeySettingsSaved))
}

// onPanelEvent sends a system notification when an item turns done
func (ui *RootUI) onPanelEvent(ev panel.Event) {
	switch {
	case ev.Type == panel.EventItemChanged && ev.Item.Status == model.ItemStatusDone:
		item := ev.Item
		fyne.Do(func() {
			if _, seen := ui.notified[item.ID]; seen {
				return
			}
			ui.notified[item.ID] = struct{}{}
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   ui.localization.GetText(KeyTransferCompleted),
				Content: item.PrimaryText,
			})
		})
	case ev.Type == panel.EventItemRemoved:
		id := ev.Item.ID
		fyne.Do(func() { delete(ui.notified, id) })
	}
}

// showNotification displays a message in the notification panel under the
// source input. It hides itself after a while.
func (ui *RootUI) showNotification(message string) {
	fyne.Do(func() {
		ui.notificationSeq++
		seq := ui.notificationSeq
		ui.notificationLabel.SetText(message)
		ui.notificationContainer.Show()

		time.AfterFunc(NotificationAutoHide, func() {
			fyne.Do(func() {
				if ui.notificationSeq == seq {
					ui.notificationContainer.Hide()
				}
			})
		})
	})
}
