package ui

import (
	"fmt"
	"sync"

	"github.com/ytget/transfer-panel/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAdd               = "add"
	KeyBrowse            = "browse"
	KeyCancel            = "cancel"
	KeyDismiss           = "dismiss"
	KeyReveal            = "reveal"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyTransferDirectory = "transfer_directory"
	KeyMaxParallel       = "max_parallel"
	KeyAnimationMillis   = "animation_millis"
	KeyCompletedLinger   = "completed_linger"
	KeyStartCollapsed    = "start_collapsed"
	KeyRevealOnComplete  = "reveal_on_complete"
	KeySave              = "save"
	KeyEnterSource       = "enter_source"
	KeySettingsSaved     = "settings_saved"
	KeyTransferAdded     = "transfer_added"
	KeyTransferCompleted = "transfer_completed"
	KeyErrorStopping     = "error_stopping"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyInvalidSource     = "invalid_source"
	KeyPleaseEnterSource = "please_enter_source"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyNoTransfers       = "no_transfers"

	// Summary row
	KeySummaryComplete = "summary_complete"
	KeySummaryCount    = "summary_count"
	KeyShowDetails     = "show_details"
	KeyHideDetails     = "hide_details"

	// Task statuses
	KeyStatusPending   = "status_pending"
	KeyStatusStarting  = "status_starting"
	KeyStatusRunning   = "status_running"
	KeyStatusStopping  = "status_stopping"
	KeyStatusStopped   = "status_stopped"
	KeyStatusCompleted = "status_completed"
	KeyStatusError     = "status_error"
)

var statusKeys = map[model.TaskStatus]string{
	model.TaskStatusPending:   KeyStatusPending,
	model.TaskStatusStarting:  KeyStatusStarting,
	model.TaskStatusRunning:   KeyStatusRunning,
	model.TaskStatusStopping:  KeyStatusStopping,
	model.TaskStatusStopped:   KeyStatusStopped,
	model.TaskStatusCompleted: KeyStatusCompleted,
	model.TaskStatusError:     KeyStatusError,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	// Final fallback - return key itself
	return key
}

// SummaryText renders the summary label, e.g. "42% complete"
func (l *Localization) SummaryText(percent int) string {
	return fmt.Sprintf(l.GetText(KeySummaryComplete), percent)
}

// CountText renders how many transfers the summary covers
func (l *Localization) CountText(count int) string {
	return fmt.Sprintf(l.GetText(KeySummaryCount), count)
}

// StatusLabel returns the localized name of a task status
func (l *Localization) StatusLabel(status model.TaskStatus) string {
	if key, ok := statusKeys[status]; ok {
		return l.GetText(key)
	}
	return status.String()
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Transfers",
		KeyAdd:               "Add",
		KeyBrowse:            "Browse",
		KeyCancel:            "Cancel",
		KeyDismiss:           "Dismiss",
		KeyReveal:            "Show",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyTransferDirectory: "Destination Directory",
		KeyMaxParallel:       "Max Parallel Transfers",
		KeyAnimationMillis:   "Summary Animation (ms)",
		KeyCompletedLinger:   "Keep Completed Items (s)",
		KeyStartCollapsed:    "Start with summary collapsed",
		KeyRevealOnComplete:  "Show files when done",
		KeySave:              "Save",
		KeyEnterSource:       "Enter a URL (https://...) or a local file path",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyTransferAdded:     "Transfer added to queue",
		KeyTransferCompleted: "Transfer completed",
		KeyErrorStopping:     "Error stopping transfer",
		KeyErrorOpeningFile:  "Error opening file",
		KeyInvalidSource:     "Invalid source",
		KeyPleaseEnterSource: "Please enter a URL or a file path",
		KeyAlreadyInQueue:    "Already in queue",
		KeyNoTransfers:       "No transfers yet",
		KeySummaryComplete:   "%d%% complete",
		KeySummaryCount:      "%d transfers",
		KeyShowDetails:       "Show details",
		KeyHideDetails:       "Hide details",
		KeyStatusPending:     "Pending",
		KeyStatusStarting:    "Starting",
		KeyStatusRunning:     "Running",
		KeyStatusStopping:    "Stopping",
		KeyStatusStopped:     "Stopped",
		KeyStatusCompleted:   "Completed",
		KeyStatusError:       "Error",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Передачи",
		KeyAdd:               "Добавить",
		KeyBrowse:            "Обзор",
		KeyCancel:            "Отмена",
		KeyDismiss:           "Убрать",
		KeyReveal:            "Показать",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyTransferDirectory: "Папка назначения",
		KeyMaxParallel:       "Макс. параллельных",
		KeyAnimationMillis:   "Анимация сводки (мс)",
		KeyCompletedLinger:   "Хранить завершённые (с)",
		KeyStartCollapsed:    "Сворачивать сводку при запуске",
		KeyRevealOnComplete:  "Показывать файлы по завершении",
		KeySave:              "Сохранить",
		KeyEnterSource:       "Введите URL (https://...) или путь к файлу",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyTransferAdded:     "Передача добавлена в очередь",
		KeyTransferCompleted: "Передача завершена",
		KeyErrorStopping:     "Ошибка остановки передачи",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyInvalidSource:     "Неверный источник",
		KeyPleaseEnterSource: "Пожалуйста, введите URL или путь к файлу",
		KeyAlreadyInQueue:    "Уже в очереди",
		KeyNoTransfers:       "Передач пока нет",
		KeySummaryComplete:   "Выполнено %d%%",
		KeySummaryCount:      "Передач: %d",
		KeyShowDetails:       "Подробнее",
		KeyHideDetails:       "Скрыть",
		KeyStatusPending:     "В очереди",
		KeyStatusStarting:    "Запуск",
		KeyStatusRunning:     "Передаётся",
		KeyStatusStopping:    "Остановка",
		KeyStatusStopped:     "Остановлено",
		KeyStatusCompleted:   "Завершено",
		KeyStatusError:       "Ошибка",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Transferências",
		KeyAdd:               "Adicionar",
		KeyBrowse:            "Navegar",
		KeyCancel:            "Cancelar",
		KeyDismiss:           "Descartar",
		KeyReveal:            "Mostrar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyTransferDirectory: "Diretório de Destino",
		KeyMaxParallel:       "Max Transferências Paralelas",
		KeyAnimationMillis:   "Animação do Resumo (ms)",
		KeyCompletedLinger:   "Manter Concluídos (s)",
		KeyStartCollapsed:    "Iniciar com resumo recolhido",
		KeyRevealOnComplete:  "Mostrar arquivos ao concluir",
		KeySave:              "Salvar",
		KeyEnterSource:       "Digite uma URL (https://...) ou caminho de arquivo",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyTransferAdded:     "Transferência adicionada à fila",
		KeyTransferCompleted: "Transferência concluída",
		KeyErrorStopping:     "Erro ao parar transferência",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyInvalidSource:     "Origem inválida",
		KeyPleaseEnterSource: "Por favor, digite uma URL ou caminho",
		KeyAlreadyInQueue:    "Já na fila",
		KeyNoTransfers:       "Nenhuma transferência ainda",
		KeySummaryComplete:   "%d%% concluído",
		KeySummaryCount:      "%d transferências",
		KeyShowDetails:       "Mostrar detalhes",
		KeyHideDetails:       "Ocultar detalhes",
		KeyStatusPending:     "Pendente",
		KeyStatusStarting:    "Iniciando",
		KeyStatusRunning:     "Transferindo",
		KeyStatusStopping:    "Parando",
		KeyStatusStopped:     "Parado",
		KeyStatusCompleted:   "Concluído",
		KeyStatusError:       "Erro",
	}
}
