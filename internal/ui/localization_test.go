package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/transfer-panel/internal/model"
)

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "en", l.GetCurrentLanguage())
	assert.Equal(t, "Add", l.GetText(KeyAdd))

	l.SetLanguage("ru")
	assert.Equal(t, "ru", l.GetCurrentLanguage())
	assert.Equal(t, "Добавить", l.GetText(KeyAdd))

	// Unknown languages are ignored
	l.SetLanguage("xx")
	assert.Equal(t, "ru", l.GetCurrentLanguage())

	l.SetLanguage("system")
	assert.Equal(t, "en", l.GetCurrentLanguage())
}

func TestLocalization_MissingKeyFallsBackToKey(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "no_such_key", l.GetText("no_such_key"))
}

func TestLocalization_SummaryText(t *testing.T) {
	tests := []struct {
		lang     string
		expected string
	}{
		{"en", "42% complete"},
		{"ru", "Выполнено 42%"},
		{"pt", "42% concluído"},
	}

	l := NewLocalization()
	for _, test := range tests {
		l.SetLanguage(test.lang)
		assert.Equal(t, test.expected, l.SummaryText(42), test.lang)
	}
}

func TestLocalization_CountText(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "3 transfers", l.CountText(3))
}

func TestLocalization_StatusLabel(t *testing.T) {
	l := NewLocalization()

	assert.Equal(t, "Running", l.StatusLabel(model.TaskStatusRunning))
	assert.Equal(t, "Completed", l.StatusLabel(model.TaskStatusCompleted))
	assert.Equal(t, "Other", l.StatusLabel(model.TaskStatus("Other")))

	l.SetLanguage("pt")
	assert.Equal(t, "Pendente", l.StatusLabel(model.TaskStatusPending))
}

func TestLocalization_EveryLanguageHasEveryKey(t *testing.T) {
	l := NewLocalization()
	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !assert.True(t, ok, lang) {
			continue
		}
		for key := range l.texts["en"] {
			assert.Contains(t, texts, key, "%s is missing %s", lang, key)
		}
	}
}
