package config

import (
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestTransferDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetTransferDirectory()
	if dir == "" {
		t.Error("Transfer directory should not be empty")
	}
	if filepath.Base(dir) != transferSubdirectory && dir != fallbackTransferDir {
		t.Errorf("Unexpected default transfer directory: %s", dir)
	}

	// Test setting custom value
	customDir := "/custom/transfers"
	settings.SetTransferDirectory(customDir)

	retrievedDir := settings.GetTransferDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected transfer directory %s, got %s", customDir, retrievedDir)
	}
}

func TestMaxParallelTransfers(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	maxParallel := settings.GetMaxParallelTransfers()
	if maxParallel != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, maxParallel)
	}

	// Test setting custom value
	settings.SetMaxParallelTransfers(5)

	retrievedMax := settings.GetMaxParallelTransfers()
	if retrievedMax != 5 {
		t.Errorf("Expected max parallel 5, got %d", retrievedMax)
	}

	// Test boundary values
	settings.SetMaxParallelTransfers(0) // Should be clamped to 1
	if settings.GetMaxParallelTransfers() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelTransfers(15) // Should be clamped to 10
	if settings.GetMaxParallelTransfers() != 10 {
		t.Error("Max parallel should be clamped to maximum 10")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("en")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "en" {
		t.Errorf("Expected language 'en', got %s", retrievedLang)
	}
}

func TestAnimationDuration(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetAnimationDuration(); got != DefaultAnimationMillis*time.Millisecond {
		t.Errorf("Expected default animation duration 200ms, got %v", got)
	}

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{300 * time.Millisecond, 300 * time.Millisecond},
		{time.Millisecond, MinAnimationMillis * time.Millisecond},
		{time.Minute, MaxAnimationMillis * time.Millisecond},
	}
	for _, tt := range tests {
		settings.SetAnimationDuration(tt.in)
		if got := settings.GetAnimationDuration(); got != tt.want {
			t.Errorf("SetAnimationDuration(%v): got %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestCompletedLinger(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetCompletedLinger(); got != DefaultCompletedLinger*time.Second {
		t.Errorf("Expected default linger 3s, got %v", got)
	}

	settings.SetCompletedLinger(0)
	if got := settings.GetCompletedLinger(); got != 0 {
		t.Errorf("Expected linger 0, got %v", got)
	}

	settings.SetCompletedLinger(time.Hour)
	if got := settings.GetCompletedLinger(); got != MaxCompletedLinger*time.Second {
		t.Errorf("Linger should be clamped to %ds, got %v", MaxCompletedLinger, got)
	}
}

func TestStartCollapsed(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetStartCollapsed() {
		t.Error("Summary should start collapsed by default")
	}

	settings.SetStartCollapsed(false)
	if settings.GetStartCollapsed() {
		t.Error("Expected start collapsed to be false")
	}
}

func TestRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetRevealOnComplete() != DefaultRevealOnComplete {
		t.Error("Unexpected default reveal-on-complete value")
	}

	settings.SetRevealOnComplete(true)
	if !settings.GetRevealOnComplete() {
		t.Error("Expected reveal-on-complete to be true")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
