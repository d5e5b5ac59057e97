package config

import (
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/transfer-panel/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyTransferDir      = "transfer_directory"
	KeyMaxParallel      = "max_parallel_transfers"
	KeyLanguage         = "app_language"
	KeyAnimationMillis  = "summary_animation_ms"
	KeyCompletedLinger  = "completed_linger_seconds"
	KeyStartCollapsed   = "summary_start_collapsed"
	KeyRevealOnComplete = "reveal_on_complete"
)

const (
	fallbackTransferDir  = "/tmp/transfers"
	transferSubdirectory = "Transfers"
)

// Default values
const (
	DefaultMaxParallel      = 2
	DefaultLanguage         = "system"
	DefaultAnimationMillis  = 200
	DefaultCompletedLinger  = 3
	DefaultStartCollapsed   = true
	DefaultRevealOnComplete = false
)

// Limits
const (
	MinParallel        = 1
	MaxParallel        = 10
	MinAnimationMillis = 50
	MaxAnimationMillis = 2000
	MaxCompletedLinger = 60
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetTransferDirectory returns the configured destination directory
func (s *Settings) GetTransferDirectory() string {
	dir := s.app.Preferences().String(KeyTransferDir)
	if dir == "" {
		downloads, err := platform.GetHomeDownloadsDir()
		if err != nil {
			dir = fallbackTransferDir
		} else {
			dir = filepath.Join(downloads, transferSubdirectory)
		}
		s.SetTransferDirectory(dir)
	}
	return dir
}

// SetTransferDirectory sets the destination directory
func (s *Settings) SetTransferDirectory(dir string) {
	s.app.Preferences().SetString(KeyTransferDir, dir)
}

// GetMaxParallelTransfers returns the maximum number of parallel transfers
func (s *Settings) GetMaxParallelTransfers() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelTransfers(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelTransfers sets the maximum number of parallel transfers
func (s *Settings) SetMaxParallelTransfers(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, clamp(count, MinParallel, MaxParallel))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetAnimationDuration returns the summary collapse/expand transition length
func (s *Settings) GetAnimationDuration() time.Duration {
	ms := s.app.Preferences().IntWithFallback(KeyAnimationMillis, DefaultAnimationMillis)
	return time.Duration(clamp(ms, MinAnimationMillis, MaxAnimationMillis)) * time.Millisecond
}

// SetAnimationDuration sets the transition length, clamped to 50ms..2s
func (s *Settings) SetAnimationDuration(d time.Duration) {
	ms := int(d / time.Millisecond)
	s.app.Preferences().SetInt(KeyAnimationMillis, clamp(ms, MinAnimationMillis, MaxAnimationMillis))
}

// GetCompletedLinger returns how long finished items stay in the panel
func (s *Settings) GetCompletedLinger() time.Duration {
	sec := s.app.Preferences().IntWithFallback(KeyCompletedLinger, DefaultCompletedLinger)
	return time.Duration(clamp(sec, 0, MaxCompletedLinger)) * time.Second
}

// SetCompletedLinger sets how long finished items stay in the panel
func (s *Settings) SetCompletedLinger(d time.Duration) {
	sec := int(d / time.Second)
	s.app.Preferences().SetInt(KeyCompletedLinger, clamp(sec, 0, MaxCompletedLinger))
}

// GetStartCollapsed returns whether the summary starts in the collapsed layout
func (s *Settings) GetStartCollapsed() bool {
	return s.app.Preferences().BoolWithFallback(KeyStartCollapsed, DefaultStartCollapsed)
}

// SetStartCollapsed sets whether the summary starts in the collapsed layout
func (s *Settings) SetStartCollapsed(collapsed bool) {
	s.app.Preferences().SetBool(KeyStartCollapsed, collapsed)
}

// GetRevealOnComplete returns whether to reveal finished transfers in the file manager
func (s *Settings) GetRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealOnComplete, DefaultRevealOnComplete)
}

// SetRevealOnComplete sets whether to reveal finished transfers in the file manager
func (s *Settings) SetRevealOnComplete(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealOnComplete, reveal)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
