package config

import (
	"fyne.io/fyne/v2"

	"github.com/peakfindr/peakfindr/internal/model"
	"github.com/peakfindr/peakfindr/internal/stack"
	"github.com/peakfindr/peakfindr/internal/swipe"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage       = "app_language"
	KeyBaseURL        = "api_base_url"
	KeyUserID         = "user_id"
	KeySwipeThreshold = "swipe_threshold"
	KeyVisibleCards   = "visible_cards"
	KeyCategory       = "discovery_category"
)

// Limits for user-editable values
const (
	DefaultLanguage   = "system"
	MinSwipeThreshold = 40.0
	MaxSwipeThreshold = 400.0
	MinVisibleCards   = 1
	MaxVisibleCards   = 5
)

// Settings manages per-device overrides stored in Fyne preferences. Values
// left unset fall through to the file configuration.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
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

// GetBaseURL returns the backend override, empty if unset
func (s *Settings) GetBaseURL() string {
	return s.app.Preferences().String(KeyBaseURL)
}

// SetBaseURL overrides the backend root
func (s *Settings) SetBaseURL(url string) {
	s.app.Preferences().SetString(KeyBaseURL, url)
}

// GetUserID returns the signed-in user, empty if unset
func (s *Settings) GetUserID() string {
	return s.app.Preferences().String(KeyUserID)
}

// SetUserID stores the signed-in user
func (s *Settings) SetUserID(id string) {
	s.app.Preferences().SetString(KeyUserID, id)
}

// GetSwipeThreshold returns the threshold override, or the default if unset
func (s *Settings) GetSwipeThreshold() float64 {
	return s.app.Preferences().FloatWithFallback(KeySwipeThreshold, swipe.DefaultThreshold)
}

// SetSwipeThreshold stores a threshold clamped to the supported range
func (s *Settings) SetSwipeThreshold(threshold float64) {
	if threshold < MinSwipeThreshold {
		threshold = MinSwipeThreshold
	}
	if threshold > MaxSwipeThreshold {
		threshold = MaxSwipeThreshold
	}
	s.app.Preferences().SetFloat(KeySwipeThreshold, threshold)
}

// GetVisibleCards returns the number of stacked cards
func (s *Settings) GetVisibleCards() int {
	value := s.app.Preferences().Int(KeyVisibleCards)
	if value <= 0 {
		return stack.DefaultVisible
	}
	return value
}

// SetVisibleCards stores the number of stacked cards, clamped to 1..5
func (s *Settings) SetVisibleCards(count int) {
	if count < MinVisibleCards {
		count = MinVisibleCards
	}
	if count > MaxVisibleCards {
		count = MaxVisibleCards
	}
	s.app.Preferences().SetInt(KeyVisibleCards, count)
}

// GetCategory returns the discovery filter
func (s *Settings) GetCategory() model.Category {
	return model.ParseCategory(s.app.Preferences().String(KeyCategory))
}

// SetCategory stores the discovery filter
func (s *Settings) SetCategory(c model.Category) {
	s.app.Preferences().SetString(KeyCategory, string(c))
}

// Apply overlays the stored preferences on cfg. Only keys that were
// explicitly set override the file configuration.
func (s *Settings) Apply(cfg *Config) {
	prefs := s.app.Preferences()
	if v := prefs.String(KeyBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := prefs.String(KeyUserID); v != "" {
		cfg.API.UserID = v
	}
	if v := prefs.Float(KeySwipeThreshold); v > 0 && v > cfg.Swipe.TapEpsilon {
		cfg.Swipe.Threshold = v
	}
	if v := prefs.Int(KeyVisibleCards); v > 0 {
		cfg.Stack.Visible = v
	}
	if v := prefs.String(KeyCategory); v != "" {
		cfg.Discovery.Category = string(model.ParseCategory(v))
	}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"zh":     "繁體中文",
	}
}
