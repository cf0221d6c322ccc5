package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/peakfindr/peakfindr/internal/model"
	"github.com/peakfindr/peakfindr/internal/stack"
	"github.com/peakfindr/peakfindr/internal/swipe"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestSwipeThreshold(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetSwipeThreshold(); got != swipe.DefaultThreshold {
		t.Errorf("Expected default threshold %v, got %v", swipe.DefaultThreshold, got)
	}

	settings.SetSwipeThreshold(90)
	if got := settings.GetSwipeThreshold(); got != 90 {
		t.Errorf("Expected threshold 90, got %v", got)
	}

	// Test boundary values
	settings.SetSwipeThreshold(1)
	if settings.GetSwipeThreshold() != MinSwipeThreshold {
		t.Error("Threshold should be clamped to minimum")
	}

	settings.SetSwipeThreshold(10000)
	if settings.GetSwipeThreshold() != MaxSwipeThreshold {
		t.Error("Threshold should be clamped to maximum")
	}
}

func TestVisibleCards(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetVisibleCards(); got != stack.DefaultVisible {
		t.Errorf("Expected default visible cards %d, got %d", stack.DefaultVisible, got)
	}

	settings.SetVisibleCards(0)
	if settings.GetVisibleCards() != 1 {
		t.Error("Visible cards should be clamped to minimum 1")
	}

	settings.SetVisibleCards(9)
	if settings.GetVisibleCards() != MaxVisibleCards {
		t.Errorf("Visible cards should be clamped to maximum %d", MaxVisibleCards)
	}
}

func TestCategory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetCategory() != model.CategoryAll {
		t.Error("Default category should be all")
	}

	settings.SetCategory(model.CategoryHiking)
	if settings.GetCategory() != model.CategoryHiking {
		t.Errorf("Expected hiking, got %s", settings.GetCategory())
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("zh")
	if lang := settings.GetLanguage(); lang != "zh" {
		t.Errorf("Expected language 'zh', got %s", lang)
	}

	if _, ok := settings.GetLanguageOptions()["zh"]; !ok {
		t.Error("Expected 'zh' in language options")
	}
}

func TestApply(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	cfg := Default()
	settings.Apply(cfg)
	if *cfg != *Default() {
		t.Error("Apply with no stored preferences should not change the config")
	}

	settings.SetBaseURL("https://api.peakfindr.test")
	settings.SetUserID("user-1")
	settings.SetSwipeThreshold(80)
	settings.SetVisibleCards(2)
	settings.SetCategory(model.CategoryFood)

	settings.Apply(cfg)
	if cfg.API.BaseURL != "https://api.peakfindr.test" || cfg.API.UserID != "user-1" {
		t.Errorf("API overrides not applied: %+v", cfg.API)
	}
	if cfg.Swipe.Threshold != 80 {
		t.Errorf("Expected threshold 80, got %v", cfg.Swipe.Threshold)
	}
	if cfg.Stack.Visible != 2 {
		t.Errorf("Expected 2 visible cards, got %d", cfg.Stack.Visible)
	}
	if cfg.Category() != model.CategoryFood {
		t.Errorf("Expected food category, got %s", cfg.Category())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Applied config should validate: %v", err)
	}
}
