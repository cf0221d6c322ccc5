package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconReload   = "↻"
	IconSkip     = "✕"
	IconSave     = "♥"
	IconMap      = "📍"
	IconClose    = "×"
	IconError    = "❌"
	IconLanguage = "🌐"
	IconDone     = "✓"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	PriceSymbol        = "$"
	TagPrefix          = "#"
)

// Card stack sizing
const (
	CardMaxWidth    float32 = 360
	CardMaxHeight   float32 = 520
	CardMargin      float32 = 16
	CardCorner      float32 = 16
	CardImageHeight float32 = 220

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	ActionButtonWidth  float32 = 96
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 80
	ToastMargin   float32 = 20
	ToastAutoHide         = 4 * time.Second
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 460
	SettingsDialogHeight float32 = 420
	DetailDialogWidth    float32 = 420
	DetailDialogHeight   float32 = 480
)
