package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific UI adjustments
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	if m == nil || m.app == nil {
		return false
	}
	return m.app.Driver().Device().IsMobile()
}

// CreateActionButton creates a stack action button sized for touch
func (m *MobileUI) CreateActionButton(text string, onTapped func()) *widget.Button {
	btn := widget.NewButton(text, onTapped)
	if m.IsMobileDevice() {
		btn.Resize(fyne.NewSize(ActionButtonWidth, MinTouchTargetSize))
	}
	return btn
}

// GetMobilePadding returns the margin kept around the card stack
func (m *MobileUI) GetMobilePadding() float32 {
	if m.IsMobileDevice() {
		return 8 // Cards use most of a phone screen
	}
	return CardMargin
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	if !m.IsMobileDevice() {
		return false
	}
	orientation := m.app.Driver().Device().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}
