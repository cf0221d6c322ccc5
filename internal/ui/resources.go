package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "Icon.png"
)

// LoadLogoResource loads the logo from the working directory. The header
// falls back to text when it is missing.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
