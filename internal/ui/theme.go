package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Brand and action colours
var (
	BrandColor = color.NRGBA{R: 170, G: 64, B: 57, A: 255} // summit red
	SaveColor  = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	SkipColor  = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	CardColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	CardShadow = color.NRGBA{R: 0, G: 0, B: 0, A: 40}
)

type palette map[fyne.ThemeColorName]color.Color

var (
	paper = color.NRGBA{R: 250, G: 246, B: 242, A: 255}
	ink   = color.NRGBA{R: 43, G: 35, B: 32, A: 255}
	night = color.NRGBA{R: 28, G: 23, B: 21, A: 255}
	chalk = color.NRGBA{R: 243, G: 236, B: 231, A: 255}
)

var lightPalette = palette{
	theme.ColorNamePrimary:         BrandColor,
	theme.ColorNameHyperlink:       BrandColor,
	theme.ColorNameFocus:           withAlpha(BrandColor, 128),
	theme.ColorNameSelection:       withAlpha(BrandColor, 64),
	theme.ColorNameHover:           withAlpha(BrandColor, 24),
	theme.ColorNameSuccess:         SaveColor,
	theme.ColorNameBackground:      paper,
	theme.ColorNameForeground:      ink,
	theme.ColorNameButton:          mix(paper, BrandColor, 0.08),
	theme.ColorNameInputBackground: mix(paper, ink, 0.04),
	theme.ColorNameSeparator:       mix(paper, ink, 0.12),
}

// The dark variant lifts the brand so it keeps its contrast on a dark ground.
var darkPalette = palette{
	theme.ColorNamePrimary:         mix(BrandColor, chalk, 0.25),
	theme.ColorNameHyperlink:       mix(BrandColor, chalk, 0.35),
	theme.ColorNameFocus:           withAlpha(mix(BrandColor, chalk, 0.25), 128),
	theme.ColorNameSelection:       withAlpha(BrandColor, 96),
	theme.ColorNameHover:           withAlpha(chalk, 20),
	theme.ColorNameSuccess:         mix(SaveColor, chalk, 0.2),
	theme.ColorNameBackground:      night,
	theme.ColorNameForeground:      chalk,
	theme.ColorNameButton:          mix(night, BrandColor, 0.18),
	theme.ColorNameInputBackground: mix(night, chalk, 0.06),
	theme.ColorNameSeparator:       mix(night, chalk, 0.15),
}

// Card-first sizing: larger headings and rounder inputs than the stock theme
var sizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         5,
	theme.SizeNameInnerPadding:    10,
	theme.SizeNameText:            14,
	theme.SizeNameHeadingText:     20,
	theme.SizeNameSubHeadingText:  15,
	theme.SizeNameCaptionText:     11,
	theme.SizeNameScrollBar:       10,
	theme.SizeNameInputRadius:     8,
	theme.SizeNameSelectionRadius: 6,
}

// PeakTheme is the app theme: the brand palette over the stock fonts and icons
type PeakTheme struct {
	fallback fyne.Theme
}

// NewTheme creates the app theme
func NewTheme() fyne.Theme {
	return &PeakTheme{fallback: theme.DefaultTheme()}
}

// Color returns the palette entry for variant, or the stock colour
func (t *PeakTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	p := lightPalette
	if variant == theme.VariantDark {
		p = darkPalette
	}
	if c, ok := p[name]; ok {
		return c
	}
	return t.fallback.Color(name, variant)
}

func (t *PeakTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.fallback.Font(style)
}

func (t *PeakTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.fallback.Icon(name)
}

func (t *PeakTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := sizes[name]; ok {
		return s
	}
	return t.fallback.Size(name)
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// mix blends b into a by weight w in [0, 1]
func mix(a, b color.NRGBA, w float64) color.NRGBA {
	blend := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-w) + float64(y)*w + 0.5)
	}
	return color.NRGBA{
		R: blend(a.R, b.R),
		G: blend(a.G, b.G),
		B: blend(a.B, b.B),
		A: blend(a.A, b.A),
	}
}
