package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestTheme_BrandPalette(t *testing.T) {
	th := NewTheme()

	if got := th.Color(theme.ColorNamePrimary, theme.VariantLight); got != BrandColor {
		t.Errorf("light primary = %v, want brand %v", got, BrandColor)
	}
	if got := th.Color(theme.ColorNameSuccess, theme.VariantLight); got != SaveColor {
		t.Errorf("light success = %v, want save colour %v", got, SaveColor)
	}

	dark := th.Color(theme.ColorNamePrimary, theme.VariantDark).(color.NRGBA)
	if dark == BrandColor {
		t.Error("dark primary should be lifted from the brand colour")
	}
	if dark.R <= BrandColor.R || dark.G <= BrandColor.G {
		t.Errorf("dark primary %v is not lighter than %v", dark, BrandColor)
	}

	if th.Color(theme.ColorNameBackground, theme.VariantLight) == th.Color(theme.ColorNameBackground, theme.VariantDark) {
		t.Error("variants share a background")
	}

	want := theme.DefaultTheme().Color(theme.ColorNameError, theme.VariantLight)
	if got := th.Color(theme.ColorNameError, theme.VariantLight); got != want {
		t.Errorf("unpaletted colour = %v, want stock %v", got, want)
	}
}

func TestTheme_Sizes(t *testing.T) {
	th := NewTheme()
	if got := th.Size(theme.SizeNameHeadingText); got != 20 {
		t.Errorf("heading size = %v", got)
	}
	want := theme.DefaultTheme().Size(theme.SizeNameInputBorder)
	if got := th.Size(theme.SizeNameInputBorder); got != want {
		t.Errorf("input border = %v, want stock %v", got, want)
	}
}

func TestMix(t *testing.T) {
	a := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	b := color.NRGBA{R: 200, G: 100, B: 0, A: 255}

	if got := mix(a, b, 0); got != a {
		t.Errorf("mix 0 = %v", got)
	}
	if got := mix(a, b, 1); got != b {
		t.Errorf("mix 1 = %v", got)
	}
	if got := mix(a, b, 0.5); got != (color.NRGBA{R: 100, G: 100, B: 100, A: 255}) {
		t.Errorf("mix 0.5 = %v", got)
	}
}
