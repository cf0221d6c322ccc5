package tui

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	colorBrand = lipgloss.Color("#AA4039")
	colorSave  = lipgloss.Color("#3FA34D")
	colorSkip  = lipgloss.Color("#C0392B")
	colorMuted = lipgloss.Color("#777777")
	colorEdge  = lipgloss.Color("#444444")
)

// cardWidth is the inner width of the top card
const cardWidth = 48

// Theme holds the styles used by the view
var Theme = struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Category lipgloss.Style
	Active   lipgloss.Style
	Card     lipgloss.Style
	Under    lipgloss.Style
	Name     lipgloss.Style
	Meta     lipgloss.Style
	Tag      lipgloss.Style
	Error    lipgloss.Style
	Save     lipgloss.Style
	Skip     lipgloss.Style
	Help     lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBrand).
		MarginBottom(1),
	Category: lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1),
	Active: lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBrand).
		Padding(0, 1),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBrand).
		Padding(1, 2).
		Width(cardWidth),
	Under: lipgloss.NewStyle().
		Foreground(colorEdge),
	Name: lipgloss.NewStyle().
		Bold(true),
	Meta: lipgloss.NewStyle().
		Foreground(colorMuted),
	Tag: lipgloss.NewStyle().
		Foreground(colorBrand),
	Error: lipgloss.NewStyle().
		Foreground(colorSkip).
		Bold(true),
	Save: lipgloss.NewStyle().
		Foreground(colorSave),
	Skip: lipgloss.NewStyle().
		Foreground(colorSkip),
	Help: lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1),
}
