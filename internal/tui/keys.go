package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Skip     key.Binding
	Save     key.Binding
	Open     key.Binding
	Maps     key.Binding
	Back     key.Binding
	Reload   key.Binding
	Category key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Skip: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "skip"),
		),
		Save: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "save"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		Maps: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in maps"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Category: key.NewBinding(
			key.WithKeys("c", "tab"),
			key.WithHelp("c", "category"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// help returns the bindings shown in the footer for the current mode
func (k keyMap) help(detail bool) []key.Binding {
	if detail {
		return []key.Binding{k.Maps, k.Back, k.Quit}
	}
	return []key.Binding{k.Skip, k.Save, k.Open, k.Category, k.Reload, k.Quit}
}
