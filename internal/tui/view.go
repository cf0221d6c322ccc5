package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/peakfindr/peakfindr/internal/discovery"
	"github.com/peakfindr/peakfindr/internal/model"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		Theme.Title.Render("Discover"),
		m.categoryBar(),
	}
	if m.detail != nil {
		sections = append(sections, renderDetail(*m.detail))
	} else {
		sections = append(sections, m.body())
	}
	if m.status != "" {
		style := Theme.Save
		if m.failed {
			style = Theme.Error
		}
		sections = append(sections, style.Render(m.status))
	}
	sections = append(sections, m.helpLine())

	return Theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) categoryBar() string {
	current := m.session.Category()
	parts := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		label := c.Title()
		if glyph, ok := c.Icon().(model.EmojiIcon); ok {
			label = glyph.String() + " " + label
		}
		if c == current {
			parts = append(parts, Theme.Active.Render(label))
		} else {
			parts = append(parts, Theme.Category.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) body() string {
	state, err := m.session.State()
	switch state {
	case discovery.StateIdle, discovery.StateLoading:
		return m.spinner.View() + " Loading places..."
	case discovery.StateLoadFailed:
		return Theme.Error.Render(fmt.Sprintf("Couldn't load places: %v", err)) +
			"\n" + Theme.Meta.Render("Press r to retry")
	}

	items := m.session.Items()
	if len(items) == 0 {
		return "You're all caught up!\n" + Theme.Meta.Render("Press r to reload")
	}
	return renderStack(items)
}

// renderStack draws the top card with one edge line per card underneath
func renderStack(items []model.FeedItem) string {
	top := Theme.Card.Render(cardBody(items[0]))

	depth := min(len(items)-1, 2)
	lines := []string{top}
	for i := 1; i <= depth; i++ {
		inset := strings.Repeat(" ", i*2)
		edge := strings.Repeat("─", max(cardWidth+4-i*4, 1))
		lines = append(lines, Theme.Under.Render(inset+"╰"+edge+"╯"))
	}
	if rest := len(items) - 1; rest > 0 {
		lines = append(lines, Theme.Meta.Render(fmt.Sprintf("+%d more", rest)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cardBody(item model.FeedItem) string {
	lines := []string{Theme.Name.Render(item.GetDisplayName())}
	if meta := metaLine(item); meta != "" {
		lines = append(lines, Theme.Meta.Render(meta))
	}
	if item.Description != "" {
		lines = append(lines, "", item.Description)
	}
	if tags := item.TagNames(); len(tags) > 0 {
		lines = append(lines, "", Theme.Tag.Render("#"+strings.Join(tags, " #")))
	}
	return strings.Join(lines, "\n")
}

func renderDetail(item model.FeedItem) string {
	body := cardBody(item)
	if item.MapsURL != "" {
		body += "\n\n" + Theme.Meta.Render(item.MapsURL)
	}
	return Theme.Card.Render(body)
}

// metaLine joins area, price and category with middle dots
func metaLine(item model.FeedItem) string {
	var parts []string
	if item.Area != "" {
		parts = append(parts, item.Area)
	}
	if item.PriceLevel > 0 {
		parts = append(parts, strings.Repeat("$", item.PriceLevel))
	}
	if item.Category != model.CategoryAll && item.Category != "" {
		parts = append(parts, item.Category.Title())
	}
	return strings.Join(parts, " · ")
}

func (m *Model) helpLine() string {
	bindings := m.keys.help(m.detail != nil)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return Theme.Help.Render(strings.Join(parts, " • "))
}
