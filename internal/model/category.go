package model

import "strings"

// Category is a discovery filter bucket
type Category string

const (
	CategoryAll    Category = "all"
	CategoryFood   Category = "food"
	CategorySights Category = "sights"
	CategoryHiking Category = "hiking"
)

// Categories returns all categories in display order
func Categories() []Category {
	return []Category{CategoryAll, CategoryFood, CategorySights, CategoryHiking}
}

// ParseCategory maps a tag or config value onto a category, CategoryAll if unknown
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryFood:
		return CategoryFood
	case CategorySights:
		return CategorySights
	case CategoryHiking:
		return CategoryHiking
	default:
		return CategoryAll
	}
}

// Title returns the display title for the category
func (c Category) Title() string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategorySights:
		return "Sights"
	case CategoryHiking:
		return "Hiking"
	default:
		return "All"
	}
}

// Icon returns the category icon
func (c Category) Icon() Icon {
	switch c {
	case CategoryFood:
		return EmojiIcon{Glyph: "🍜"}
	case CategorySights:
		return SystemIcon{Name: "binoculars"}
	case CategoryHiking:
		return EmojiIcon{Glyph: "🥾"}
	default:
		return SystemIcon{Name: "square.grid.2x2"}
	}
}

// Matches reports whether an item passes this category filter
func (c Category) Matches(item FeedItem) bool {
	return c == CategoryAll || item.Category == c
}

// Icon is either a named system icon or an emoji glyph.
// The interface is sealed; the two implementations below are the only cases.
type Icon interface {
	isIcon()
	String() string
}

// SystemIcon refers to a platform icon by name
type SystemIcon struct {
	Name string
}

func (SystemIcon) isIcon() {}

// String returns the icon name
func (i SystemIcon) String() string { return i.Name }

// EmojiIcon is rendered as text
type EmojiIcon struct {
	Glyph string
}

func (EmojiIcon) isIcon() {}

// String returns the glyph
func (i EmojiIcon) String() string { return i.Glyph }
