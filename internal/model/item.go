package model

import (
	"strings"

	"github.com/google/uuid"
)

// Key identifies a feed item. Keys are never reused within a feed's lifetime.
type Key uuid.UUID

// NilKey is the zero key, used where no item is bound
var NilKey = Key(uuid.Nil)

// NewKey returns a fresh random key
func NewKey() Key {
	return Key(uuid.New())
}

// ParseKey parses the canonical string form of a key
func ParseKey(s string) (Key, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return NilKey, err
	}
	return Key(id), nil
}

// MustParseKey is like ParseKey but panics on malformed input. Intended for tests and fixtures.
func MustParseKey(s string) Key {
	return Key(uuid.MustParse(s))
}

// String returns the canonical UUID form
func (k Key) String() string {
	return uuid.UUID(k).String()
}

// IsNil reports whether k is the zero key
func (k Key) IsNil() bool {
	return k == NilKey
}

// Tag is a free-form label attached to a location by the backend
type Tag struct {
	ID   int
	Name string
}

// FeedItem is a single discoverable location shown as a card
type FeedItem struct {
	Key         Key
	Name        string
	Description string
	ImageRef    string   // backend image URL or asset name
	Area        string   // district, e.g. "Shek O"
	MapsURL     string   // optional external map link
	PriceLevel  int      // 0 if unknown
	Category    Category // CategoryAll when the backend did not classify it
	Tags        []Tag
}

// GetDisplayName returns the name, falling back to the area and then the key
func (fi FeedItem) GetDisplayName() string {
	if name := strings.TrimSpace(fi.Name); name != "" {
		return name
	}
	if area := strings.TrimSpace(fi.Area); area != "" {
		return area
	}
	return fi.Key.String()
}

// TagNames returns the tag names in backend order
func (fi FeedItem) TagNames() []string {
	names := make([]string, 0, len(fi.Tags))
	for _, t := range fi.Tags {
		names = append(names, t.Name)
	}
	return names
}
