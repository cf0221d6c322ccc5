package feed

import (
	"fmt"
	"sync"

	"github.com/peakfindr/peakfindr/internal/events"
	"github.com/peakfindr/peakfindr/internal/model"
)

// Store is the ordered discovery feed. It is safe for concurrent use; writes
// from background persistence callbacks serialize with the UI's own writes.
type Store struct {
	items []model.FeedItem
	mu    sync.RWMutex
	bus   *events.Bus[Event]
}

// NewStore creates an empty feed that announces mutations on bus.
// A nil bus disables announcements.
func NewStore(bus *events.Bus[Event]) *Store {
	return &Store{bus: bus}
}

// Current returns the top item, or false if the feed is empty
func (s *Store) Current() (model.FeedItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return model.FeedItem{}, false
	}
	return s.items[0], true
}

// CurrentKey returns the top item's key, or false if the feed is empty
func (s *Store) CurrentKey() (model.Key, bool) {
	item, ok := s.Current()
	return item.Key, ok
}

// Len returns the number of items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Items returns a copy of the whole feed in display order
func (s *Store) Items() []model.FeedItem {
	return s.Prefix(-1)
}

// Prefix returns a copy of the first n items (all items if n < 0)
func (s *Store) Prefix(n int) []model.FeedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 0 || n > len(s.items) {
		n = len(s.items)
	}
	out := make([]model.FeedItem, n)
	copy(out, s.items[:n])
	return out
}

// Contains reports whether key is currently in the feed
func (s *Store) Contains(key model.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(key) >= 0
}

// RemoveTop removes and returns the item at position 0.
// Remaining items keep their relative order.
func (s *Store) RemoveTop() (model.FeedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return model.FeedItem{}, ErrEmptyFeed
	}
	return s.removeTopLocked(), nil
}

// RemoveTopIf removes and returns the top item only if its key is key. The
// check and the removal happen under one lock, so a concurrent RemoveByKey or
// Restore can never make it take a different item.
func (s *Store) RemoveTopIf(key model.Key) (model.FeedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return model.FeedItem{}, ErrEmptyFeed
	}
	if s.items[0].Key != key {
		return model.FeedItem{}, fmt.Errorf("%w: %s", ErrNotTop, key)
	}
	return s.removeTopLocked(), nil
}

func (s *Store) removeTopLocked() model.FeedItem {
	top := s.items[0]
	s.items[0] = model.FeedItem{}
	s.items = s.items[1:]
	s.publishLocked(EventRemovedTop, top.Key)
	return top
}

// RemoveByKey removes the item with key wherever it is. Removing a key that
// is not present is a silent no-op; the return value reports whether an item
// was removed.
func (s *Store) RemoveByKey(key model.Key) bool {
	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.publishLocked(EventRemoved, key)
	s.mu.Unlock()
	return true
}

// ReplaceAll swaps the whole feed for items. Input containing duplicate keys
// is rejected and the current contents are kept.
func (s *Store) ReplaceAll(items []model.FeedItem) error {
	seen := make(map[model.Key]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.Key]; dup {
			return duplicateKeyError(item.Key)
		}
		seen[item.Key] = struct{}{}
	}

	next := make([]model.FeedItem, len(items))
	copy(next, items)

	s.mu.Lock()
	s.items = next
	s.publishLocked(EventReplaced, model.NilKey)
	s.mu.Unlock()
	return nil
}

// Restore puts item back at the front of the feed
func (s *Store) Restore(item model.FeedItem) error {
	s.mu.Lock()
	if s.indexOf(item.Key) >= 0 {
		s.mu.Unlock()
		return duplicateKeyError(item.Key)
	}
	s.items = append([]model.FeedItem{item}, s.items...)
	s.publishLocked(EventRestored, item.Key)
	s.mu.Unlock()
	return nil
}

func (s *Store) indexOf(key model.Key) int {
	for i, item := range s.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

// publishLocked must be called with s.mu held so that subscribers see events
// in mutation order. Bus.Publish only enqueues and never blocks.
func (s *Store) publishLocked(kind EventKind, key model.Key) {
	if s.bus == nil {
		return
	}
	ev := Event{Kind: kind, Key: key, Len: len(s.items)}
	if len(s.items) > 0 {
		ev.Top = s.items[0].Key
	}
	s.bus.Publish(ev)
}
