package feed

import "github.com/peakfindr/peakfindr/internal/model"

// EventKind describes which mutation produced an Event
type EventKind string

const (
	EventReplaced   EventKind = "replaced"
	EventRemovedTop EventKind = "removed_top"
	EventRemoved    EventKind = "removed"
	EventRestored   EventKind = "restored"
)

// Event is published after every successful store mutation
type Event struct {
	Kind EventKind
	Key  model.Key // item removed or restored; NilKey for EventReplaced
	Top  model.Key // top key after the mutation; NilKey when the feed is empty
	Len  int       // feed length after the mutation
}

// HasTop reports whether the feed was non-empty after the mutation
func (e Event) HasTop() bool {
	return !e.Top.IsNil()
}
