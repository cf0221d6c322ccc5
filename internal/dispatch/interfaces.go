package dispatch

import (
	"context"

	"github.com/peakfindr/peakfindr/internal/model"
)

// SkipRecorder persists a skip. Called fire-and-forget.
type SkipRecorder interface {
	RecordSkip(ctx context.Context, key model.Key) error
}

// SaveRecorder persists a save/like. Called fire-and-forget.
type SaveRecorder interface {
	RecordSave(ctx context.Context, key model.Key) error
}

// DetailOpener navigates to the detail surface for an item
type DetailOpener interface {
	OpenDetail(key model.Key)
}

// FeedStore is the part of the feed store the dispatcher mutates
type FeedStore interface {
	// RemoveTopIf removes the top item only if its key is key
	RemoveTopIf(key model.Key) (model.FeedItem, error)
	Restore(item model.FeedItem) error
}

// Outcomes dispatches classified gesture outcomes
type Outcomes interface {
	Dispatch(ctx context.Context, outcome model.Outcome) error
	SetFailureCallback(func(model.Outcome, error))
	Wait()
}
