package feed

import (
	"errors"
	"fmt"

	"github.com/peakfindr/peakfindr/internal/model"
)

var (
	// ErrEmptyFeed is returned by RemoveTop and RemoveTopIf when there is nothing to remove
	ErrEmptyFeed = errors.New("feed is empty")

	// ErrNotTop is returned by RemoveTopIf when another item is on top
	ErrNotTop = errors.New("item is not on top of the feed")

	// ErrDuplicateKey is returned when an operation would put the same key in the feed twice
	ErrDuplicateKey = errors.New("duplicate feed key")
)

func duplicateKeyError(key model.Key) error {
	return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
}
