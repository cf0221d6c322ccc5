package dispatch

import (
	"errors"
	"fmt"

	"github.com/peakfindr/peakfindr/internal/model"
)

// ErrStaleOutcome is returned when an outcome no longer refers to the top item
var ErrStaleOutcome = errors.New("outcome does not refer to the current top item")

// PersistenceError reports a failed skip/save call
type PersistenceError struct {
	Outcome model.Outcome
	Err     error
}

// Error returns the error message
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Outcome, e.Err)
}

// Unwrap returns the recorder's error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}
