package discovery

import "fmt"

// LoadState is the lifecycle of the feed behind a session
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateReady
	StateLoadFailed
)

// String returns the string representation of the state
func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateLoadFailed:
		return "LoadFailed"
	default:
		return "Unknown"
	}
}

// LoadError is the only failure shown to the user. The feed is empty while
// it is set; there is no automatic retry.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load feed: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
