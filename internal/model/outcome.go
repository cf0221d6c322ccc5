package model

// OutcomeKind is the classified result of a completed gesture session
type OutcomeKind int

const (
	// OutcomeCancelled means the card snapped back; nothing is dispatched
	OutcomeCancelled OutcomeKind = iota

	// OutcomeSkip means the card was flung left past the threshold
	OutcomeSkip

	// OutcomeSave means the card was flung right past the threshold
	OutcomeSave

	// OutcomeTapOpen means the card was tapped without dragging
	OutcomeTapOpen
)

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCancelled:
		return "Cancelled"
	case OutcomeSkip:
		return "Skip"
	case OutcomeSave:
		return "Save"
	case OutcomeTapOpen:
		return "TapOpen"
	default:
		return "Unknown"
	}
}

// AdvancesFeed returns true if the outcome removes the top item from the feed
func (k OutcomeKind) AdvancesFeed() bool {
	return k == OutcomeSkip || k == OutcomeSave
}

// Outcome is a classified gesture result bound to the item it applies to.
// It is produced once per session and consumed once by the dispatcher.
type Outcome struct {
	Kind OutcomeKind
	Key  Key
}

// String returns "Kind(key)" for logging
func (o Outcome) String() string {
	return o.Kind.String() + "(" + o.Key.String() + ")"
}
