package swipe

// Package swipe implements the gesture state machine for the top card of the
// discovery stack: Idle -> Dragging -> (resolve) -> Idle. Every completed
// session yields exactly one model.Outcome.
