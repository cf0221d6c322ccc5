package model

import "math"

// Vector is a 2D displacement in device-independent units
type Vector struct {
	X, Y float64
}

// Sub returns v - o
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the euclidean length
func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// GestureState is the transient state of the single in-progress drag.
// The zero value is the neutral (idle) state.
type GestureState struct {
	Key         Key     // item the gesture is bound to
	Origin      Vector  // pointer-down position
	Translation Vector  // current position minus Origin
	Active      bool    // true while the pointer is down
	Travelled   float64 // largest |Translation| seen during the session
}

// IsNeutral reports whether no gesture is in progress
func (g GestureState) IsNeutral() bool {
	return !g.Active
}

// VisibleTransform is the derived presentation of one card in the stack
type VisibleTransform struct {
	Key              Key
	HorizontalOffset float64
	VerticalOffset   float64
	Scale            float64
	ZOrder           int
	Rotation         float64 // degrees, clockwise
}
