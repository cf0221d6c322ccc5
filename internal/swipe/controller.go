package swipe

import (
	"math"
	"sync"

	"github.com/peakfindr/peakfindr/internal/model"
)

// State is the controller's position in the gesture lifecycle
type State int

const (
	StateIdle State = iota
	StateDragging
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// TopSource reports which item is currently frontmost
type TopSource interface {
	CurrentKey() (model.Key, bool)
}

// Controller tracks the single active drag on the top card and classifies
// its release. It is safe for concurrent use so that feed-change
// notifications may arrive from outside the UI goroutine.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	top     TopSource
	state   State
	gesture model.GestureState
}

// NewController creates an idle controller. An invalid cfg is replaced by DefaultConfig.
func NewController(top TopSource, cfg Config) *Controller {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return &Controller{cfg: cfg, top: top}
}

// SetConfig swaps thresholds; a session in progress is classified with the new values.
// Invalid configs are ignored and reported.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	return nil
}

// Config returns the thresholds in use
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Gesture returns a snapshot of the in-progress gesture (zero value when idle)
func (c *Controller) Gesture() model.GestureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture
}

// PointerDown starts a session on key at pos. It is refused (false) unless the
// controller is idle and key is the current top item.
func (c *Controller) PointerDown(key model.Key, pos model.Vector) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return false
	}
	top, ok := c.top.CurrentKey()
	if !ok || top != key {
		return false
	}

	c.state = StateDragging
	c.gesture = model.GestureState{
		Key:    key,
		Origin: pos,
		Active: true,
	}
	return true
}

// PointerMove updates the live translation. If the bound item stopped being
// the top item, the session is cancelled and a Cancelled outcome is returned.
func (c *Controller) PointerMove(pos model.Vector) (model.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return model.Outcome{}, false
	}
	if !c.boundIsTopLocked() {
		return c.finishLocked(model.OutcomeCancelled), true
	}

	c.gesture.Translation = pos.Sub(c.gesture.Origin)
	c.gesture.Travelled = math.Max(c.gesture.Travelled, c.gesture.Translation.Len())
	return model.Outcome{}, false
}

// PointerUp ends the session at pos and returns its outcome. It returns false
// when no session is active.
func (c *Controller) PointerUp(pos model.Vector) (model.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return model.Outcome{}, false
	}
	if !c.boundIsTopLocked() {
		return c.finishLocked(model.OutcomeCancelled), true
	}

	translation := pos.Sub(c.gesture.Origin)
	travelled := math.Max(c.gesture.Travelled, translation.Len())

	eps := c.cfg.TapEpsilon
	if math.Abs(translation.X) < eps && math.Abs(translation.Y) < eps && travelled < eps {
		return c.finishLocked(model.OutcomeTapOpen), true
	}
	return c.finishLocked(Classify(translation.X, c.cfg.Threshold)), true
}

// TopChanged informs the controller about the feed's new top item. A drag
// bound to a different item is cancelled.
func (c *Controller) TopChanged(top model.Key, ok bool) (model.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return model.Outcome{}, false
	}
	if ok && top == c.gesture.Key {
		return model.Outcome{}, false
	}
	return c.finishLocked(model.OutcomeCancelled), true
}

// Abandon drops any session without producing an outcome. Used when the
// screen goes away mid-drag.
func (c *Controller) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.gesture = model.GestureState{}
}

func (c *Controller) boundIsTopLocked() bool {
	top, ok := c.top.CurrentKey()
	return ok && top == c.gesture.Key
}

func (c *Controller) finishLocked(kind model.OutcomeKind) model.Outcome {
	out := model.Outcome{Kind: kind, Key: c.gesture.Key}
	c.state = StateIdle
	c.gesture = model.GestureState{}
	return out
}

// Classify maps a horizontal release displacement onto an outcome. Both
// boundaries are inclusive toward the action.
func Classify(dx, threshold float64) model.OutcomeKind {
	switch {
	case dx <= -threshold:
		return model.OutcomeSkip
	case dx >= threshold:
		return model.OutcomeSave
	default:
		return model.OutcomeCancelled
	}
}
