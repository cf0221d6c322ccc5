package ui

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/peakfindr/peakfindr/internal/model"
)

// PointerSink receives the pointer stream of the top card
type PointerSink interface {
	PointerDown(key model.Key, pos model.Vector) bool
	PointerMove(ctx context.Context, pos model.Vector) (model.Outcome, bool, error)
	PointerUp(ctx context.Context, pos model.Vector) (model.Outcome, bool, error)
	Abandon()
}

// GestureHandler merges Fyne mouse, drag and touch callbacks into a single
// down/move/up stream. Positions are absolute so the stream stays stable while
// the card moves under the pointer.
type GestureHandler struct {
	sink    PointerSink
	onError func(error)

	// Touch tracking
	pressed  bool
	dragging bool
	last     fyne.Position
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(sink PointerSink, onError func(error)) *GestureHandler {
	return &GestureHandler{
		sink:    sink,
		onError: onError,
	}
}

// Press handles mouse and touch down on the card bound to key
func (gh *GestureHandler) Press(key model.Key, pos fyne.Position) {
	if gh.pressed {
		return
	}
	if gh.sink.PointerDown(key, toVector(pos)) {
		gh.pressed = true
		gh.dragging = false
		gh.last = pos
	}
}

// Drag handles drag steps. A drag that arrives without a press starts one at
// the drag origin.
func (gh *GestureHandler) Drag(key model.Key, ev *fyne.DragEvent) {
	if !gh.pressed {
		origin := ev.AbsolutePosition.Subtract(fyne.NewPos(ev.Dragged.DX, ev.Dragged.DY))
		gh.Press(key, origin)
		if !gh.pressed {
			return
		}
	}
	gh.dragging = true
	gh.last = ev.AbsolutePosition

	_, cancelled, err := gh.sink.PointerMove(context.Background(), toVector(gh.last))
	gh.report(err)
	if cancelled {
		gh.reset()
	}
}

// DragEnd releases a drag at its last position
func (gh *GestureHandler) DragEnd() {
	if !gh.pressed || !gh.dragging {
		return
	}
	gh.finish(gh.last)
}

// Release handles mouse and touch up. Releases that end a drag are left to
// DragEnd, which Fyne delivers either before or after this call.
func (gh *GestureHandler) Release(pos fyne.Position) {
	if !gh.pressed || gh.dragging {
		return
	}
	gh.finish(pos)
}

// Cancel handles touch cancel events
func (gh *GestureHandler) Cancel() {
	if gh.pressed {
		gh.sink.Abandon()
	}
	gh.reset()
}

// Active reports whether a press is being tracked
func (gh *GestureHandler) Active() bool {
	return gh.pressed
}

func (gh *GestureHandler) finish(pos fyne.Position) {
	gh.reset()
	_, _, err := gh.sink.PointerUp(context.Background(), toVector(pos))
	gh.report(err)
}

func (gh *GestureHandler) reset() {
	gh.pressed = false
	gh.dragging = false
	gh.last = fyne.Position{}
}

func (gh *GestureHandler) report(err error) {
	if err != nil && gh.onError != nil {
		gh.onError(err)
	}
}

func toVector(pos fyne.Position) model.Vector {
	return model.Vector{X: float64(pos.X), Y: float64(pos.Y)}
}
