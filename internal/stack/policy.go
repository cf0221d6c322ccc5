// Package stack computes how the first few feed items are drawn as a stack
// of cards. Output depends only on the inputs, so identical inputs always
// yield identical transforms.
package stack

import (
	"fmt"
	"math"
	"sort"

	"github.com/peakfindr/peakfindr/internal/model"
)

// Layout defaults
const (
	DefaultVisible         = 3
	DefaultOffsetStep      = 8.0
	DefaultScaleStep       = 0.04
	DefaultScaleCap        = 0.08
	DefaultRotationDivisor = 15.0
)

// Config controls stack depth and the per-depth offsets
type Config struct {
	Visible         int     // number of cards drawn (N)
	OffsetStep      float64 // vertical offset per depth
	ScaleStep       float64 // scale reduction per depth
	ScaleCap        float64 // maximum total scale reduction
	RotationDivisor float64 // top-card rotation = horizontal offset / divisor
}

// DefaultConfig returns the stock layout
func DefaultConfig() Config {
	return Config{
		Visible:         DefaultVisible,
		OffsetStep:      DefaultOffsetStep,
		ScaleStep:       DefaultScaleStep,
		ScaleCap:        DefaultScaleCap,
		RotationDivisor: DefaultRotationDivisor,
	}
}

// Validate rejects layouts that cannot be drawn
func (c Config) Validate() error {
	switch {
	case c.Visible < 1:
		return fmt.Errorf("visible cards must be at least 1, got %d", c.Visible)
	case !finite(c.OffsetStep, c.ScaleStep, c.ScaleCap, c.RotationDivisor):
		return fmt.Errorf("layout steps must be finite: %+v", c)
	case c.RotationDivisor == 0:
		return fmt.Errorf("rotation divisor must be non-zero")
	case c.ScaleStep < 0 || c.ScaleCap < 0 || c.ScaleCap >= 1:
		return fmt.Errorf("scale step/cap out of range: %v/%v", c.ScaleStep, c.ScaleCap)
	case c.OffsetStep < 0:
		return fmt.Errorf("offset step must not be negative, got %v", c.OffsetStep)
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Policy is the stack renderer policy
type Policy struct {
	cfg Config
}

// NewPolicy creates a policy; an invalid cfg is replaced by DefaultConfig
func NewPolicy(cfg Config) Policy {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return Policy{cfg: cfg}
}

// Config returns the layout in use
func (p Policy) Config() Config {
	return p.cfg
}

// Visible returns N, the number of cards drawn
func (p Policy) Visible() int {
	return p.cfg.Visible
}

// Compute returns one transform per item for at most N items from the front
// of prefix, in feed order. The gesture only moves the top card, and only
// when it is bound to that card.
func (p Policy) Compute(prefix []model.FeedItem, g model.GestureState) []model.VisibleTransform {
	n := p.cfg.Visible
	if len(prefix) < n {
		n = len(prefix)
	}

	out := make([]model.VisibleTransform, n)
	for i := 0; i < n; i++ {
		key := prefix[i].Key
		if i == 0 {
			var h, v float64
			if g.Active && g.Key == key {
				h, v = g.Translation.X, g.Translation.Y
			}
			out[i] = model.VisibleTransform{
				Key:              key,
				HorizontalOffset: h,
				VerticalOffset:   v,
				Scale:            1.0,
				ZOrder:           p.cfg.Visible,
				Rotation:         h / p.cfg.RotationDivisor,
			}
			continue
		}
		out[i] = model.VisibleTransform{
			Key:            key,
			VerticalOffset: float64(i) * p.cfg.OffsetStep,
			Scale:          1.0 - math.Min(float64(i)*p.cfg.ScaleStep, p.cfg.ScaleCap),
			ZOrder:         p.cfg.Visible - i,
		}
	}
	return out
}

// Ordered returns Compute's result sorted back-to-front (ascending ZOrder),
// which is the order a painter draws them in.
func (p Policy) Ordered(prefix []model.FeedItem, g model.GestureState) []model.VisibleTransform {
	out := p.Compute(prefix, g)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZOrder < out[j].ZOrder
	})
	return out
}
