package swipe

import (
	"fmt"
	"math"
)

// Gesture threshold defaults
const (
	DefaultThreshold  = 120.0
	DefaultTapEpsilon = 10.0
)

// Config holds the release thresholds, in the same units as pointer positions
type Config struct {
	// Threshold is the horizontal distance a card must travel to count as skip or save
	Threshold float64
	// TapEpsilon bounds the movement still treated as a tap
	TapEpsilon float64
}

// DefaultConfig returns the stock thresholds
func DefaultConfig() Config {
	return Config{
		Threshold:  DefaultThreshold,
		TapEpsilon: DefaultTapEpsilon,
	}
}

// Validate checks that both distances are finite and positive and the tap
// zone sits inside the threshold
func (c Config) Validate() error {
	if !finite(c.Threshold) || !finite(c.TapEpsilon) {
		return fmt.Errorf("swipe distances must be finite, got threshold %v tap epsilon %v", c.Threshold, c.TapEpsilon)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("swipe threshold must be positive, got %v", c.Threshold)
	}
	if c.TapEpsilon <= 0 {
		return fmt.Errorf("tap epsilon must be positive, got %v", c.TapEpsilon)
	}
	if c.TapEpsilon >= c.Threshold {
		return fmt.Errorf("tap epsilon %v must be smaller than threshold %v", c.TapEpsilon, c.Threshold)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
