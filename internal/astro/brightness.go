package astro

import "math"

// FaintLimit is the naked-eye visibility limit; stars at or above it are
// fully transparent.
const FaintLimit = 6.5

// Bright thresholds used by the viewer profiles. At or below the threshold
// a star is fully opaque.
const (
	ThresholdCycle  = -1.0 // three-mode viewer
	ThresholdToggle = 2.0  // two-mode viewer
	ThresholdNone   = 0.0  // fish-eye viewer: plain 1 - mag/limit ramp
)

// Brightness maps magnitudes to display opacity.
type Brightness struct {
	Threshold float64
	Limit     float64
}

// NewBrightness returns a model with the given bright threshold and the
// standard faint limit.
func NewBrightness(threshold float64) Brightness {
	return Brightness{Threshold: threshold, Limit: FaintLimit}
}

// Opacity returns a value in [0, 1], linear between the threshold and the
// limit.
func (b Brightness) Opacity(mag float64) float64 {
	if math.IsNaN(mag) {
		return 0
	}
	if mag >= b.Limit {
		return 0
	}
	if mag <= b.Threshold {
		return 1
	}
	o := 1 - (mag-b.Threshold)/(b.Limit-b.Threshold)
	return clamp01(o)
}

// Alpha returns the opacity quantized to two decimals, as used for drawing.
// Stars with Alpha <= 0 are skipped by the renderer.
func (b Brightness) Alpha(mag float64) float64 {
	return math.Round(b.Opacity(mag)*100) / 100
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
