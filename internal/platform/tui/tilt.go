package tui

import (
	"math"

	"github.com/vovakirdan/tilt/internal/config"
)

// TiltSimulator stands in for an accelerometer on a keyboard. Each key
// press tips the virtual device a little further; between presses it
// settles back toward level.
type TiltSimulator struct {
	x, y  float64
	step  float64
	max   float64
	decay float64
}

// NewTiltSimulator creates a level simulator tuned by cfg.
func NewTiltSimulator(cfg config.TiltConfig) *TiltSimulator {
	return &TiltSimulator{
		step:  cfg.Step,
		max:   cfg.Max,
		decay: cfg.Decay,
	}
}

// Nudge tips the device by dx, dy steps. Positive dx tilts it to the left,
// positive dy raises its top edge. Each axis is clamped to ±max.
func (t *TiltSimulator) Nudge(dx, dy float64) {
	t.x = clampAxis(t.x+dx*t.step, t.max)
	t.y = clampAxis(t.y+dy*t.step, t.max)
}

// Sample returns the current reading and lets the device settle one step.
func (t *TiltSimulator) Sample() (float64, float64) {
	x, y := t.x, t.y
	t.x = settle(t.x * t.decay)
	t.y = settle(t.y * t.decay)
	return x, y
}

// Level resets the device to flat.
func (t *TiltSimulator) Level() {
	t.x, t.y = 0, 0
}

func clampAxis(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// settle snaps readings below sensor noise to zero.
func settle(v float64) float64 {
	if math.Abs(v) < 0.01 {
		return 0
	}
	return v
}
