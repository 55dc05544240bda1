package config

import "math"

// Floors that keep the play screen winnable at max difficulty.
const (
	minSpawnInterval = 0.5 // seconds
)

// DifficultyManager calculates dynamic play parameters from time survived.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == "time"
}

// Level returns the current difficulty level (0.0 to 1.0) after the given
// number of seconds survived.
func (d *DifficultyManager) Level(seconds float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(seconds/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpawnInterval returns the seconds between hole spawns.
func (d *DifficultyManager) SpawnInterval(base, seconds float64) float64 {
	level := d.Level(seconds)
	result := base * (1.0 - level*d.cfg.Scaling.SpawnReduction)
	return math.Max(result, minSpawnInterval)
}

// HoleRadius returns the radius of newly spawned holes.
func (d *DifficultyManager) HoleRadius(base, seconds float64) float64 {
	level := d.Level(seconds)
	return base * (1.0 + level*d.cfg.Scaling.HoleGrowth)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
