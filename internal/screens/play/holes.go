package play

import (
	"math/rand"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
)

// spawnAttempts bounds the search for a free spot before a spawn is skipped.
const spawnAttempts = 20

// Hole is a pit the marble must avoid.
type Hole struct {
	X, Y   float64 // Center
	Radius float64
}

// Swallows reports whether a marble centered at (x, y) falls in.
func (h Hole) Swallows(x, y float64) bool {
	return core.Distance(h.X, h.Y, x, y) < h.Radius
}

// HoleField spawns holes over time and tracks the ones on the board.
type HoleField struct {
	holes      []Hole
	rng        *rand.Rand
	cfg        *config.PlayConfig
	difficulty *config.DifficultyManager
	nextSpawn  float64 // Seconds at which the next hole appears
}

// NewHoleField creates an empty field seeded with seed.
func NewHoleField(seed int64, cfg *config.PlayConfig, diff *config.DifficultyManager) *HoleField {
	f := &HoleField{
		holes:      make([]Hole, 0, cfg.MaxHoles),
		cfg:        cfg,
		difficulty: diff,
	}
	f.Reset(seed)
	return f
}

// Reset clears all holes and reseeds the RNG.
func (f *HoleField) Reset(seed int64) {
	f.holes = f.holes[:0]
	f.rng = rand.New(rand.NewSource(seed))
	f.nextSpawn = f.difficulty.SpawnInterval(f.cfg.SpawnEverySecs, 0)
}

// Holes returns the holes on the board.
func (f *HoleField) Holes() []Hole {
	return f.holes
}

// Update spawns a hole if one is due at the given time. Holes never appear
// within the configured safe distance of (marbleX, marbleY). It reports
// whether a hole was added.
func (f *HoleField) Update(seconds float64, bounds core.RectF, marbleX, marbleY float64) bool {
	if seconds < f.nextSpawn {
		return false
	}
	f.nextSpawn = seconds + f.difficulty.SpawnInterval(f.cfg.SpawnEverySecs, seconds)

	if len(f.holes) >= f.cfg.MaxHoles {
		return false
	}

	radius := f.difficulty.HoleRadius(f.cfg.HoleRadius, seconds)
	area := bounds.Inset(radius + 1)
	if area.Empty() {
		return false
	}

	for i := 0; i < spawnAttempts; i++ {
		x := area.X + f.rng.Float64()*area.W
		y := area.Y + f.rng.Float64()*area.H
		if core.Distance(x, y, marbleX, marbleY) < f.cfg.SafeDistance+radius {
			continue
		}
		f.holes = append(f.holes, Hole{X: x, Y: y, Radius: radius})
		return true
	}
	return false
}

// Swallowing returns the hole the marble at (x, y) falls into, if any.
func (f *HoleField) Swallowing(x, y float64) (Hole, bool) {
	for _, h := range f.holes {
		if h.Swallows(x, y) {
			return h, true
		}
	}
	return Hole{}, false
}
