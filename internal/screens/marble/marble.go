// Package marble holds the rolling-ball physics shared by the start and
// play screens.
package marble

import (
	"math"

	"github.com/vovakirdan/tilt/internal/core"
)

// Char is the rune the marble is drawn with.
const Char = '●'

// Physics tunes how tilt turns into motion.
type Physics struct {
	Sensitivity float64 // Acceleration per m/s² of tilt, cells/tick²
	Friction    float64 // Velocity multiplier per tick
	Bounce      float64 // Fraction of speed kept on wall hits
	MaxSpeed    float64 // Cells per tick; 0 = unbounded
}

// Marble is a ball rolling on the window plane.
type Marble struct {
	X, Y   float64 // Center
	VX, VY float64 // Velocity per tick
	Radius float64
}

// New creates a marble at rest at (x, y).
func New(x, y, radius float64) Marble {
	return Marble{X: x, Y: y, Radius: radius}
}

// Accel converts a tilt sample into acceleration in window coordinates.
// Tilting left (positive x) rolls the marble left; raising the top edge
// (positive y) rolls it down.
func (p Physics) Accel(tiltX, tiltY float64) (float64, float64) {
	return -tiltX * p.Sensitivity, tiltY * p.Sensitivity
}

// Step advances the marble by one tick under the given tilt and keeps it
// inside bounds. It returns true if the marble hit a wall.
func (m *Marble) Step(p Physics, tiltX, tiltY float64, bounds core.RectF) bool {
	ax, ay := p.Accel(tiltX, tiltY)
	m.VX = (m.VX + ax) * p.Friction
	m.VY = (m.VY + ay) * p.Friction

	if p.MaxSpeed > 0 {
		if speed := math.Hypot(m.VX, m.VY); speed > p.MaxSpeed {
			m.VX *= p.MaxSpeed / speed
			m.VY *= p.MaxSpeed / speed
		}
	}

	m.X += m.VX
	m.Y += m.VY

	inner := bounds.Inset(m.Radius)
	hit := false
	if m.X < inner.X {
		m.X = inner.X
		m.VX = -m.VX * p.Bounce
		hit = true
	} else if m.X > inner.Right() {
		m.X = inner.Right()
		m.VX = -m.VX * p.Bounce
		hit = true
	}
	if m.Y < inner.Y {
		m.Y = inner.Y
		m.VY = -m.VY * p.Bounce
		hit = true
	} else if m.Y > inner.Bottom() {
		m.Y = inner.Bottom()
		m.VY = -m.VY * p.Bounce
		hit = true
	}
	return hit
}

// Speed returns the marble's speed in cells per tick.
func (m Marble) Speed() float64 {
	return math.Hypot(m.VX, m.VY)
}

// Draw renders the marble onto the canvas.
func (m Marble) Draw(canvas *core.Canvas, color core.Color) {
	canvas.DrawDisc(m.X, m.Y, m.Radius, Char, color)
}
