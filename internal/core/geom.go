// Package core provides fundamental types shared by the loop, the screens and
// the host bridge. It has no external dependencies so screen logic stays
// testable without a terminal.
package core

import "math"

// RectF is an axis-aligned rectangle in window units (terminal cells).
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRectF creates a rectangle with the given position and dimensions.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
// The right and bottom edges are exclusive.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r RectF) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by d on every side. The result never has a
// negative size.
func (r RectF) Inset(d float64) RectF {
	w := math.Max(0, r.W-2*d)
	h := math.Max(0, r.H-2*d)
	return RectF{X: r.X + d, Y: r.Y + d, W: w, H: h}
}

// Empty reports whether the rectangle has no area.
func (r RectF) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
