package core

import (
	"math"
	"strings"
)

// Cell is a single character position on a canvas.
type Cell struct {
	Rune  rune
	Color Color
}

// blank is the value every cell holds after Clear.
var blank = Cell{Rune: ' ', Color: ColorDefault}

// Canvas is a 2D cell buffer screens draw into. It decouples screen
// rendering from the terminal: screens place runes and colors while the host
// turns the finished canvas into something it can display.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a canvas with the given dimensions filled with spaces.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.cells = make([][]Cell, height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, width)
	}
	c.Clear()
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the entire canvas with uncolored spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = blank
		}
	}
}

// Set places a rune with the default color at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune) {
	c.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) SetColor(x, y int, r rune, color Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Color: color}
}

// Get returns the rune at the given position, or space when out of bounds.
func (c *Canvas) Get(x, y int) rune {
	return c.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out
// of bounds.
func (c *Canvas) GetCell(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return blank
	}
	return c.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond canvas bounds are clipped.
func (c *Canvas) DrawText(x, y int, text string, color Color) {
	i := 0
	for _, r := range text {
		c.SetColor(x+i, y, r, color)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (c *Canvas) DrawTextCentered(y int, text string, color Color) {
	x := (c.width - len([]rune(text))) / 2
	c.DrawText(x, y, text, color)
}

// DrawBox draws a box outline using box-drawing characters.
func (c *Canvas) DrawBox(x, y, w, h int, color Color) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1

	c.SetColor(x, y, '┌', color)
	c.SetColor(right, y, '┐', color)
	c.SetColor(x, bottom, '└', color)
	c.SetColor(right, bottom, '┘', color)

	for i := x + 1; i < right; i++ {
		c.SetColor(i, y, '─', color)
		c.SetColor(i, bottom, '─', color)
	}
	for j := y + 1; j < bottom; j++ {
		c.SetColor(x, j, '│', color)
		c.SetColor(right, j, '│', color)
	}
}

// DrawDisc fills every cell whose center lies within radius of (cx, cy).
// A disc smaller than one cell still marks the cell containing its center.
func (c *Canvas) DrawDisc(cx, cy, radius float64, r rune, color Color) {
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if Distance(cx, cy, float64(x)+0.5, float64(y)+0.5) <= radius {
				c.SetColor(x, y, r, color)
			}
		}
	}
	c.SetColor(int(math.Floor(cx)), int(math.Floor(cy)), r, color)
}

// String converts the canvas to plain text, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	runes := make([]rune, c.width)
	for x, cell := range c.cells[y] {
		runes[x] = cell.Rune
	}
	return string(runes)
}
