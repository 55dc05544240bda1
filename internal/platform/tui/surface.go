package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/core"
)

// FrameMsg carries a rendered frame from the game loop to the model.
type FrameMsg string

// Surface is the drawing target the game loop renders into. Posted frames
// are rendered to strings and handed to the Bubble Tea program through a
// one-slot channel; a frame the program has not picked up yet is replaced
// by the next one.
type Surface struct {
	mu     sync.Mutex
	canvas *core.Canvas
	frames chan string
	posts  uint64
}

// NewSurface creates a surface of width x height cells.
func NewSurface(width, height int) *Surface {
	return &Surface{
		canvas: core.NewCanvas(width, height),
		frames: make(chan string, 1),
	}
}

// Resize replaces the canvas with one of the new size. Frames already
// posted keep their old size.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = core.NewCanvas(width, height)
}

// Size returns the canvas dimensions.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Width(), s.canvas.Height()
}

// Lock implements gameloop.Surface. It returns a cleared canvas. A Resize
// after Lock does not touch the returned canvas; it applies from the next
// frame.
func (s *Surface) Lock() *core.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canvas.Clear()
	return s.canvas
}

// Post implements gameloop.Surface.
func (s *Surface) Post(c *core.Canvas) {
	frame := RenderCanvas(c)

	s.mu.Lock()
	s.posts++
	s.mu.Unlock()

	offerLatest(s.frames, frame)
}

// Posts returns how many frames have been posted.
func (s *Surface) Posts() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

// waitFrame returns a command that delivers the next posted frame, or
// nothing once done is closed.
func (s *Surface) waitFrame(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case frame := <-s.frames:
			return FrameMsg(frame)
		case <-done:
			return nil
		}
	}
}
