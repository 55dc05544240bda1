package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilt/internal/core"
)

func TestRenderCanvas(t *testing.T) {
	c := core.NewCanvas(6, 3)
	c.DrawText(0, 0, "tilt", core.ColorRed)
	c.SetColor(5, 2, '●', core.ColorBrightYellow)

	out := RenderCanvas(c)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered %d lines, expected 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d is %d cells wide, expected 6", i, w)
		}
	}
	if !strings.Contains(out, "tilt") {
		t.Error("text missing from rendered canvas")
	}
	if !strings.Contains(lines[2], "●") {
		t.Error("marble missing from last line")
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 3, "toolong"},
	}
	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestSurfaceLatestFrameWins(t *testing.T) {
	s := NewSurface(4, 1)

	for _, text := range []string{"one", "two", "thr"} {
		c := s.Lock()
		c.DrawText(0, 0, text, core.ColorDefault)
		s.Post(c)
	}

	if s.Posts() != 3 {
		t.Errorf("Posts() = %d, expected 3", s.Posts())
	}

	done := make(chan struct{})
	msg := s.waitFrame(done)()
	frame, ok := msg.(FrameMsg)
	if !ok {
		t.Fatalf("waitFrame returned %T, expected FrameMsg", msg)
	}
	if !strings.Contains(string(frame), "thr") {
		t.Errorf("frame = %q, expected the latest post", frame)
	}

	// Nothing left; closing done releases the waiter
	result := make(chan any, 1)
	go func() { result <- s.waitFrame(done)() }()
	close(done)
	select {
	case msg := <-result:
		if msg != nil {
			t.Errorf("waitFrame after done = %v, expected nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waitFrame did not return after done closed")
	}
}

func TestSurfaceLockClears(t *testing.T) {
	s := NewSurface(3, 1)
	c := s.Lock()
	c.Set(0, 0, 'x')

	c = s.Lock()
	if c.Get(0, 0) != ' ' {
		t.Error("Lock should hand out a cleared canvas")
	}

	s.Resize(5, 2)
	if w, h := s.Size(); w != 5 || h != 2 {
		t.Errorf("Size() = %dx%d after Resize, expected 5x2", w, h)
	}
}

func TestSurfaceResizeDuringFrames(t *testing.T) {
	s := NewSurface(4, 2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.Resize(6, 3)
			} else {
				s.Resize(4, 2)
			}
		}
	}()

	for i := 0; i < 200; i++ {
		c := s.Lock()
		w, h := c.Width(), c.Height()
		if !(w == 4 && h == 2) && !(w == 6 && h == 3) {
			t.Fatalf("Lock() returned a %dx%d canvas, expected 4x2 or 6x3", w, h)
		}
		if c.Get(0, 0) != ' ' {
			t.Fatal("Lock should hand out a cleared canvas")
		}
		c.Set(0, 0, 'x')
		s.Post(c)
	}
	wg.Wait()
}
