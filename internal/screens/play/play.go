// Package play implements the game itself: tilt the device to roll the
// marble and stay out of the holes for as long as possible.
package play

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/screens/marble"
)

// Visual characters for rendering
const (
	HoleChar = '○'
	RimChar  = '◌'
)

// Screen is the play screen.
type Screen struct {
	env        screen.Env
	cfg        config.PlayConfig
	physics    marble.Physics
	difficulty *config.DifficultyManager

	mu      sync.Mutex
	tiltX   float64
	tiltY   float64
	marble  marble.Marble
	holes   *HoleField
	paused  bool // In-game pause overlay
	over    bool
	seconds float64
}

// New creates the play screen.
func New(env screen.Env, cfg config.PlayConfig) *Screen {
	s := &Screen{
		env: env,
		cfg: cfg,
		physics: marble.Physics{
			Sensitivity: cfg.Sensitivity,
			Friction:    cfg.Friction,
			Bounce:      cfg.Bounce,
			MaxSpeed:    cfg.MaxSpeed,
		},
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	s.holes = NewHoleField(s.seed(), &s.cfg, s.difficulty)
	return s
}

// seed returns the RNG seed for the next run. A configured seed gives every
// run the same hole layout for the same timing.
func (s *Screen) seed() int64 {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed
	}
	return time.Now().UnixNano()
}

// Ready starts a new run: the marble is centered, the board cleared and
// the clock restarted.
func (s *Screen) Ready() {
	cx, cy := s.env.Window().Center()

	s.mu.Lock()
	s.tiltX, s.tiltY = 0, 0
	s.marble = marble.New(cx, cy, s.cfg.MarbleRadius)
	s.holes.Reset(s.seed())
	s.paused = false
	s.over = false
	s.seconds = 0
	s.mu.Unlock()

	s.env.StartTiming()
}

// Update rolls the marble, spawns holes and ends the run when the marble
// falls in.
func (s *Screen) Update() {
	seconds := s.env.GameTime().Seconds()
	window := s.env.Window()

	s.mu.Lock()
	if s.paused || s.over {
		s.mu.Unlock()
		return
	}
	s.seconds = seconds
	s.marble.Step(s.physics, s.tiltX, s.tiltY, window)
	s.holes.Update(seconds, window, s.marble.X, s.marble.Y)
	_, fell := s.holes.Swallowing(s.marble.X, s.marble.Y)
	if fell {
		s.over = true
	}
	s.mu.Unlock()

	if fell {
		s.env.Logger().Info("marble fell", "seconds", int(seconds))
		s.env.Activate(screen.HighScore)
	}
}

// Draw renders the board, the HUD and the pause overlay.
func (s *Screen) Draw(canvas *core.Canvas) {
	s.mu.Lock()
	m := s.marble
	holes := append([]Hole(nil), s.holes.Holes()...)
	paused := s.paused
	seconds := s.seconds
	s.mu.Unlock()

	canvas.DrawBox(0, 0, canvas.Width(), canvas.Height(), core.ColorBlue)

	for _, h := range holes {
		canvas.DrawDisc(h.X, h.Y, h.Radius+0.5, RimChar, core.ColorGray)
		canvas.DrawDisc(h.X, h.Y, h.Radius, HoleChar, core.ColorMagenta)
	}
	m.Draw(canvas, core.ColorBrightYellow)

	level := s.difficulty.Level(seconds)
	hud := fmt.Sprintf(" Time: %ds  Holes: %d  Level: %d%% ", int(seconds), len(holes), int(level*100))
	canvas.DrawText(2, 0, hud, core.ColorWhite)

	if paused {
		drawCenteredMessage(canvas, "PAUSED", "tap to continue")
	}
}

// drawCenteredMessage draws a boxed two-line message in the middle of the
// canvas.
func drawCenteredMessage(canvas *core.Canvas, title, subtitle string) {
	w := core.Min(canvas.Width(), max(len([]rune(title)), len([]rune(subtitle)))+6)
	h := 5
	x := (canvas.Width() - w) / 2
	y := (canvas.Height() - h) / 2

	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			canvas.Set(i, j, ' ')
		}
	}
	canvas.DrawBox(x, y, w, h, core.ColorYellow)
	canvas.DrawTextCentered(y+1, title, core.ColorBrightYellow)
	canvas.DrawTextCentered(y+3, subtitle, core.ColorWhite)
}

// ProcessTouchInput toggles the pause overlay when a touch is lifted.
func (s *Screen) ProcessTouchInput(ev core.TouchEvent) {
	if ev.Phase != core.TouchUp {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.over {
		s.paused = !s.paused
	}
}

// ProcessMotionInput records the latest tilt.
func (s *Screen) ProcessMotionInput(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiltX, s.tiltY = x, y
}

// Pause shows the overlay so the player returns to a frozen board.
func (s *Screen) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.over {
		s.paused = true
	}
}

// Resume leaves the overlay up until the player taps.
func (s *Screen) Resume() {}

// Paused reports whether the pause overlay is shown.
func (s *Screen) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}
