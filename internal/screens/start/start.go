// Package start implements the title screen: a sliding title, a blinking
// prompt and a marble the player can roll around before starting.
package start

import (
	"sync"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/screens/marble"
)

// Title and prompt text
const (
	Title  = "T  I  L  T"
	Prompt = "tap to start"
	Hint   = "tilt to roll the marble, avoid the holes"
)

// Screen is the title screen.
type Screen struct {
	env     screen.Env
	cfg     config.StartConfig
	physics marble.Physics

	mu     sync.Mutex
	ticks  int
	tiltX  float64
	tiltY  float64
	marble marble.Marble
}

// New creates the start screen.
func New(env screen.Env, cfg config.StartConfig, play config.PlayConfig) *Screen {
	return &Screen{
		env: env,
		cfg: cfg,
		physics: marble.Physics{
			Sensitivity: play.Sensitivity,
			Friction:    play.Friction,
			Bounce:      play.Bounce,
			MaxSpeed:    play.MaxSpeed,
		},
	}
}

// Ready restarts the intro and recenters the marble.
func (s *Screen) Ready() {
	cx, cy := s.env.Window().Center()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks = 0
	s.tiltX, s.tiltY = 0, 0
	s.marble = marble.New(cx, cy+3, 1)
}

// Update advances the intro and rolls the marble.
func (s *Screen) Update() {
	window := s.env.Window()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++
	s.marble.Step(s.physics, s.tiltX, s.tiltY, window)
}

// Draw renders the title, prompt and marble.
func (s *Screen) Draw(canvas *core.Canvas) {
	s.mu.Lock()
	ticks := s.ticks
	m := s.marble
	s.mu.Unlock()

	canvas.DrawBox(0, 0, canvas.Width(), canvas.Height(), core.ColorCyan)
	canvas.DrawText(titleX(canvas.Width(), ticks, s.cfg.IntroTicks), titleY(canvas.Height()), Title, core.ColorBrightYellow)

	if ticks >= s.cfg.IntroTicks {
		if promptVisible(ticks, s.cfg.BlinkTicks) {
			canvas.DrawTextCentered(titleY(canvas.Height())+2, Prompt, core.ColorWhite)
		}
		canvas.DrawTextCentered(canvas.Height()-2, Hint, core.ColorGray)
	}

	m.Draw(canvas, core.ColorBrightCyan)
}

// ProcessTouchInput starts a game when a touch is lifted.
func (s *Screen) ProcessTouchInput(ev core.TouchEvent) {
	if ev.Phase == core.TouchUp {
		s.env.Activate(screen.Play)
	}
}

// ProcessMotionInput records the latest tilt.
func (s *Screen) ProcessMotionInput(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiltX, s.tiltY = x, y
}

// Pause and Resume hold no resources on this screen.
func (s *Screen) Pause() {}
func (s *Screen) Resume() {}

// titleY returns the title row, a third of the way down.
func titleY(height int) int {
	return height / 3
}

// titleX slides the title in from the left edge to the center over
// introTicks ticks.
func titleX(width, ticks, introTicks int) int {
	final := (width - len([]rune(Title))) / 2
	if introTicks <= 0 || ticks >= introTicks {
		return final
	}
	return final * ticks / introTicks
}

// promptVisible reports whether the blinking prompt is shown on this tick.
func promptVisible(ticks, blinkTicks int) bool {
	if blinkTicks <= 0 {
		return true
	}
	return (ticks/blinkTicks)%2 == 0
}
