// Package screen defines the screen capability set and the Manager that owns
// the screen registry, tracks the active screen and routes loop cycles and
// input events to it.
package screen

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/core"
)

// ID identifies a screen. IDs double as registry indices.
type ID int

// The closed set of screen identities, in registry order.
const (
	Start ID = iota
	Play
	HighScore
	Reserved // Reserved identity; no screen is registered for it
)

// String returns a human-readable name for the screen ID.
func (id ID) String() string {
	switch id {
	case Start:
		return "Start"
	case Play:
		return "Play"
	case HighScore:
		return "HighScore"
	case Reserved:
		return "Reserved"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// Screen is a unit of presentation and interaction logic.
//
// Implementations: screens/start, screens/play and screens/highscore.
//
// Update and Draw are only called from the loop goroutine and never
// concurrently with each other. Input hooks run on the host goroutine and
// may interleave with Update and Draw, so any state shared between the two
// paths must be synchronized by the screen.
type Screen interface {
	// Ready is called once per activation, right after the screen becomes
	// active. It resets per-activation state and must not block or request
	// another transition.
	Ready()

	// Update advances one tick of logic.
	Update()

	// Draw renders the current state. It must not change logic state.
	Draw(canvas *core.Canvas)

	// ProcessTouchInput consumes one touch event.
	ProcessTouchInput(ev core.TouchEvent)

	// ProcessMotionInput consumes one tilt sample.
	ProcessMotionInput(x, y float64)

	// Pause and Resume release and reacquire per-screen resources when the
	// loop is paused or resumed. They may run on any goroutine.
	Pause()
	Resume()
}

// Env is what the core exposes to screens.
type Env interface {
	// Window returns the drawable region, (0, 0, width, height).
	Window() core.RectF

	// Activate requests a transition to the screen with the given ID.
	Activate(id ID)

	// StartTiming resets the elapsed-time reference to now.
	StartTiming()

	// GameTime returns the time since the last StartTiming call.
	GameTime() time.Duration

	// RequestText asks the host to collect a line of text from the player.
	// reply is called later on the host goroutine.
	RequestText(prompt string, reply func(string))

	// Logger returns the session logger.
	Logger() *log.Logger
}

// Host is the part of the host bridge the core calls back into.
type Host interface {
	// RequestText opens a text prompt. It must return immediately.
	RequestText(prompt string, reply func(string))
}

// Waiter is implemented by screens that run background work. EndGame waits
// for it before returning, so resources the work uses can be released
// afterwards.
type Waiter interface {
	Wait()
}

// BuildFunc constructs the screen registry. The returned slice is indexed
// by ID.
type BuildFunc func(env Env) []Screen
