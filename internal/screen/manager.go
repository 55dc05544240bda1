package screen

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/gameloop"
)

// ErrGameEnded is returned by lifecycle calls made after EndGame.
var ErrGameEnded = errors.New("screen: game ended")

// Options configures a Manager.
type Options struct {
	// Build creates the screens once the surface is ready.
	Build BuildFunc

	// Surface is the drawing target handed to the loop.
	Surface gameloop.Surface

	// Host serves text prompts. Nil drops them.
	Host Host

	// Loop configures the game loop created on SurfaceReady.
	Loop gameloop.Options

	// Logger receives lifecycle messages. Nil discards them.
	Logger *log.Logger
}

// Manager is the single source of truth for which screen is active. It
// bridges the host, the game loop and the screens for one game session.
//
// Host-side calls (SurfaceReady, input, Pause/Resume/EndGame) come from the
// host goroutine; Update and Draw come from the loop goroutine.
type Manager struct {
	build   BuildFunc
	surface gameloop.Surface
	host    Host
	loopCfg gameloop.Options
	logger  *log.Logger

	// mu guards the registry and the active reference. SetActiveScreen
	// holds it across the swap and Ready, so readers never see a screen
	// that has not been readied.
	mu       sync.RWMutex
	screens  []Screen
	active   Screen
	activeID ID

	// lifeMu guards the loop, the window and the pause bookkeeping.
	lifeMu sync.Mutex
	loop   *gameloop.Loop
	ended  bool
	window core.RectF

	// clockRef holds the run clock while there is no loop; the next loop
	// is seeded with it.
	clockRef time.Time

	// paused is the screen that received the last Pause, owed a Resume.
	paused Screen
}

// NewManager creates a Manager. Nothing runs until SurfaceReady.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	loopCfg := opts.Loop
	if loopCfg.Logger == nil {
		loopCfg.Logger = logger
	}

	return &Manager{
		build:   opts.Build,
		surface: opts.Surface,
		host:    opts.Host,
		loopCfg: loopCfg,
		logger:  logger,
	}
}

// SurfaceReady handles the host's notification that a drawable surface of
// width x height cells exists. The first call creates and starts the game
// loop, builds the screens in ID order and activates Start. While a loop
// exists further calls are no-ops. After SurfaceLost a new loop is created
// for the new surface; the existing screens are kept.
func (m *Manager) SurfaceReady(width, height int) error {
	m.lifeMu.Lock()
	if m.ended {
		m.lifeMu.Unlock()
		return ErrGameEnded
	}
	if m.loop != nil {
		m.lifeMu.Unlock()
		return nil
	}

	loopCfg := m.loopCfg
	loopCfg.StartedAt = m.clockRef
	m.loop = gameloop.New(m, m.surface, loopCfg)
	if err := m.loop.Start(); err != nil {
		m.loop = nil
		m.lifeMu.Unlock()
		return fmt.Errorf("screen: cannot start game loop: %w", err)
	}
	firstSurface := m.window.Empty()
	if firstSurface {
		m.window = core.NewRectF(0, 0, float64(width), float64(height))
	}
	m.lifeMu.Unlock()

	m.logger.Info("surface ready", "width", width, "height", height, "first", firstSurface)

	m.mu.Lock()
	built := m.screens != nil
	if !built {
		m.screens = m.build(m)
	}
	m.mu.Unlock()

	if !built {
		m.SetActiveScreen(Start)
	}
	return nil
}

// SurfaceLost handles the host's notification that the surface is going
// away. The loop is stopped and discarded; the screens, the active screen
// and the run clock survive for the next SurfaceReady. Safe to call at any
// time.
func (m *Manager) SurfaceLost() {
	m.lifeMu.Lock()
	loop := m.loop
	m.loop = nil
	if loop != nil {
		m.clockRef = loop.StartedAt()
	}
	m.lifeMu.Unlock()

	if loop == nil {
		return
	}
	loop.Stop()
	loop.Join()
	m.logger.Info("surface lost", "cycles", loop.Cycles())
}

// SetActiveScreen makes the screen with the given ID active and then calls
// its Ready. Nothing is called on the outgoing screen. An ID without a
// registered screen is a programmer error and panics.
func (m *Manager) SetActiveScreen(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id < 0 || int(id) >= len(m.screens) {
		panic(fmt.Sprintf("screen: no screen registered for %v (%d screens)", id, len(m.screens)))
	}

	m.active = m.screens[id]
	m.activeID = id
	m.active.Ready()

	m.logger.Debug("screen activated", "screen", id)
}

// Activate implements Env.
func (m *Manager) Activate(id ID) {
	m.SetActiveScreen(id)
}

// current returns the active screen, or nil before the first activation.
func (m *Manager) current() Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// ActiveID returns the active screen's ID, or false if none is active yet.
func (m *Manager) ActiveID() (ID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeID, m.active != nil
}

// Screens returns the registry in ID order. It is empty before the
// surface is ready.
func (m *Manager) Screens() []Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Screen(nil), m.screens...)
}

// Update advances the active screen. No-op before the first activation.
func (m *Manager) Update() {
	if s := m.current(); s != nil {
		s.Update()
	}
}

// Draw renders the active screen. No-op before the first activation.
func (m *Manager) Draw(canvas *core.Canvas) {
	if s := m.current(); s != nil {
		s.Draw(canvas)
	}
}

// OnTouch delivers a touch event to the screen active at the instant of
// delivery. Events arriving before any screen is active are dropped.
func (m *Manager) OnTouch(ev core.TouchEvent) {
	if s := m.current(); s != nil {
		s.ProcessTouchInput(ev)
	}
}

// OnTilt delivers a tilt sample to the screen active at the instant of
// delivery. Samples arriving before any screen is active are dropped.
func (m *Manager) OnTilt(x, y float64) {
	if s := m.current(); s != nil {
		s.ProcessMotionInput(x, y)
	}
}

// liveLoop returns the current loop, nil before the surface is ready, or
// ErrGameEnded once the game has ended.
func (m *Manager) liveLoop() (*gameloop.Loop, error) {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()

	if m.ended {
		return nil, ErrGameEnded
	}
	return m.loop, nil
}

// Pause parks the game loop and pauses the active screen. While a paused
// screen is still owed a Resume, further pauses do not pause it again.
// Before the surface is ready it does nothing.
func (m *Manager) Pause() error {
	loop, err := m.liveLoop()
	if err != nil || loop == nil {
		return err
	}
	if err := loop.Pause(); err != nil {
		return fmt.Errorf("screen: cannot pause: %w", err)
	}
	if s := m.current(); s != nil && m.markPaused(s) {
		s.Pause()
	}
	m.logger.Debug("paused")
	return nil
}

// Resume resumes the screen that was paused and wakes the game loop. If a
// transition happened in between, the screen that received Pause gets the
// Resume, not the one active now. Before the surface is ready it does
// nothing.
func (m *Manager) Resume() error {
	loop, err := m.liveLoop()
	if err != nil || loop == nil {
		return err
	}
	if s := m.takePaused(); s != nil {
		s.Resume()
	}
	if err := loop.Resume(); err != nil {
		return fmt.Errorf("screen: cannot resume: %w", err)
	}
	m.logger.Debug("resumed")
	return nil
}

// markPaused records s as owed a Resume. It reports false if a paused
// screen is already recorded.
func (m *Manager) markPaused(s Screen) bool {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	if m.paused != nil {
		return false
	}
	m.paused = s
	return true
}

// takePaused returns and forgets the screen owed a Resume.
func (m *Manager) takePaused() Screen {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	s := m.paused
	m.paused = nil
	return s
}

// EndGame stops the game loop, waits for it to exit and discards it, then
// waits for background work of screens that implement Waiter. Later Pause,
// Resume and SurfaceReady calls return ErrGameEnded. EndGame must be called
// from the host goroutine, never from a screen.
func (m *Manager) EndGame() {
	m.lifeMu.Lock()
	if m.ended {
		m.lifeMu.Unlock()
		return
	}
	m.ended = true
	loop := m.loop
	m.loop = nil
	m.lifeMu.Unlock()

	if loop != nil {
		loop.Stop()
		loop.Join()
		m.logger.Info("game ended", "cycles", loop.Cycles())
	} else {
		m.logger.Info("game ended before the surface was ready")
	}

	for _, s := range m.Screens() {
		if w, ok := s.(Waiter); ok {
			w.Wait()
		}
	}
}

// Ended reports whether EndGame has been called.
func (m *Manager) Ended() bool {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	return m.ended
}

// LoopState returns the state of the current loop, or false if there is
// no loop (surface not ready, lost, or game ended).
func (m *Manager) LoopState() (gameloop.State, bool) {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()

	if m.loop == nil {
		return gameloop.StateStopped, false
	}
	return m.loop.State(), true
}

// Window implements Env.
func (m *Manager) Window() core.RectF {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	return m.window
}

// StartTiming implements Env. Without a loop the reference is kept for the
// next one.
func (m *Manager) StartTiming() {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	if m.loop != nil {
		m.loop.StartTime()
		return
	}
	m.clockRef = time.Now()
}

// GameTime implements Env. It is zero until StartTiming is first called,
// and keeps running while the surface is lost.
func (m *Manager) GameTime() time.Duration {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	if m.loop != nil {
		return m.loop.TimeElapsed()
	}
	if m.clockRef.IsZero() {
		return 0
	}
	return time.Since(m.clockRef)
}

// RequestText implements Env by forwarding to the host.
func (m *Manager) RequestText(prompt string, reply func(string)) {
	if m.host == nil {
		m.logger.Warn("text request dropped, no host", "prompt", prompt)
		return
	}
	m.host.RequestText(prompt, reply)
}

// Logger implements Env.
func (m *Manager) Logger() *log.Logger {
	return m.logger
}
