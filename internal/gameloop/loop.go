// Package gameloop runs the update/draw cycle on its own goroutine.
//
// A Loop moves through Created -> Running <-> Paused -> Stopped. Pausing is
// cooperative: the flag is observed at the top of the next cycle, where the
// loop goroutine parks on a condition variable until Resume or Stop wakes
// it. Stopped is terminal; a stopped Loop is discarded, never restarted.
package gameloop

import (
	"errors"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/core"
)

// Errors returned for calls that break the loop's lifecycle contract.
var (
	ErrAlreadyStarted = errors.New("gameloop: already started")
	ErrStopped        = errors.New("gameloop: stopped")
)

// State is the lifecycle state of a Loop.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StatePaused
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Target is advanced and rendered once per cycle.
type Target interface {
	Update()
	Draw(canvas *core.Canvas)
}

// Surface is the host drawing target. Lock hands out a canvas for the
// current frame and Post publishes it once drawing is complete.
type Surface interface {
	Lock() *core.Canvas
	Post(canvas *core.Canvas)
}

// Options configures a Loop.
type Options struct {
	// MaxFPS caps the cycle rate. Zero runs as fast as update+draw complete.
	MaxFPS int

	// Logger receives lifecycle messages. Nil discards them.
	Logger *log.Logger

	// StartedAt seeds the TimeElapsed reference, so a replacement loop can
	// continue the clock of the one it replaces. Zero means not started.
	StartedAt time.Time
}

// Loop drives a Target from a dedicated goroutine.
type Loop struct {
	target   Target
	surface  Surface
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	wake    *sync.Cond
	started bool
	paused  bool
	stopped bool
	parked  bool // loop goroutine is waiting on wake

	done   chan struct{}
	cycles atomic.Uint64

	clockMu   sync.RWMutex
	startedAt time.Time
}

// New creates a Loop in the Created state. Nothing runs until Start.
func New(target Target, surface Surface, opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := &Loop{
		target:    target,
		surface:   surface,
		logger:    logger,
		done:      make(chan struct{}),
		startedAt: opts.StartedAt,
	}
	if opts.MaxFPS > 0 {
		l.interval = time.Second / time.Duration(opts.MaxFPS)
	}
	l.wake = sync.NewCond(&l.mu)
	return l
}

// Start launches the loop goroutine.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return ErrStopped
	}
	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true

	go l.run()
	l.logger.Debug("loop started", "interval", l.interval)
	return nil
}

// Pause asks the loop to park at the top of its next cycle.
// A cycle already in progress runs to completion.
func (l *Loop) Pause() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return ErrStopped
	}
	l.paused = true
	return nil
}

// Resume clears the pause flag and wakes the parked loop goroutine.
// The flag change and the signal happen under the mutex the park check
// holds, so a wakeup can never be lost.
func (l *Loop) Resume() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return ErrStopped
	}
	l.paused = false
	l.wake.Signal()
	return nil
}

// Stop requests shutdown and returns without waiting. The loop goroutine
// exits at the next cycle boundary. Stopping twice is harmless.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.stopped = true
	l.wake.Broadcast()

	// A loop that never started has no goroutine to close done.
	if !l.started {
		close(l.done)
	}
	l.logger.Debug("loop stop requested", "cycles", l.cycles.Load())
}

// Join blocks until the loop goroutine has exited. It must not be called
// from inside a cycle.
func (l *Loop) Join() {
	<-l.done
}

// Done returns a channel closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// State reports the current lifecycle state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.stopped:
		return StateStopped
	case !l.started:
		return StateCreated
	case l.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// Cycles returns how many update+draw cycles have completed.
func (l *Loop) Cycles() uint64 {
	return l.cycles.Load()
}

// StartTime captures the reference instant for TimeElapsed.
func (l *Loop) StartTime() {
	l.clockMu.Lock()
	l.startedAt = time.Now()
	l.clockMu.Unlock()
}

// TimeElapsed returns the wall-clock time since the last StartTime call, or
// zero if StartTime was never called. Time spent paused is included.
func (l *Loop) TimeElapsed() time.Duration {
	l.clockMu.RLock()
	defer l.clockMu.RUnlock()

	if l.startedAt.IsZero() {
		return 0
	}
	return time.Since(l.startedAt)
}

// StartedAt returns the TimeElapsed reference instant, or the zero time if
// the clock was never started.
func (l *Loop) StartedAt() time.Time {
	l.clockMu.RLock()
	defer l.clockMu.RUnlock()
	return l.startedAt
}

// run is the loop goroutine body.
func (l *Loop) run() {
	defer close(l.done)

	for {
		if !l.awaitRunnable() {
			l.logger.Debug("loop exited", "cycles", l.cycles.Load())
			return
		}

		start := time.Now()
		l.cycle()
		l.throttle(start)
	}
}

// awaitRunnable parks while paused and reports whether another cycle may run.
func (l *Loop) awaitRunnable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.paused && !l.stopped {
		l.parked = true
		l.wake.Wait()
		l.parked = false
	}
	return !l.stopped
}

// cycle runs one update followed by one draw.
func (l *Loop) cycle() {
	l.target.Update()

	canvas := l.surface.Lock()
	l.target.Draw(canvas)
	l.surface.Post(canvas)

	l.cycles.Add(1)
}

// throttle yields to other goroutines, sleeping out the rest of the frame
// when a frame cap is configured.
func (l *Loop) throttle(start time.Time) {
	if l.interval <= 0 {
		runtime.Gosched()
		return
	}
	if rest := l.interval - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
}
