// Package screentest provides a scriptable screen.Env for screen tests.
package screentest

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/screen"
)

// TextRequest is one RequestText call.
type TextRequest struct {
	Prompt string
	Reply  func(string)
}

// Env records what a screen asks of its environment.
type Env struct {
	mu          sync.Mutex
	window      core.RectF
	activations []screen.ID
	timings     int
	gameTime    time.Duration
	requests    []TextRequest
	logger      *log.Logger
}

// NewEnv creates an Env with a width x height window.
func NewEnv(width, height int) *Env {
	return &Env{
		window: core.NewRectF(0, 0, float64(width), float64(height)),
		logger: log.New(io.Discard),
	}
}

func (e *Env) Window() core.RectF {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.window
}

func (e *Env) Activate(id screen.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activations = append(e.activations, id)
}

func (e *Env) StartTiming() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timings++
	e.gameTime = 0
}

func (e *Env) GameTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameTime
}

func (e *Env) RequestText(prompt string, reply func(string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, TextRequest{Prompt: prompt, Reply: reply})
}

func (e *Env) Logger() *log.Logger {
	return e.logger
}

// SetGameTime sets what GameTime returns until the next StartTiming.
func (e *Env) SetGameTime(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gameTime = d
}

// Activations returns every requested transition, in order.
func (e *Env) Activations() []screen.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]screen.ID(nil), e.activations...)
}

// LastActivation returns the most recent transition request.
func (e *Env) LastActivation() (screen.ID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.activations) == 0 {
		return 0, false
	}
	return e.activations[len(e.activations)-1], true
}

// Timings returns how many times StartTiming was called.
func (e *Env) Timings() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timings
}

// Requests returns every text request, in order.
func (e *Env) Requests() []TextRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]TextRequest(nil), e.requests...)
}

var _ screen.Env = (*Env)(nil)
