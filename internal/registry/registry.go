// Package registry holds the ordered list of screen factories a Manager
// builds its screens from. Registration order is the screen ID order, so
// the registry can be turned straight into an indexed slice.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tilt/internal/screen"
)

// Factory creates a screen bound to the given environment.
type Factory func(env screen.Env) screen.Screen

// Registry is an ordered set of screen factories keyed by ID.
// The zero value is ready to use.
type Registry struct {
	mu        sync.RWMutex
	factories []Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds the factory for id. IDs must be registered in ascending
// order starting at zero with no gaps; anything else panics.
func (r *Registry) Register(id screen.ID, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for screen %v", id))
	}
	if int(id) != len(r.factories) {
		panic(fmt.Sprintf("registry: screen %v registered out of order (next id is %d)", id, len(r.factories)))
	}
	r.factories = append(r.factories, f)
}

// Len returns the number of registered screens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Build constructs every registered screen, in ID order.
func (r *Registry) Build(env screen.Env) []screen.Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()

	screens := make([]screen.Screen, len(r.factories))
	for i, f := range r.factories {
		screens[i] = f(env)
	}
	return screens
}
