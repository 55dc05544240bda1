// Package screens wires the concrete screens into a registry.
package screens

import (
	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/registry"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/screens/highscore"
	"github.com/vovakirdan/tilt/internal/screens/play"
	"github.com/vovakirdan/tilt/internal/screens/start"
)

// NewRegistry registers the start, play and high-score screens in ID
// order. store may be nil, in which case scores are shown but not kept.
func NewRegistry(cfg *config.Config, store highscore.ScoreStore) *registry.Registry {
	r := registry.New()
	r.Register(screen.Start, func(env screen.Env) screen.Screen {
		return start.New(env, cfg.Start, cfg.Play)
	})
	r.Register(screen.Play, func(env screen.Env) screen.Screen {
		return play.New(env, cfg.Play)
	})
	r.Register(screen.HighScore, func(env screen.Env) screen.Screen {
		return highscore.New(env, cfg.HighScore, store)
	})
	return r
}

// Build returns a screen.BuildFunc for the given configuration.
func Build(cfg *config.Config, store highscore.ScoreStore) screen.BuildFunc {
	return NewRegistry(cfg, store).Build
}
