package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config location checked by Load.
const LocalPath = "configs/tilt.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.tilt/config.yaml -> ./configs/tilt.yaml -> embedded default.
// Files are applied on top of the defaults, so they may set only some keys.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or broken.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(), LocalPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays YAML on the defaults and validates the result.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns ~/.tilt/config.yaml, or "" without a home dir.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilt", "config.yaml")
}

// Validate reports values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Loop.MaxFPS < 0 {
		errs = append(errs, fmt.Errorf("loop.max_fps must not be negative, got %d", c.Loop.MaxFPS))
	}
	if c.Tilt.SampleIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("tilt.sample_interval_ms must be positive, got %d", c.Tilt.SampleIntervalMS))
	}
	if c.Tilt.Decay < 0 || c.Tilt.Decay > 1 {
		errs = append(errs, fmt.Errorf("tilt.decay must be within [0, 1], got %v", c.Tilt.Decay))
	}
	if c.Play.MarbleRadius <= 0 {
		errs = append(errs, fmt.Errorf("play.marble_radius must be positive, got %v", c.Play.MarbleRadius))
	}
	if c.Play.Friction <= 0 || c.Play.Friction > 1 {
		errs = append(errs, fmt.Errorf("play.friction must be within (0, 1], got %v", c.Play.Friction))
	}
	if c.Play.SpawnEverySecs <= 0 {
		errs = append(errs, fmt.Errorf("play.spawn_every_secs must be positive, got %v", c.Play.SpawnEverySecs))
	}
	if c.Play.MaxHoles < 0 {
		errs = append(errs, fmt.Errorf("play.max_holes must not be negative, got %d", c.Play.MaxHoles))
	}
	switch c.Play.Difficulty.Progression.Type {
	case "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("play.difficulty.progression.type must be time or none, got %q", c.Play.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}
