// Package config provides YAML-based configuration loading and difficulty
// management for the tilt game.
package config

// Config is the complete game configuration.
type Config struct {
	Loop      LoopConfig      `yaml:"loop"`
	Tilt      TiltConfig      `yaml:"tilt"`
	Start     StartConfig     `yaml:"start"`
	Play      PlayConfig      `yaml:"play"`
	HighScore HighScoreConfig `yaml:"highscore"`
}

// LoopConfig tunes the game loop.
type LoopConfig struct {
	MaxFPS int `yaml:"max_fps"` // Frame cap; 0 runs uncapped
}

// TiltConfig tunes the simulated accelerometer used by terminal hosts.
type TiltConfig struct {
	SampleIntervalMS int     `yaml:"sample_interval_ms"` // Sensor sample period
	Step             float64 `yaml:"step"`               // Tilt added per key press (m/s²)
	Max              float64 `yaml:"max"`                // Clamp for each axis (m/s²)
	Decay            float64 `yaml:"decay"`              // Per-sample multiplier toward level
}

// StartConfig tunes the start screen.
type StartConfig struct {
	BlinkTicks int `yaml:"blink_ticks"` // Ticks per prompt blink phase
	IntroTicks int `yaml:"intro_ticks"` // Length of the title slide-in
}

// PlayConfig tunes the play screen.
type PlayConfig struct {
	MarbleRadius   float64          `yaml:"marble_radius"`
	Sensitivity    float64          `yaml:"sensitivity"` // Acceleration per m/s² of tilt, cells/tick²
	Friction       float64          `yaml:"friction"`    // Velocity multiplier per tick
	Bounce         float64          `yaml:"bounce"`      // Fraction of speed kept on wall hits
	MaxSpeed       float64          `yaml:"max_speed"`   // Cells per tick
	HoleRadius     float64          `yaml:"hole_radius"`
	SpawnEverySecs float64          `yaml:"spawn_every_secs"`
	MaxHoles       int              `yaml:"max_holes"`
	SafeDistance   float64          `yaml:"safe_distance"` // No hole spawns this close to the marble
	Seed           int64            `yaml:"seed"`          // 0 = time based
	Difficulty     DifficultyConfig `yaml:"difficulty"`
}

// HighScoreConfig tunes the high-score screen.
type HighScoreConfig struct {
	TopN int `yaml:"top_n"` // Entries shown on the board
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Seconds survived at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpawnReduction float64 `yaml:"spawn_reduction"` // Fraction cut from the spawn interval at max difficulty
	HoleGrowth     float64 `yaml:"hole_growth"`     // Fraction added to hole radius at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts the play difficulty for a named preset. An empty
// preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Play.Difficulty.Enabled = false
	default:
		cfg.Play.Difficulty.Enabled = true
		cfg.Play.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
