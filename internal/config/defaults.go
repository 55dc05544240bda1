package config

import (
	_ "embed"
)

//go:embed defaults/tilt.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors
// defaults/tilt.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Loop: LoopConfig{
			MaxFPS: 30,
		},
		Tilt: TiltConfig{
			SampleIntervalMS: 60,
			Step:             2.5,
			Max:              9.8,
			Decay:            0.85,
		},
		Start: StartConfig{
			BlinkTicks: 15,
			IntroTicks: 20,
		},
		Play: PlayConfig{
			MarbleRadius:   1.0,
			Sensitivity:    0.012,
			Friction:       0.96,
			Bounce:         0.5,
			MaxSpeed:       1.5,
			HoleRadius:     1.5,
			SpawnEverySecs: 3,
			MaxHoles:       12,
			SafeDistance:   6,
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "time",
					MaxAt: 120,
				},
				Scaling: ScalingConfig{
					SpawnReduction: 0.6,
					HoleGrowth:     0.5,
				},
			},
		},
		HighScore: HighScoreConfig{
			TopN: 5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
