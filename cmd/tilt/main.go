// tilt is a marble game for the terminal: tilt the board to keep the
// marble out of the holes for as long as you can.
//
// Usage:
//
//	tilt play     - Play in this terminal
//	tilt scores   - Show the longest runs
//	tilt serve    - Start SSH server for remote play
//	tilt config   - Print the default configuration
//
// Global flags:
//
//	--config <path>    - Game config YAML (default: search ~/.tilt, ./configs)
//	--db <path>        - Scores database (default: ~/.tilt/scores.db)
//	--log-file <path>  - Write debug logs to a file
//	--seed <value>     - Hole layout seed (0 = random)
//	--fps <rate>       - Frame cap (0 = uncapped)
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagLogFile    string
	flagSeed       int64
	flagFPS        int
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilt",
	Short: "Tilt - roll a marble around the holes in your terminal",
	Long: `Tilt is a marble game for the terminal. Tilt the board with the arrow
keys to roll the marble; holes open up over time and the run ends when the
marble falls in. Survive as long as you can.

Available commands:
  play     - Play in this terminal
  scores   - Show the longest runs
  serve    - Start SSH server for remote play
  config   - Print the default configuration

Examples:
  tilt play
  tilt play --difficulty hard
  tilt scores
  tilt serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilt/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for hole placement (0 = random)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame cap, overrides the config (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game config and applies the command-line overrides.
func loadConfig() (*config.Config, error) {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	cfg := &loaded

	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(cfg, preset)
	default:
		return nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	if flagSeed != 0 {
		cfg.Play.Seed = flagSeed
	}
	if flagFPS > 0 {
		cfg.Loop.MaxFPS = flagFPS
	}
	return cfg, nil
}

// newLogger returns a logger writing to --log-file, or one that discards
// everything. The terminal belongs to the game, so nothing is logged there.
func newLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := tea.LogToFile(flagLogFile, "tilt")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "tilt",
	})
	return logger, func() { f.Close() }, nil
}
