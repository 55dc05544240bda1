package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilt/internal/platform/tui"
	"github.com/vovakirdan/tilt/internal/storage"
)

// Smallest terminal the board is playable in.
const (
	minWidth  = 40
	minHeight = 12
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD  - Tilt the board
  0/L          - Level the board
  Enter/Space  - Tap (start, pause overlay, continue)
  Mouse        - Touch
  P            - Pause
  Ctrl+Z       - Suspend
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tilt play
  tilt play --difficulty hard
  tilt play --seed 42 --log-file tilt.log
  tilt play --config ./my-tilt.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("tilt play needs an interactive terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < minWidth || h < minHeight) {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, minWidth, minHeight)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{Config: cfg, Logger: logger}

	// Continue without storage - the game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without a scores database", "err", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	logger.Info("starting session", "seed", cfg.Play.Seed, "max_fps", cfg.Loop.MaxFPS)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
