package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilt/internal/platform/tui"
	"github.com/vovakirdan/tilt/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the longest runs",
	Long: `Display the high-score table.

In a terminal the table is interactive; use --plain (or pipe the output)
for a plain listing.

Examples:
  tilt scores
  tilt scores --plain --limit 5
  tilt scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Entries in the plain listing")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("All scores cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	return printScores(store, flagLimit)
}

// printScores writes the top runs as plain text.
func printScores(store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("Longest Runs")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilt play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %-6s  %s\n", "Rank", "Player", "Time", "Date")
	fmt.Printf("  %-4s  %-24s  %-6s  %s\n", "----", "------", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-6s  %s\n", i+1, entry.Player, fmt.Sprintf("%ds", entry.Score), dateStr)
	}
	return nil
}
