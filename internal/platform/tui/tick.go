// Package tui hosts the game in a terminal. Bubble Tea provides the host
// event loop: it reports the window, turns mouse and keyboard input into
// touch and tilt events, and shows the frames the game loop posts.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TiltTickMsg is sent each time the simulated sensor should report.
type TiltTickMsg time.Time

// tiltTickCmd returns a Bubble Tea command that sends a tilt tick after the
// sample interval.
func tiltTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TiltTickMsg(t)
	})
}

// offerLatest puts v into the one-slot channel ch, replacing anything
// still waiting there.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
