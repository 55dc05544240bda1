package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	TiltLeft  key.Binding
	TiltRight key.Binding
	TiltUp    key.Binding
	TiltDown  key.Binding
	Level     key.Binding
	Tap       key.Binding
	Pause     key.Binding
	Suspend   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TiltLeft, k.Tap, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TiltLeft, k.TiltRight, k.TiltUp, k.TiltDown, k.Level},
		{k.Tap, k.Pause, k.Suspend},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TiltLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←↑→↓/wasd", "roll"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "roll right"),
		),
		TiltUp: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "roll up"),
		),
		TiltDown: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "roll down"),
		),
		Level: key.NewBinding(
			key.WithKeys("0", "l"),
			key.WithHelp("0/l", "level"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "tap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "suspend"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TiltDirection returns the nudge a key applies to the simulated device,
// in steps along each axis. ok is false for keys that do not tilt.
//
// Rolling the marble left means raising the right edge, which the sensor
// reports as a negative x reading, and so on for the other directions.
func (k KeyMap) TiltDirection(msg tea.KeyMsg) (dx, dy float64, ok bool) {
	switch {
	case key.Matches(msg, k.TiltLeft):
		return 1, 0, true
	case key.Matches(msg, k.TiltRight):
		return -1, 0, true
	case key.Matches(msg, k.TiltUp):
		return 0, -1, true
	case key.Matches(msg, k.TiltDown):
		return 0, 1, true
	}
	return 0, 0, false
}
