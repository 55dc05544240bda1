package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/gameloop"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Loop.MaxFPS = 200
	m := NewModel(Options{Config: &cfg})
	t.Cleanup(m.Shutdown)
	return m
}

// send feeds msg to the model and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func readyModel(t *testing.T) Model {
	t.Helper()
	m, _ := send(t, newTestModel(t), tea.WindowSizeMsg{Width: 60, Height: 21})
	return m
}

func expectActive(t *testing.T, m Model, want screen.ID) {
	t.Helper()
	if id, ok := m.Manager().ActiveID(); !ok || id != want {
		t.Fatalf("ActiveID() = %v, %v; expected %v", id, ok, want)
	}
}

func expectLoopState(t *testing.T, m Model, want gameloop.State) {
	t.Helper()
	state, ok := m.Manager().LoopState()
	if !ok || state != want {
		t.Fatalf("LoopState() = %v, %v; expected %v", state, ok, want)
	}
}

func TestModelFirstResizeStartsGame(t *testing.T) {
	m := newTestModel(t)
	if _, ok := m.Manager().ActiveID(); ok {
		t.Fatal("no screen should be active before the window size is known")
	}

	m = readyModel(t)
	expectActive(t, m, screen.Start)
	expectLoopState(t, m, gameloop.StateRunning)

	win := m.Manager().Window()
	if win.W != 60 || win.H != 20 {
		t.Errorf("Window() = %vx%v, expected 60x20 with a help row reserved", win.W, win.H)
	}

	// Later sizes leave the game alone
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if win := m.Manager().Window(); win.W != 60 || win.H != 20 {
		t.Errorf("Window() changed to %vx%v on a later resize", win.W, win.H)
	}
}

func TestModelTapStartsPlay(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	expectActive(t, m, screen.Play)
}

func TestModelMouseTouches(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	expectActive(t, m, screen.Start)

	// Other buttons are not touches
	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonRight, Action: tea.MouseActionRelease})
	expectActive(t, m, screen.Start)

	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	expectActive(t, m, screen.Play)
}

func TestModelPauseKey(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, runeKey('p'))
	expectLoopState(t, m, gameloop.StatePaused)
	if !m.paused {
		t.Error("model should remember the player paused")
	}

	m, _ = send(t, m, runeKey('p'))
	expectLoopState(t, m, gameloop.StateRunning)
}

func TestModelFocus(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, tea.BlurMsg{})
	expectLoopState(t, m, gameloop.StatePaused)
	m, _ = send(t, m, tea.FocusMsg{})
	expectLoopState(t, m, gameloop.StateRunning)

	// Focus does not override a pause the player asked for
	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, tea.BlurMsg{})
	m, _ = send(t, m, tea.FocusMsg{})
	expectLoopState(t, m, gameloop.StatePaused)
}

func TestModelTiltTick(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	x, _ := m.s.tilt.Sample()
	if x <= 0 {
		t.Fatalf("left arrow should tilt the device left, x = %v", x)
	}

	m, cmd := send(t, m, TiltTickMsg(time.Now()))
	if cmd == nil {
		t.Error("tilt tick should schedule the next tick")
	}

	// Paused sessions do not sample
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, runeKey('p'))
	before := *m.s.tilt
	m, _ = send(t, m, TiltTickMsg(time.Now()))
	if *m.s.tilt != before {
		t.Error("paused session consumed a tilt sample")
	}
}

func TestModelSuspendResume(t *testing.T) {
	m := readyModel(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if cmd == nil {
		t.Fatal("ctrl+z should return a suspend command")
	}
	if _, ok := m.Manager().LoopState(); ok {
		t.Fatal("loop should be gone while suspended")
	}

	m, _ = send(t, m, tea.ResumeMsg{})
	expectLoopState(t, m, gameloop.StateRunning)
	expectActive(t, m, screen.Start)
}

func TestModelTextPrompt(t *testing.T) {
	m := readyModel(t)

	var got []string
	m.s.prompts.RequestText("name?", func(s string) { got = append(got, s) })

	msg := m.s.prompts.waitRequest(m.s.done)()
	req, ok := msg.(TextRequestMsg)
	if !ok {
		t.Fatalf("waitRequest returned %T, expected TextRequestMsg", msg)
	}
	m, _ = send(t, m, req)
	if !m.prompting {
		t.Fatal("dialog should be open")
	}

	// Keys go to the dialog, not the game
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("qp")})
	if m.Manager().Ended() {
		t.Fatal("q in the dialog should not quit")
	}
	expectLoopState(t, m, gameloop.StateRunning)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompting {
		t.Error("enter should close the dialog")
	}
	if len(got) != 1 || got[0] != "qp" {
		t.Errorf("replies = %q, expected [\"qp\"]", got)
	}
}

func TestModelTextPromptEscape(t *testing.T) {
	m := readyModel(t)

	var got []string
	m, _ = send(t, m, TextRequestMsg{Prompt: "name?", Reply: func(s string) { got = append(got, s) }})
	m, _ = send(t, m, runeKey('x'))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if len(got) != 1 || got[0] != "" {
		t.Errorf("replies = %q, expected one empty reply", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := readyModel(t)

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}
	if !m.Manager().Ended() {
		t.Error("q should end the game")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}

	select {
	case <-m.s.done:
	default:
		t.Error("quitting should release waiting commands")
	}
}

func TestModelViewShowsFrames(t *testing.T) {
	m := readyModel(t)

	deadline := time.Now().Add(2 * time.Second)
	for m.frame == "" && time.Now().Before(deadline) {
		msg := m.s.surface.waitFrame(m.s.done)()
		m, _ = send(t, m, msg)
	}
	if m.frame == "" {
		t.Fatal("no frame arrived from the game loop")
	}
	if m.View() == "" {
		t.Error("View() is empty while playing")
	}
}

// slowScores is an in-memory score store whose saves take a while.
type slowScores struct {
	mu    sync.Mutex
	saved []storage.ScoreEntry
}

func (s *slowScores) SaveScore(player string, score int) (int64, error) {
	time.Sleep(30 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.saved) + 1)
	s.saved = append(s.saved, storage.ScoreEntry{ID: id, Player: player, Score: score})
	return id, nil
}

func (s *slowScores) TopScores(limit int) ([]storage.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.ScoreEntry(nil), s.saved...), nil
}

func (s *slowScores) players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, e := range s.saved {
		names = append(names, e.Player)
	}
	return names
}

func TestModelQuitAfterNameKeepsScore(t *testing.T) {
	cfg := config.Default()
	cfg.Loop.MaxFPS = 200
	store := &slowScores{}
	m := NewModel(Options{Config: &cfg, Store: store})
	t.Cleanup(m.Shutdown)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 21})

	m.Manager().SetActiveScreen(screen.HighScore)
	msg := m.s.prompts.waitRequest(m.s.done)()
	req, ok := msg.(TextRequestMsg)
	if !ok {
		t.Fatalf("waitRequest returned %T, expected TextRequestMsg", msg)
	}
	m, _ = send(t, m, req)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ada")})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Quit at once; the save must be done when the session has shut down.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.Manager().Ended() {
		t.Fatal("q should end the game")
	}
	if names := store.players(); len(names) != 1 || names[0] != "ada" {
		t.Errorf("saved players = %q after quitting, expected [\"ada\"]", names)
	}
}
