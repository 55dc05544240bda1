package tui

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/gameloop"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/screens"
	"github.com/vovakirdan/tilt/internal/screens/highscore"
)

// helpHeight is the number of rows reserved below the game for the help line.
const helpHeight = 1

// TextRequestMsg asks the model to open the text dialog.
type TextRequestMsg struct {
	Prompt string
	Reply  func(string)
}

// prompter implements screen.Host. Requests may come from any goroutine
// and are passed to the program through a one-slot channel; only the
// newest pending request is kept.
type prompter struct {
	requests chan TextRequestMsg
}

func newPrompter() *prompter {
	return &prompter{requests: make(chan TextRequestMsg, 1)}
}

// RequestText implements screen.Host.
func (p *prompter) RequestText(prompt string, reply func(string)) {
	offerLatest(p.requests, TextRequestMsg{Prompt: prompt, Reply: reply})
}

// waitRequest returns a command that delivers the next text request.
func (p *prompter) waitRequest(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-p.requests:
			return req
		case <-done:
			return nil
		}
	}
}

// Options configures a game session.
type Options struct {
	// Config tunes the loop, the screens and the simulated sensor.
	Config *config.Config

	// Store records high scores. Nil keeps scores for the session only.
	Store highscore.ScoreStore

	// Logger receives session messages. Nil discards them.
	Logger *log.Logger
}

// session is the state shared by every copy of a Model.
type session struct {
	mgr      *screen.Manager
	surface  *Surface
	prompts  *prompter
	tilt     *TiltSimulator
	interval time.Duration
	logger   *log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// Model is the Bubble Tea model hosting one game session.
type Model struct {
	s *session

	keys  KeyMap
	help  help.Model
	input textinput.Model

	prompting bool
	prompt    string
	reply     func(string)

	frame    string
	width    int
	height   int
	ready    bool // Surface handed to the game
	paused   bool // Paused by the player
	blurred  bool // Terminal lost focus
	quitting bool
}

// NewModel creates a model and the game session behind it. Nothing runs
// until the first window size arrives.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &session{
		surface:  NewSurface(1, 1),
		prompts:  newPrompter(),
		tilt:     NewTiltSimulator(cfg.Tilt),
		interval: time.Duration(cfg.Tilt.SampleIntervalMS) * time.Millisecond,
		logger:   logger,
		done:     make(chan struct{}),
	}
	s.mgr = screen.NewManager(screen.Options{
		Build:   screens.Build(cfg, opts.Store),
		Surface: s.surface,
		Host:    s.prompts,
		Loop:    gameloop.Options{MaxFPS: cfg.Loop.MaxFPS},
		Logger:  logger,
	})

	input := textinput.New()
	input.Placeholder = "anonymous"
	input.CharLimit = 24
	input.Width = 24

	return Model{
		s:     s,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: input,
	}
}

// Manager returns the screen manager driving this session.
func (m Model) Manager() *screen.Manager {
	return m.s.mgr
}

// Shutdown ends the game and releases the commands waiting on it. It is
// safe to call more than once and from any goroutine other than the game
// loop.
func (m Model) Shutdown() {
	m.s.closeOnce.Do(func() {
		m.s.mgr.EndGame()
		close(m.s.done)
	})
}

// Init starts listening for frames, text requests and sensor ticks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.s.surface.waitFrame(m.s.done),
		m.s.prompts.waitRequest(m.s.done),
		tiltTickCmd(m.s.interval),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		m.frame = string(msg)
		return m, m.s.surface.waitFrame(m.s.done)

	case TextRequestMsg:
		return m.openPrompt(msg)

	case TiltTickMsg:
		return m.handleTiltTick()

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.FocusMsg:
		m.blurred = false
		m.syncPause()
		return m, nil

	case tea.BlurMsg:
		m.blurred = true
		m.syncPause()
		return m, nil

	case tea.ResumeMsg:
		// Back from ctrl+z: the terminal is ours again.
		if !m.ready {
			return m, nil
		}
		if err := m.s.mgr.SurfaceReady(m.width, m.gameHeight()); err != nil {
			m.s.logger.Error("cannot restore surface", "err", err)
			return m, nil
		}
		if m.paused || m.blurred {
			m.syncPause()
		}
		return m, nil
	}

	if m.prompting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize hands the first window size to the game. The game keeps
// that size for the rest of the session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.help.Width = msg.Width
	if m.ready {
		return m, nil
	}

	m.width = msg.Width
	m.height = msg.Height
	m.s.surface.Resize(m.width, m.gameHeight())
	if err := m.s.mgr.SurfaceReady(m.width, m.gameHeight()); err != nil {
		m.s.logger.Error("cannot start game", "err", err)
		return m, nil
	}
	m.ready = true
	return m, nil
}

// gameHeight is the number of rows the game draws into.
func (m Model) gameHeight() int {
	return max(1, m.height-helpHeight)
}

// handleTiltTick reports a sensor sample unless the game is paused.
func (m Model) handleTiltTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if !m.paused && !m.blurred {
		x, y := m.s.tilt.Sample()
		m.s.mgr.OnTilt(x, y)
	}
	return m, tiltTickCmd(m.s.interval)
}

// handleKey processes keyboard input while no dialog is open.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.syncPause()
		return m, nil

	case key.Matches(msg, m.keys.Suspend):
		m.s.mgr.SurfaceLost()
		return m, tea.Suspend

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Level):
		m.s.tilt.Level()
		return m, nil

	case key.Matches(msg, m.keys.Tap):
		m.tapCenter()
		return m, nil
	}

	if dx, dy, ok := m.keys.TiltDirection(msg); ok {
		m.s.tilt.Nudge(dx, dy)
	}
	return m, nil
}

// tapCenter delivers a press and release in the middle of the window.
func (m Model) tapCenter() {
	cx, cy := m.s.mgr.Window().Center()
	m.s.mgr.OnTouch(core.TouchEvent{X: cx, Y: cy, Phase: core.TouchDown})
	m.s.mgr.OnTouch(core.TouchEvent{X: cx, Y: cy, Phase: core.TouchUp})
}

// handleMouse maps left-button mouse input to touch events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.prompting || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	var phase core.TouchPhase
	switch msg.Action {
	case tea.MouseActionPress:
		phase = core.TouchDown
	case tea.MouseActionMotion:
		phase = core.TouchMove
	case tea.MouseActionRelease:
		phase = core.TouchUp
	default:
		return m, nil
	}

	m.s.mgr.OnTouch(core.TouchEvent{
		X:     float64(msg.X) + 0.5,
		Y:     float64(msg.Y) + 0.5,
		Phase: phase,
	})
	return m, nil
}

// syncPause pauses the game while the player paused it or the terminal is
// out of focus, and resumes it otherwise.
func (m Model) syncPause() {
	var err error
	if m.paused || m.blurred {
		err = m.s.mgr.Pause()
	} else {
		err = m.s.mgr.Resume()
	}
	if err != nil {
		m.s.logger.Warn("pause state not applied", "err", err)
	}
}

// openPrompt shows the text dialog.
func (m Model) openPrompt(req TextRequestMsg) (tea.Model, tea.Cmd) {
	m.prompting = true
	m.prompt = req.Prompt
	m.reply = req.Reply
	m.input.Reset()
	cmd := m.input.Focus()
	return m, tea.Batch(cmd, m.s.prompts.waitRequest(m.s.done))
}

// handlePromptKey feeds the dialog. Enter submits, esc submits an empty
// name.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		m.Shutdown()
		return m, tea.Quit
	case tea.KeyEnter:
		return m.closePrompt(m.input.Value()), nil
	case tea.KeyEsc:
		return m.closePrompt(""), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// closePrompt hides the dialog and hands the answer to the game.
func (m Model) closePrompt(answer string) Model {
	reply := m.reply
	m.prompting = false
	m.prompt = ""
	m.reply = nil
	m.input.Blur()
	if reply != nil {
		reply(answer)
	}
	return m
}

// View renders the latest frame with the help line, or the dialog.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting..."
	}

	if m.prompting {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialogView())
	}

	status := m.help.View(m.keys)
	if m.paused {
		status = pausedStyle.Render("PAUSED") + "  " + status
	}
	return m.frame + "\n" + helpStyle.Render(status)
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 2)
)

// dialogView renders the name dialog.
func (m Model) dialogView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		pausedStyle.Render(m.prompt),
		"",
		m.input.View(),
		"",
		helpStyle.Render("enter to save, esc to skip"),
	)
	return dialogStyle.Render(body)
}

// Run plays one session in the local terminal until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Shutdown()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
