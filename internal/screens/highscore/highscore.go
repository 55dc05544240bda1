// Package highscore implements the end-of-run screen: it shows the time
// survived, asks for the player's name, records the score and lists the
// best runs.
package highscore

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/storage"
)

// NamePrompt is shown by the host's text dialog.
const NamePrompt = "You fell in! Enter your name"

// ScoreStore persists scores. *storage.Store satisfies it.
type ScoreStore interface {
	SaveScore(player string, score int) (int64, error)
	TopScores(limit int) ([]storage.ScoreEntry, error)
}

// Screen is the high-score screen.
type Screen struct {
	env   screen.Env
	cfg   config.HighScoreConfig
	store ScoreStore

	mu      sync.Mutex
	gen     int // Bumped per activation; stale async results are dropped
	score   int
	player  string
	savedID int64
	saved   bool
	loading bool
	entries []storage.ScoreEntry
	err     error
	wg      sync.WaitGroup
}

// New creates the high-score screen. A nil store shows the score without
// recording it.
func New(env screen.Env, cfg config.HighScoreConfig, store ScoreStore) *Screen {
	return &Screen{env: env, cfg: cfg, store: store}
}

// Ready captures the finished run's time as the score, opens the name
// dialog and starts loading the board.
func (s *Screen) Ready() {
	score := int(s.env.GameTime().Seconds())

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.score = score
	s.player = ""
	s.savedID = 0
	s.saved = false
	s.entries = nil
	s.err = nil
	s.loading = s.store != nil
	s.mu.Unlock()

	s.env.Logger().Info("run over", "score", score)

	if s.store != nil {
		s.async(func() { s.load(gen) })
	}
	s.env.RequestText(NamePrompt, func(name string) { s.submit(gen, name) })
}

// async runs fn on its own goroutine, tracked by Wait.
func (s *Screen) async(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Wait blocks until all background store work has finished.
func (s *Screen) Wait() {
	s.wg.Wait()
}

// load fetches the board for activation gen.
func (s *Screen) load(gen int) {
	entries, err := s.store.TopScores(s.cfg.TopN)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = err
		s.env.Logger().Error("cannot load scores", "err", err)
		return
	}
	s.entries = entries
}

// submit records the name entered for activation gen and saves the score.
// Replies for an earlier activation are ignored.
func (s *Screen) submit(gen int, name string) {
	player := storage.NormalizePlayer(name)

	s.mu.Lock()
	if gen != s.gen || s.player != "" {
		s.mu.Unlock()
		return
	}
	s.player = player
	score := s.score
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	s.async(func() {
		id, err := s.store.SaveScore(player, score)
		if err != nil {
			s.mu.Lock()
			if gen == s.gen {
				s.err = err
			}
			s.mu.Unlock()
			s.env.Logger().Error("cannot save score", "player", player, "err", err)
			return
		}
		s.env.Logger().Info("score saved", "player", player, "score", score)

		s.mu.Lock()
		if gen == s.gen {
			s.saved = true
			s.savedID = id
			s.loading = true
		}
		s.mu.Unlock()
		s.load(gen)
	})
}

// Update has nothing to advance; the board changes only on store results.
func (s *Screen) Update() {}

// Draw renders the score and the board.
func (s *Screen) Draw(canvas *core.Canvas) {
	s.mu.Lock()
	score := s.score
	player := s.player
	savedID := s.savedID
	loading := s.loading
	entries := s.entries
	err := s.err
	s.mu.Unlock()

	canvas.DrawBox(0, 0, canvas.Width(), canvas.Height(), core.ColorMagenta)
	canvas.DrawTextCentered(2, "GAME OVER", core.ColorBrightRed)
	canvas.DrawTextCentered(4, fmt.Sprintf("You survived %d seconds", score), core.ColorBrightYellow)
	if player != "" {
		canvas.DrawTextCentered(5, "well rolled, "+player, core.ColorWhite)
	}

	y := 7
	switch {
	case err != nil:
		canvas.DrawTextCentered(y, "scores unavailable", core.ColorRed)
	case loading:
		canvas.DrawTextCentered(y, "loading scores...", core.ColorGray)
	case s.store == nil:
	case len(entries) == 0:
		canvas.DrawTextCentered(y, "no scores yet", core.ColorGray)
	default:
		canvas.DrawTextCentered(y, "BEST RUNS", core.ColorCyan)
		for i, e := range entries {
			color := core.ColorWhite
			if e.ID == savedID {
				color = core.ColorBrightGreen
			}
			line := fmt.Sprintf("%2d. %-24s %5ds", i+1, e.Player, e.Score)
			canvas.DrawTextCentered(y+2+i, line, color)
		}
	}

	canvas.DrawTextCentered(canvas.Height()-2, "tap to play again", core.ColorGray)
}

// ProcessTouchInput returns to the start screen when a touch is lifted.
func (s *Screen) ProcessTouchInput(ev core.TouchEvent) {
	if ev.Phase == core.TouchUp {
		s.env.Activate(screen.Start)
	}
}

// ProcessMotionInput ignores tilt.
func (s *Screen) ProcessMotionInput(x, y float64) {}

// Pause and Resume hold no resources on this screen.
func (s *Screen) Pause() {}
func (s *Screen) Resume() {}

// Score returns the score captured on the last activation.
func (s *Screen) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Entries returns the loaded board.
func (s *Screen) Entries() []storage.ScoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.ScoreEntry(nil), s.entries...)
}

// Saved reports whether the last run's score was recorded.
func (s *Screen) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
