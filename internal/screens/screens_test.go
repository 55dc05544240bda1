package screens

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/gameloop"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/screens/highscore"
	"github.com/vovakirdan/tilt/internal/screens/play"
	"github.com/vovakirdan/tilt/internal/screens/start"
	"github.com/vovakirdan/tilt/internal/storage"
)

type canvasSurface struct {
	canvas *core.Canvas
}

func (s *canvasSurface) Lock() *core.Canvas {
	s.canvas.Clear()
	return s.canvas
}

func (s *canvasSurface) Post(*core.Canvas) {}

func TestRegistryOrder(t *testing.T) {
	cfg := config.Default()
	r := NewRegistry(&cfg, nil)

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", r.Len())
	}
}

func TestFullSession(t *testing.T) {
	cfg := config.Default()
	cfg.Play.Seed = 1

	mgr := screen.NewManager(screen.Options{
		Build:   Build(&cfg, nil),
		Surface: &canvasSurface{canvas: core.NewCanvas(60, 20)},
		Loop:    gameloop.Options{MaxFPS: 200},
	})
	defer mgr.EndGame()

	if err := mgr.SurfaceReady(60, 20); err != nil {
		t.Fatalf("SurfaceReady() failed: %v", err)
	}

	screens := mgr.Screens()
	if _, ok := screens[screen.Start].(*start.Screen); !ok {
		t.Errorf("screens[Start] is %T", screens[screen.Start])
	}
	if _, ok := screens[screen.Play].(*play.Screen); !ok {
		t.Errorf("screens[Play] is %T", screens[screen.Play])
	}
	if _, ok := screens[screen.HighScore].(*highscore.Screen); !ok {
		t.Errorf("screens[HighScore] is %T", screens[screen.HighScore])
	}

	expectActive := func(want screen.ID) {
		t.Helper()
		if id, ok := mgr.ActiveID(); !ok || id != want {
			t.Fatalf("ActiveID() = %v, %v; expected %v", id, ok, want)
		}
	}

	expectActive(screen.Start)
	mgr.OnTouch(core.TouchEvent{X: 30, Y: 10, Phase: core.TouchDown})
	mgr.OnTouch(core.TouchEvent{X: 30, Y: 10, Phase: core.TouchUp})
	expectActive(screen.Play)

	// Tilt hard to one side; the marble rolls but the run goes on
	mgr.OnTilt(9.8, 0)
	time.Sleep(20 * time.Millisecond)
	expectActive(screen.Play)

	mgr.SetActiveScreen(screen.HighScore)
	expectActive(screen.HighScore)
	mgr.OnTouch(core.TouchEvent{Phase: core.TouchUp})
	expectActive(screen.Start)
}

// replyHost keeps the last text request so the test can answer it.
type replyHost struct {
	mu    sync.Mutex
	reply func(string)
}

func (h *replyHost) RequestText(prompt string, reply func(string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reply = reply
}

func (h *replyHost) answer(t *testing.T, name string) {
	t.Helper()
	h.mu.Lock()
	reply := h.reply
	h.mu.Unlock()
	if reply == nil {
		t.Fatal("no text request was made")
	}
	reply(name)
}

// slowStore delays saves so they are still running when the game ends.
type slowStore struct {
	*storage.Store
	delay time.Duration
}

func (s slowStore) SaveScore(player string, score int) (int64, error) {
	time.Sleep(s.delay)
	return s.Store.SaveScore(player, score)
}

func TestEndGameFinishesScoreSave(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	cfg := config.Default()
	cfg.Play.Seed = 1
	host := &replyHost{}
	mgr := screen.NewManager(screen.Options{
		Build:   Build(&cfg, slowStore{Store: store, delay: 50 * time.Millisecond}),
		Surface: &canvasSurface{canvas: core.NewCanvas(60, 20)},
		Host:    host,
		Loop:    gameloop.Options{MaxFPS: 200},
	})
	if err := mgr.SurfaceReady(60, 20); err != nil {
		t.Fatalf("SurfaceReady() failed: %v", err)
	}

	mgr.SetActiveScreen(screen.HighScore)
	host.answer(t, "ada")

	// Quit straight after submitting, then release the store.
	mgr.EndGame()
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Player != "ada" {
		t.Errorf("TopScores() = %+v, expected the score saved for ada", entries)
	}
}
