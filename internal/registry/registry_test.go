package registry

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/screen"
)

// stubScreen records which factory produced it.
type stubScreen struct {
	id  screen.ID
	env screen.Env
}

func (s *stubScreen) Ready() {}
func (s *stubScreen) Update() {}
func (s *stubScreen) Draw(*core.Canvas) {}
func (s *stubScreen) ProcessTouchInput(core.TouchEvent) {}
func (s *stubScreen) ProcessMotionInput(float64, float64) {}
func (s *stubScreen) Pause() {}
func (s *stubScreen) Resume() {}

// stubEnv is a do-nothing screen.Env.
type stubEnv struct{}

func (stubEnv) Window() core.RectF { return core.NewRectF(0, 0, 10, 10) }
func (stubEnv) Activate(screen.ID) {}
func (stubEnv) StartTiming() {}
func (stubEnv) GameTime() time.Duration { return 0 }
func (stubEnv) RequestText(string, func(string)) {}
func (stubEnv) Logger() *log.Logger { return log.Default() }

func factoryFor(id screen.ID) Factory {
	return func(env screen.Env) screen.Screen {
		return &stubScreen{id: id, env: env}
	}
}

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", what)
		}
	}()
	fn()
}

func TestRegistryBuildOrder(t *testing.T) {
	r := New()
	r.Register(screen.Start, factoryFor(screen.Start))
	r.Register(screen.Play, factoryFor(screen.Play))
	r.Register(screen.HighScore, factoryFor(screen.HighScore))

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", r.Len())
	}

	env := stubEnv{}
	screens := r.Build(env)
	if len(screens) != 3 {
		t.Fatalf("Build() returned %d screens, expected 3", len(screens))
	}
	for i, s := range screens {
		stub := s.(*stubScreen)
		if stub.id != screen.ID(i) {
			t.Errorf("screens[%d] built by factory %v", i, stub.id)
		}
		if stub.env != screen.Env(env) {
			t.Errorf("screens[%d] not bound to the build env", i)
		}
	}
}

func TestRegistryBuildCreatesFreshScreens(t *testing.T) {
	r := New()
	r.Register(screen.Start, factoryFor(screen.Start))

	a := r.Build(stubEnv{})
	b := r.Build(stubEnv{})
	if a[0] == b[0] {
		t.Error("each Build should call the factories again")
	}
}

func TestRegistryRejectsOutOfOrder(t *testing.T) {
	tests := []struct {
		name string
		ids  []screen.ID
	}{
		{"gap", []screen.ID{screen.Start, screen.HighScore}},
		{"duplicate", []screen.ID{screen.Start, screen.Start}},
		{"not starting at zero", []screen.ID{screen.Play}},
		{"negative", []screen.ID{-1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			last := len(tc.ids) - 1
			for _, id := range tc.ids[:last] {
				r.Register(id, factoryFor(id))
			}
			expectPanic(t, "Register("+tc.ids[last].String()+")", func() {
				r.Register(tc.ids[last], factoryFor(tc.ids[last]))
			})
		})
	}
}

func TestRegistryRejectsNilFactory(t *testing.T) {
	r := New()
	expectPanic(t, "Register(nil)", func() {
		r.Register(screen.Start, nil)
	})
	if r.Len() != 0 {
		t.Errorf("Len() = %d after rejected registration", r.Len())
	}
}

func TestRegistryZeroValue(t *testing.T) {
	var r Registry
	r.Register(screen.Start, factoryFor(screen.Start))
	if got := len(r.Build(stubEnv{})); got != 1 {
		t.Errorf("zero Registry built %d screens, expected 1", got)
	}
}
