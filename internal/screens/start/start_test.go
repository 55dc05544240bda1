package start

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/screen"
	"github.com/vovakirdan/tilt/internal/screens/screentest"
)

func newTestScreen(t *testing.T) (*Screen, *screentest.Env) {
	t.Helper()
	cfg := config.Default()
	env := screentest.NewEnv(60, 20)
	s := New(env, cfg.Start, cfg.Play)
	s.Ready()
	return s, env
}

func TestStartTouchUpActivatesPlay(t *testing.T) {
	tests := []struct {
		name   string
		phases []core.TouchPhase
		want   []screen.ID
	}{
		{"tap", []core.TouchPhase{core.TouchDown, core.TouchUp}, []screen.ID{screen.Play}},
		{"drag", []core.TouchPhase{core.TouchDown, core.TouchMove, core.TouchMove}, nil},
		{"down only", []core.TouchPhase{core.TouchDown}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, env := newTestScreen(t)
			for _, phase := range tc.phases {
				s.ProcessTouchInput(core.TouchEvent{X: 5, Y: 5, Phase: phase})
			}
			got := env.Activations()
			if len(got) != len(tc.want) {
				t.Fatalf("Activations() = %v, expected %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Activations()[%d] = %v, expected %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestStartTitleSlidesIn(t *testing.T) {
	if x := titleX(60, 0, 20); x != 0 {
		t.Errorf("titleX at tick 0 = %d, expected 0", x)
	}
	final := (60 - len([]rune(Title))) / 2
	if x := titleX(60, 10, 20); x <= 0 || x >= final {
		t.Errorf("titleX halfway = %d, expected between 0 and %d", x, final)
	}
	if x := titleX(60, 50, 20); x != final {
		t.Errorf("titleX after intro = %d, expected %d", x, final)
	}
	if x := titleX(60, 0, 0); x != final {
		t.Errorf("titleX without intro = %d, expected %d", x, final)
	}
}

func TestStartPromptBlinks(t *testing.T) {
	tests := []struct {
		ticks, blink int
		visible      bool
	}{
		{0, 15, true},
		{14, 15, true},
		{15, 15, false},
		{29, 15, false},
		{30, 15, true},
		{7, 0, true},
	}

	for _, tc := range tests {
		if got := promptVisible(tc.ticks, tc.blink); got != tc.visible {
			t.Errorf("promptVisible(%d, %d) = %v, expected %v", tc.ticks, tc.blink, got, tc.visible)
		}
	}
}

func TestStartDrawAfterIntro(t *testing.T) {
	s, _ := newTestScreen(t)
	for i := 0; i < s.cfg.IntroTicks; i++ {
		s.Update()
	}

	canvas := core.NewCanvas(60, 20)
	s.Draw(canvas)
	out := canvas.String()

	if !strings.Contains(out, Title) {
		t.Error("title not drawn")
	}
	if !strings.Contains(out, Hint) {
		t.Error("hint not drawn after the intro")
	}
	if !strings.ContainsRune(out, '●') {
		t.Error("marble not drawn")
	}
}

func TestStartTiltRollsMarble(t *testing.T) {
	s, _ := newTestScreen(t)
	startX := s.marble.X

	s.ProcessMotionInput(-9.8, 0) // tilted right
	for i := 0; i < 10; i++ {
		s.Update()
	}
	if s.marble.X <= startX {
		t.Errorf("marble X = %v, expected to roll right of %v", s.marble.X, startX)
	}
}

func TestStartReadyResets(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ProcessMotionInput(5, 5)
	for i := 0; i < 40; i++ {
		s.Update()
	}

	s.Ready()
	if s.ticks != 0 {
		t.Errorf("ticks = %d after Ready, expected 0", s.ticks)
	}
	if s.tiltX != 0 || s.tiltY != 0 {
		t.Error("Ready should clear the last tilt")
	}
	if s.marble.VX != 0 || s.marble.VY != 0 {
		t.Error("Ready should stop the marble")
	}
}
