package game

import (
	"math/rand"
	"testing"

	"github.com/iburimskiy/bounce/internal/config"
)

func TestNewStartsIdle(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))
	if s.Phase != PhaseIdle || s.Running() {
		t.Fatalf("phase = %v, want idle", s.Phase)
	}
	if s.Status != StatusIdle {
		t.Fatalf("status = %q", s.Status)
	}

	ball := s.Ball
	s.Step(Input{Right: true})
	if s.Ball != ball {
		t.Fatalf("idle step moved the ball")
	}
}

func TestStartResetsRound(t *testing.T) {
	seen := map[float64]bool{}
	for seed := int64(0); seed < 32; seed++ {
		s := New(config.Default(), rand.New(rand.NewSource(seed)))
		s.Score = 17
		s.Ball.X, s.Ball.Y = 3, 3
		s.Paddle.X = 0

		s.Start()

		if s.Score != 0 || !s.Running() || s.Status != StatusPlaying {
			t.Fatalf("seed %d: score=%d phase=%v status=%q", seed, s.Score, s.Phase, s.Status)
		}
		if s.Ball.X != s.W/2 || s.Ball.Y != s.H*0.3 {
			t.Fatalf("seed %d: ball at (%f,%f)", seed, s.Ball.X, s.Ball.Y)
		}
		if s.Ball.VX != 4 && s.Ball.VX != -4 {
			t.Fatalf("seed %d: vx = %f", seed, s.Ball.VX)
		}
		if s.Ball.VY != 5 {
			t.Fatalf("seed %d: vy = %f", seed, s.Ball.VY)
		}
		if s.Paddle.X != s.W/2-s.Paddle.W/2 {
			t.Fatalf("seed %d: paddle not centred: %f", seed, s.Paddle.X)
		}
		if !s.TakeEvents().Has(EventStart) {
			t.Fatalf("seed %d: missing start event", seed)
		}
		seen[s.Ball.VX] = true
	}
	if !seen[4] || !seen[-4] {
		t.Fatalf("expected both serve directions across seeds, got %v", seen)
	}
}

func TestStartFromGameOverKeepsConfetti(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))
	s.Start()
	s.Ball.X, s.Ball.Y = 20, s.H+5
	s.Step(Input{})
	if s.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", s.Phase)
	}

	s.Start()

	if !s.Running() {
		t.Fatalf("start from game over did not resume play")
	}
	if len(s.Particles) != 120 {
		t.Fatalf("confetti dropped on start: %d", len(s.Particles))
	}
}

func TestTogglePause(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))

	s.TogglePause()
	if s.Phase != PhaseIdle {
		t.Fatalf("toggle from idle changed phase to %v", s.Phase)
	}

	s.Start()
	s.TakeEvents()
	s.TogglePause()
	if s.Phase != PhasePaused || s.Status != StatusPaused {
		t.Fatalf("phase=%v status=%q, want paused", s.Phase, s.Status)
	}
	if !s.TakeEvents().Has(EventPause) {
		t.Fatalf("missing pause event")
	}

	s.TogglePause()
	if s.Phase != PhasePlaying || s.Status != StatusPlaying {
		t.Fatalf("phase=%v status=%q, want playing", s.Phase, s.Status)
	}
	if !s.TakeEvents().Has(EventResume) {
		t.Fatalf("missing resume event")
	}
}

func TestStartFromPausedResets(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))
	s.Start()
	s.Score = 5
	s.TogglePause()

	s.Start()

	if s.Phase != PhasePlaying || s.Score != 0 {
		t.Fatalf("phase=%v score=%d after start from pause", s.Phase, s.Score)
	}
}

func TestTakeEventsClears(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))
	s.Start()
	if s.TakeEvents() == 0 {
		t.Fatalf("expected events after start")
	}
	if s.TakeEvents() != 0 {
		t.Fatalf("events not cleared")
	}
}

func TestTicksCountPlayingSteps(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))
	s.Start()
	s.Step(Input{})
	s.Step(Input{})
	s.TogglePause()
	s.Step(Input{})
	if s.Ticks != 2 {
		t.Fatalf("ticks = %d, want 2", s.Ticks)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseGameOver.String() != "game over" || Phase(99).String() != "unknown" {
		t.Fatalf("unexpected phase names")
	}
}

func TestHSL(t *testing.T) {
	cases := []struct {
		h, s, l float64
		r, g, b uint8
	}{
		{0, 1, 0.5, 255, 0, 0},
		{120, 1, 0.5, 0, 255, 0},
		{240, 1, 0.5, 0, 0, 255},
		{0, 0, 1, 255, 255, 255},
		{360, 1, 0.5, 255, 0, 0},
	}
	for _, c := range cases {
		got := HSL(c.h, c.s, c.l)
		if got.R != c.r || got.G != c.g || got.B != c.b || got.A != 255 {
			t.Errorf("HSL(%v,%v,%v) = %v, want (%d,%d,%d)", c.h, c.s, c.l, got, c.r, c.g, c.b)
		}
	}
}
