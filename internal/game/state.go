package game

import (
	"math/rand"

	"github.com/iburimskiy/bounce/internal/config"
)

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// Events raised by the last Step or lifecycle action.
type Events uint8

const (
	EventWall Events = 1 << iota
	EventTop
	EventPaddle
	EventGameOver
	EventStart
	EventPause
	EventResume
)

func (e Events) Has(f Events) bool { return e&f != 0 }

const (
	StatusIdle     = "Press Start to play"
	StatusPlaying  = "Playing…"
	StatusPaused   = "Paused"
	StatusGameOver = "Game Over. Press Start to play again."
)

type Ball struct {
	X, Y   float64
	R      float64
	VX, VY float64
}

type Paddle struct {
	X, Y  float64
	W, H  float64
	Speed float64
}

// Input is the snapshot sampled once per step.
type Input struct {
	Left, Right bool

	// HasPointer marks PointerX as a fresh absolute target for the paddle centre.
	HasPointer bool
	PointerX   float64
}

// State is the simulation context. It is owned by a single loop driver and
// mutated in place by Step, Start and TogglePause.
type State struct {
	W, H float64

	Ball      Ball
	Paddle    Paddle
	Particles []Particle

	Phase  Phase
	Score  int
	Status string
	// Ticks counts steps spent playing since the last start.
	Ticks int

	// Events accumulates until TakeEvents.
	Events Events

	cfg config.Config
	rng *rand.Rand
}

// New builds an idle game laid out as if a round had just been reset.
func New(cfg config.Config, rng *rand.Rand) *State {
	s := &State{
		W:         cfg.Field.Width,
		H:         cfg.Field.Height,
		Particles: make([]Particle, 0, cfg.Confetti.Count),
		Phase:     PhaseIdle,
		Status:    StatusIdle,
		cfg:       cfg,
		rng:       rng,
	}
	s.Ball = Ball{R: cfg.Ball.Radius, VY: cfg.Ball.InitialVY, VX: cfg.Ball.InitialVX}
	s.Paddle = Paddle{
		W:     cfg.Paddle.Width,
		H:     cfg.Paddle.Height,
		Y:     s.H - cfg.Paddle.BottomOffset,
		Speed: cfg.Paddle.Speed,
	}
	s.placeForServe()
	return s
}

func (s *State) Config() config.Config { return s.cfg }

// TakeEvents returns the events raised since the previous call and clears them.
func (s *State) TakeEvents() Events {
	e := s.Events
	s.Events = 0
	return e
}

// Running reports whether the ball is live.
func (s *State) Running() bool { return s.Phase == PhasePlaying }

// Start resets the round from any phase. Confetti from a previous round keeps
// falling.
func (s *State) Start() {
	s.Score = 0
	s.Ticks = 0
	s.placeForServe()
	if s.rng.Float64() > 0.5 {
		s.Ball.VX = s.cfg.Ball.InitialVX
	} else {
		s.Ball.VX = -s.cfg.Ball.InitialVX
	}
	s.Ball.VY = s.cfg.Ball.InitialVY
	s.Phase = PhasePlaying
	s.Status = StatusPlaying
	s.Events |= EventStart
}

// TogglePause switches between Playing and Paused. Other phases ignore it.
func (s *State) TogglePause() {
	switch s.Phase {
	case PhasePlaying:
		s.Phase = PhasePaused
		s.Status = StatusPaused
		s.Events |= EventPause
	case PhasePaused:
		s.Phase = PhasePlaying
		s.Status = StatusPlaying
		s.Events |= EventResume
	}
}

func (s *State) placeForServe() {
	s.Ball.X = s.W / 2
	s.Ball.Y = s.H * s.cfg.Ball.StartYRatio
	s.Paddle.X = s.W/2 - s.Paddle.W/2
}

// Burst replaces the active confetti with a fresh batch from the field centre.
func (s *State) Burst() {
	s.Particles = SpawnParticlesInto(s.Particles[:0], s.rng, s.cfg.Confetti.Count, s.W/2, s.H/2, s.cfg.Confetti)
}
