package game

import "math"

// Step advances the simulation by one frame. Confetti moves in every phase;
// the ball and paddle only while playing.
func (s *State) Step(in Input) {
	s.Particles = UpdateParticles(s.Particles, s.cfg.Confetti.Gravity, s.H+s.cfg.Confetti.CullMargin)
	if !s.Running() {
		return
	}
	s.Ticks++

	s.movePaddle(in)

	b := &s.Ball
	b.X += b.VX
	b.Y += b.VY

	if b.X-b.R <= 0 || b.X+b.R >= s.W {
		b.VX = -b.VX
		b.X = clamp(b.X, b.R, s.W-b.R)
		s.Events |= EventWall
	}

	if b.Y-b.R <= 0 {
		b.VY = -b.VY
		b.Y = b.R
		s.Score++
		s.Events |= EventTop
	}

	if s.touchesPaddle() {
		s.bounceOffPaddle()
	}

	if b.Y-b.R > s.H {
		s.Phase = PhaseGameOver
		s.Status = StatusGameOver
		s.Events |= EventGameOver
		s.Burst()
	}
}

func (s *State) movePaddle(in Input) {
	p := &s.Paddle
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.HasPointer {
		p.X = in.PointerX - p.W/2
	}
	p.X = clamp(p.X, 0, s.W-p.W)
}

// touchesPaddle widens the vertical window by |VY| so a fast ball cannot step
// over the paddle between two frames.
func (s *State) touchesPaddle() bool {
	b, p := &s.Ball, &s.Paddle
	bottom := b.Y + b.R
	return bottom >= p.Y &&
		bottom <= p.Y+p.H+math.Abs(b.VY) &&
		b.X >= p.X &&
		b.X <= p.X+p.W
}

func (s *State) bounceOffPaddle() {
	b, p := &s.Ball, &s.Paddle

	hit := (b.X - (p.X + p.W/2)) / (p.W / 2)
	angle := hit * s.cfg.Physics.MaxBounceAngle()
	speed := math.Hypot(b.VX, b.VY) * s.cfg.Physics.SpeedUp
	if limit := s.cfg.Physics.MaxSpeed; limit > 0 && speed > limit {
		speed = limit
	}

	b.VX = speed * math.Sin(angle)
	b.VY = -math.Abs(speed * math.Cos(angle))
	b.Y = p.Y - b.R - 0.1
	s.Events |= EventPaddle
}

// BounceAngle is the angle from vertical of the ball's velocity, positive to
// the right.
func (b Ball) BounceAngle() float64 {
	return math.Atan2(b.VX, -b.VY)
}

func (b Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}
