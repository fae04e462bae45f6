package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/bounce/internal/config"
)

func TestSpawnParticlesCountAndOrigin(t *testing.T) {
	c := config.Default().Confetti
	ps := SpawnParticles(rand.New(rand.NewSource(42)), 120, 240, 320, c)

	if len(ps) != 120 {
		t.Fatalf("got %d particles, want 120", len(ps))
	}
	for i, p := range ps {
		if p.X != 240 || p.Y != 320 {
			t.Fatalf("particle %d not at origin: (%f,%f)", i, p.X, p.Y)
		}
		if p.VX < -5 || p.VX >= 5 {
			t.Fatalf("particle %d vx %f outside [-5,5)", i, p.VX)
		}
		if p.VY < -10 || p.VY >= 0 {
			t.Fatalf("particle %d vy %f outside [-10,0)", i, p.VY)
		}
		if p.Size < 3 || p.Size >= 7 {
			t.Fatalf("particle %d size %f outside [3,7)", i, p.Size)
		}
		if p.Life < 90 || p.Life >= 150 {
			t.Fatalf("particle %d life %f outside [90,150)", i, p.Life)
		}
		if p.Rotation < 0 || p.Rotation >= 2*math.Pi {
			t.Fatalf("particle %d rotation %f outside [0,2pi)", i, p.Rotation)
		}
		if math.Abs(p.VR) > 0.1 {
			t.Fatalf("particle %d angular velocity %f", i, p.VR)
		}
		if p.Color.A != 255 {
			t.Fatalf("particle %d not opaque", i)
		}
	}
}

func TestSpawnParticlesDeterministicForSeed(t *testing.T) {
	c := config.Default().Confetti
	a := SpawnParticles(rand.New(rand.NewSource(9)), 10, 0, 0, c)
	b := SpawnParticles(rand.New(rand.NewSource(9)), 10, 0, 0, c)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs for the same seed", i)
		}
	}
}

func TestSpawnParticlesZero(t *testing.T) {
	ps := SpawnParticles(rand.New(rand.NewSource(1)), 0, 0, 0, config.Default().Confetti)
	if len(ps) != 0 {
		t.Fatalf("expected empty batch, got %d", len(ps))
	}
}

func TestUpdateParticlesIntegrates(t *testing.T) {
	ps := []Particle{{X: 10, Y: 20, VX: 1, VY: -2, Rotation: 0.5, VR: 0.1, Life: 10}}
	ps = UpdateParticles(ps, 0.5, 1000)

	p := ps[0]
	if p.VY != -1.5 {
		t.Fatalf("vy = %f, want -1.5", p.VY)
	}
	if p.X != 11 || p.Y != 18.5 {
		t.Fatalf("position = (%f,%f), want (11,18.5)", p.X, p.Y)
	}
	if !near(p.Rotation, 0.6) {
		t.Fatalf("rotation = %f, want 0.6", p.Rotation)
	}
	if p.Life != 9 {
		t.Fatalf("life = %f, want 9", p.Life)
	}
}

func TestUpdateParticlesCullsOnlyExpiredOrFallen(t *testing.T) {
	ps := []Particle{
		{Y: 0, Life: 1},     // life hits 0
		{Y: 100, Life: 50},  // survives
		{Y: 690, Life: 50},  // below the floor
		{Y: 679.5, Life: 2}, // exactly on the floor after gravity, survives
		{Y: 5, Life: 3},     // survives
	}

	got := UpdateParticles(ps, 0.5, 680)

	if len(got) != 3 {
		t.Fatalf("got %d survivors, want 3", len(got))
	}
	if got[0].Y != 100.5 || got[1].Y != 680 || got[2].Y != 5.5 {
		t.Fatalf("survivor order wrong: %v %v %v", got[0].Y, got[1].Y, got[2].Y)
	}
	if got[1].Life != 1 {
		t.Fatalf("life = %f, want 1", got[1].Life)
	}
}

func TestUpdateParticlesEmpty(t *testing.T) {
	if got := UpdateParticles(nil, 0.15, 680); len(got) != 0 {
		t.Fatalf("expected no particles, got %d", len(got))
	}
}
