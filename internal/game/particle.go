package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/bounce/internal/config"
)

// Particle is one piece of confetti. Life counts remaining frames.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Rotation float64
	VR       float64
	Life     float64
	Color    color.RGBA
}

// SpawnParticles generates n particles originating at (cx, cy).
func SpawnParticles(rng *rand.Rand, n int, cx, cy float64, c config.Confetti) []Particle {
	return SpawnParticlesInto(make([]Particle, 0, n), rng, n, cx, cy, c)
}

// SpawnParticlesInto appends n fresh particles to dst.
func SpawnParticlesInto(dst []Particle, rng *rand.Rand, n int, cx, cy float64, c config.Confetti) []Particle {
	for i := 0; i < n; i++ {
		dst = append(dst, Particle{
			X:        cx,
			Y:        cy,
			VX:       (rng.Float64() - 0.5) * 10,
			VY:       (rng.Float64()-0.8)*10 - 2,
			Size:     c.MinSize + rng.Float64()*c.SizeSpread,
			Rotation: rng.Float64() * math.Pi * 2,
			VR:       (rng.Float64() - 0.5) * 0.2,
			Life:     c.MinLife + rng.Float64()*c.LifeSpread,
			Color:    HSL(math.Floor(rng.Float64()*360), c.Saturation, c.Lightness),
		})
	}
	return dst
}

// UpdateParticles advances every particle by one frame and compacts the
// survivors to the front of ps, keeping their order. A particle dies when its
// life runs out or it falls below floor.
func UpdateParticles(ps []Particle, gravity, floor float64) []Particle {
	alive := ps[:0]
	for i := range ps {
		p := ps[i]
		p.VY += gravity
		p.X += p.VX
		p.Y += p.VY
		p.Rotation += p.VR
		p.Life--
		if p.Y > floor || p.Life <= 0 {
			continue
		}
		alive = append(alive, p)
	}
	return alive
}
