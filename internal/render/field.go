// Package render draws a game.State onto an ebiten image.
package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/bounce/internal/config"
	"github.com/iburimskiy/bounce/internal/game"
)

const paddleCorner = 8

var (
	backgroundColor = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	paddleTop       = color.RGBA{R: 96, G: 165, B: 250, A: 255}
	paddleBottom    = color.RGBA{R: 29, G: 78, B: 216, A: 255}
	ballInner       = color.RGBA{R: 254, G: 243, B: 199, A: 255}
	ballOuter       = color.RGBA{R: 245, G: 158, B: 11, A: 255}
)

// HUD carries what the status line shows besides the simulation itself.
type HUD struct {
	Level     float64
	Muted     bool
	CustomHit bool
	TPS       int
	Err       error
}

// Field renders the play area, HUD and buttons.
type Field struct {
	Buttons []*Button

	confettiVs []ebiten.Vertex
	confettiIs []uint16
}

func NewField(buttons ...*Button) *Field {
	return &Field{Buttons: buttons}
}

func (f *Field) Draw(screen *ebiten.Image, s *game.State, hud HUD) {
	screen.Fill(backgroundColor)

	f.drawHUDLine(screen, s, hud.Level)
	f.drawPaddle(screen, s.Paddle)
	f.drawBall(screen, s.Ball)
	f.drawConfetti(screen, s.Particles)

	for _, b := range f.Buttons {
		b.Draw(screen)
	}
	f.drawStatus(screen, s, hud)
}

func (f *Field) drawHUDLine(screen *ebiten.Image, s *game.State, level float64) {
	alpha := uint8(15 + 120*clampUnit(level))
	vector.StrokeLine(screen, 0, config.HUDLineY, float32(s.W), config.HUDLineY, 2, color.RGBA{R: 255, G: 255, B: 255, A: alpha}, false)
}

func (f *Field) drawPaddle(screen *ebiten.Image, p game.Paddle) {
	x, y, w, h := float32(p.X), float32(p.Y), float32(p.W), float32(p.H)
	fillVerticalGradient(screen, roundedRectPath(x, y, w, h, paddleCorner), y, y+h, paddleTop, paddleBottom)
}

func (f *Field) drawBall(screen *ebiten.Image, b game.Ball) {
	vs, is := radialFan(b.X, b.Y, b.R, b.X-b.R/2, b.Y-b.R/2, ballInner, ballOuter)
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteSubImage(), op)
}

func (f *Field) drawConfetti(screen *ebiten.Image, ps []game.Particle) {
	if len(ps) == 0 {
		return
	}
	f.confettiVs = f.confettiVs[:0]
	f.confettiIs = f.confettiIs[:0]
	for _, p := range ps {
		if len(f.confettiVs)+4 > math.MaxUint16 {
			f.flushConfetti(screen)
		}
		base := uint16(len(f.confettiVs))
		for _, c := range quadCorners(p.X, p.Y, p.Size, p.Rotation) {
			v := ebiten.Vertex{DstX: float32(c[0]), DstY: float32(c[1])}
			setColor(&v, p.Color)
			f.confettiVs = append(f.confettiVs, v)
		}
		f.confettiIs = append(f.confettiIs, base, base+1, base+2, base, base+2, base+3)
	}
	f.flushConfetti(screen)
}

func (f *Field) flushConfetti(screen *ebiten.Image) {
	screen.DrawTriangles(f.confettiVs, f.confettiIs, whiteSubImage(), &ebiten.DrawTrianglesOptions{})
	f.confettiVs = f.confettiVs[:0]
	f.confettiIs = f.confettiIs[:0]
}

func (f *Field) drawStatus(screen *ebiten.Image, s *game.State, hud HUD) {
	ebitenutil.DebugPrintAt(screen, StatusLine(s, hud), config.StatusX, config.StatusY)
	ebitenutil.DebugPrintAt(screen, ScoreLine(s, hud.TPS), config.StatusX, config.StatusY+18)
	if hud.Err != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+hud.Err.Error(), config.StatusX, config.HUDLineY+6)
	}
}

// StatusLine is the text of the status sink.
func StatusLine(s *game.State, hud HUD) string {
	status := s.Status
	if hud.Muted {
		status += " [muted]"
	}
	if hud.CustomHit {
		status += " [custom hit]"
	}
	return status
}

func ScoreLine(s *game.State, tps int) string {
	if tps <= 0 {
		tps = 60
	}
	played := time.Duration(s.Ticks) * time.Second / time.Duration(tps)
	return fmt.Sprintf("Score: %d  Time: %s", s.Score, formatDuration(played))
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
