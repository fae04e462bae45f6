package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type Button struct {
	Label      string
	X, Y, W, H int

	Hovered bool
	Pressed bool
}

func NewButton(label string, x, y, w, h int) *Button {
	return &Button{Label: label, X: x, Y: y, W: w, H: h}
}

func (b *Button) Contains(x, y int) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Update tracks hover and press state and reports a click: press and release
// both inside the button.
func (b *Button) Update(mouseX, mouseY int, justPressed, justReleased bool) bool {
	b.Hovered = b.Contains(mouseX, mouseY)
	if b.Hovered && justPressed {
		b.Pressed = true
	}
	clicked := false
	if justReleased {
		clicked = b.Pressed && b.Hovered
		b.Pressed = false
	}
	return clicked
}

func (b *Button) Draw(screen *ebiten.Image) {
	var bgColor color.Color
	if b.Pressed {
		bgColor = color.RGBA{R: 30, G: 58, B: 138, A: 255} // Pressed
	} else if b.Hovered {
		bgColor = color.RGBA{R: 37, G: 99, B: 235, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 59, G: 130, B: 246, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bgColor, false)

	borderColor := color.RGBA{R: 147, G: 197, B: 253, A: 255}
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, borderColor, false)

	textWidth := len(b.Label) * 6 // debug font glyphs are 6px wide
	textX := b.X + (b.W-textWidth)/2
	textY := b.Y + (b.H-16)/2
	ebitenutil.DebugPrintAt(screen, b.Label, textX, textY)
}
