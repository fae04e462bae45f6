package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const ballSegments = 32

var whiteImage *ebiten.Image

// whiteSubImage is the 1x1 source every colored triangle samples from.
func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func setColor(v *ebiten.Vertex, c color.RGBA) {
	v.SrcX, v.SrcY = 1, 1
	v.ColorR = float32(c.R) / 255
	v.ColorG = float32(c.G) / 255
	v.ColorB = float32(c.B) / 255
	v.ColorA = float32(c.A) / 255
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// roundedRectPath traces a rectangle whose corners are quadratic curves of radius r.
func roundedRectPath(x, y, w, h, r float32) *vector.Path {
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	var p vector.Path
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.QuadTo(x+w, y, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.QuadTo(x+w, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.QuadTo(x, y+h, x, y+h-r)
	p.LineTo(x, y+r)
	p.QuadTo(x, y, x+r, y)
	p.Close()
	return &p
}

// fillVerticalGradient fills path with colors running from top at y0 to bottom at y1.
func fillVerticalGradient(dst *ebiten.Image, path *vector.Path, y0, y1 float32, top, bottom color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		t := float64((vs[i].DstY - y0) / (y1 - y0))
		setColor(&vs[i], lerpColor(top, bottom, t))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage(), op)
}

// radialFan builds a triangle fan over a circle of radius r at (cx, cy) whose
// hub sits at (hx, hy). The hub gets inner, the rim gets outer.
func radialFan(cx, cy, r, hx, hy float64, inner, outer color.RGBA) ([]ebiten.Vertex, []uint16) {
	vs := make([]ebiten.Vertex, 0, ballSegments+1)
	is := make([]uint16, 0, ballSegments*3)

	hub := ebiten.Vertex{DstX: float32(hx), DstY: float32(hy)}
	setColor(&hub, inner)
	vs = append(vs, hub)

	for i := 0; i < ballSegments; i++ {
		a := 2 * math.Pi * float64(i) / ballSegments
		v := ebiten.Vertex{
			DstX: float32(cx + math.Cos(a)*r),
			DstY: float32(cy + math.Sin(a)*r),
		}
		setColor(&v, outer)
		vs = append(vs, v)

		next := uint16(1 + (i+1)%ballSegments)
		is = append(is, 0, uint16(1+i), next)
	}
	return vs, is
}

// quadCorners returns the corners of a size x 2*size card rotated by angle
// around (x, y), offset like the card was drawn from (-size/2, -size/2).
func quadCorners(x, y, size, angle float64) [4][2]float64 {
	local := [4][2]float64{
		{-size / 2, -size / 2},
		{size / 2, -size / 2},
		{size / 2, size * 1.5},
		{-size / 2, size * 1.5},
	}
	sin, cos := math.Sincos(angle)
	var out [4][2]float64
	for i, p := range local {
		out[i] = [2]float64{
			x + p[0]*cos - p[1]*sin,
			y + p[0]*sin + p[1]*cos,
		}
	}
	return out
}
