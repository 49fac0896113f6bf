package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/mapview"
)

// Draw renders the session's frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorClear)
	if e.session == nil {
		return
	}

	b := screen.Bounds()
	frame := e.session.OnFrame(b.Dx(), b.Dy())
	for _, cmd := range frame.Commands {
		switch c := cmd.(type) {
		case mapview.FillRect:
			vector.DrawFilledRect(screen, float32(c.X0), float32(c.Y0),
				float32(c.X1-c.X0), float32(c.Y1-c.Y0), toColor(c.Color), false)
		case mapview.TexturedQuad:
			e.drawQuad(screen, c)
		case mapview.Text:
			e.drawText(screen, c)
		case mapview.Triangle:
			e.drawTriangle(screen, c)
		}
	}
}

func (e *EbitenRenderer) drawQuad(screen *ebiten.Image, q mapview.TexturedQuad) {
	ti, ok := q.Image.(*tileImage)
	if !ok {
		return
	}
	w, h := ti.Size()
	if w == 0 || h == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	sx, sy := q.W/float64(w), q.H/float64(h)
	if sx < 1 {
		op.Filter = ebiten.FilterLinear
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(q.X, q.Y)
	screen.DrawImage(ti.img, op)
}

// drawText draws a string with its top-left at (X, Y), or centered on it
func (e *EbitenRenderer) drawText(screen *ebiten.Image, t mapview.Text) {
	face := e.getSansFontFace()
	x, y := t.X, t.Y
	if t.Centered {
		w, h := text.Measure(t.Text, face, 0)
		x -= w / 2
		y -= h / 2
	}

	if t.Shadow {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+shadowOffset, y+shadowOffset)
		op.ColorScale.ScaleWithColor(colorTextShadow)
		text.Draw(screen, t.Text, face, op)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toColor(t.Color))
	text.Draw(screen, t.Text, face, op)
}

func (e *EbitenRenderer) drawTriangle(screen *ebiten.Image, t mapview.Triangle) {
	a, r, g, b := pixel.Channels(t.Color)
	vs := make([]ebiten.Vertex, 3)
	for i, p := range t.Points {
		vs[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(r) / 255,
			ColorG: float32(g) / 255,
			ColorB: float32(b) / 255,
			ColorA: float32(a) / 255,
		}
	}
	// vertex colors are straight alpha (the default ColorScaleMode)
	screen.DrawTriangles(vs, []uint16{0, 1, 2}, e.whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// toColor converts a canonical 0xAARRGGBB value to a straight-alpha color
func toColor(p uint32) color.Color {
	a, r, g, b := pixel.Channels(p)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
