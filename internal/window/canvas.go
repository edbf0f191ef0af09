package window

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/fchimpan/magic-pong/internal/game"
)

// debugGlyphW and debugGlyphH are the cell size of ebitenutil's debug font.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// canvas draws in canvas coordinates onto a screen where the canvas sits at
// (ox, oy).
type canvas struct {
	dst    *ebiten.Image
	ox, oy float64
}

func (c canvas) rect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.dst, float32(c.ox+x), float32(c.oy+y), float32(w), float32(h), clr, false)
}

func (c canvas) circle(x, y, r float64, clr color.Color) {
	vector.DrawFilledCircle(c.dst, float32(c.ox+x), float32(c.oy+y), float32(r), clr, true)
}

// print centres s on (x, y).
func (c canvas) print(x, y float64, s string) {
	px := int(c.ox + x - float64(len(s)*debugGlyphW)/2)
	py := int(c.oy + y - debugGlyphH/2)
	ebitenutil.DebugPrintAt(c.dst, s, px, py)
}

// tile draws a character's colour square with its emblem, centred on (x, y).
func (c canvas) tile(ch game.Character, x, y, size float64) {
	c.rect(x-size/2, y-size/2, size, size, ch.Color)
	c.emblem(ch, x, y, size*0.6)
}

func (c canvas) polygon(pts [][2]float64, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(c.ox+pts[0][0]), float32(c.oy+pts[0][1]))
	for _, pt := range pts[1:] {
		p.LineTo(float32(c.ox+pt[0]), float32(c.oy+pt[1]))
	}
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	c.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}

// emblem draws the character's emblem in a colour that reads on its tile.
func (c canvas) emblem(ch game.Character, x, y, s float64) {
	clr := ink(ch.Color)
	at := func(rel ...float64) [][2]float64 {
		pts := make([][2]float64, 0, len(rel)/2)
		for i := 0; i+1 < len(rel); i += 2 {
			pts = append(pts, [2]float64{x + rel[i]*s, y + rel[i+1]*s})
		}
		return pts
	}

	switch ch.Emblem {
	case game.EmblemStar:
		pts := make([][2]float64, 0, 10)
		for i := range 10 {
			r := 0.5
			if i%2 == 1 {
				r = 0.2
			}
			a := float64(i)*math.Pi/5 - math.Pi/2
			pts = append(pts, [2]float64{x + math.Cos(a)*r*s, y + math.Sin(a)*r*s})
		}
		c.polygon(pts, clr)
	case game.EmblemCrown:
		c.polygon(at(-0.3, 0.2, -0.3, -0.1, -0.15, 0.05, 0, -0.25, 0.15, 0.05, 0.3, -0.1, 0.3, 0.2), clr)
	case game.EmblemBolt:
		c.polygon(at(0.1, -0.4, -0.2, 0.05, 0, 0.05, -0.1, 0.4, 0.2, -0.05, 0, -0.05), clr)
	case game.EmblemTrident:
		c.rect(x-0.03*s, y-0.3*s, 0.06*s, 0.6*s, clr)
		c.rect(x-0.2*s, y-0.3*s, 0.06*s, 0.25*s, clr)
		c.rect(x+0.14*s, y-0.3*s, 0.06*s, 0.25*s, clr)
		c.rect(x-0.2*s, y-0.08*s, 0.4*s, 0.06*s, clr)
	case game.EmblemShield:
		c.polygon(at(0, -0.3, 0.25, -0.2, 0.25, 0.05, 0, 0.3, -0.25, 0.05, -0.25, -0.2), clr)
	case game.EmblemPaw:
		c.circle(x, y+0.08*s, 0.15*s, clr)
		for _, dx := range []float64{-0.2, -0.07, 0.07, 0.2} {
			dy := -0.12
			if dx == -0.2 || dx == 0.2 {
				dy = -0.04
			}
			c.circle(x+dx*s, y+dy*s, 0.06*s, clr)
		}
	default:
		c.circle(x, y, 0.3*s, clr)
	}
}

func (c canvas) sparks(ps []spark) {
	for _, p := range ps {
		r, g, b := p.Color.RGB255()
		c.circle(p.X, p.Y, 2, color.NRGBA{R: r, G: g, B: b, A: uint8(math.Max(0, math.Min(255, p.Alpha)))})
	}
}

// ink picks black or white, whichever contrasts better with bg.
func ink(bg game.Color) color.Color {
	r, g, b := bg.RGB255()
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 150 {
		return color.Black
	}
	return color.White
}
