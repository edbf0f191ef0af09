package layout

import "math"

// NarrowBreakpoint is the viewport width below which menus switch to the
// compact grid.
const NarrowBreakpoint = 700.0

const (
	aspect     = 3.0 / 2.0
	maxCanvasW = 900.0
	maxCanvasH = 540.0
	fillRatio  = 0.98

	// Degenerate viewports are clamped to this canvas.
	MinCanvasW = 150.0
	MinCanvasH = 100.0
)

// FitCanvas picks the largest 3:2 canvas that fits the viewport. Landscape
// viewports are capped by height, portrait ones by width. clamped reports that
// the viewport was unusable and the minimum canvas was substituted.
func FitCanvas(viewportW, viewportH float64) (w, h float64, clamped bool) {
	if !(viewportW > 0) || !(viewportH > 0) || math.IsInf(viewportW, 0) || math.IsInf(viewportH, 0) {
		return MinCanvasW, MinCanvasH, true
	}
	if viewportW/viewportH > aspect {
		h = math.Min(viewportH*fillRatio, maxCanvasH)
		w = h * aspect
	} else {
		w = math.Min(viewportW*fillRatio, maxCanvasW)
		h = w / aspect
	}
	if w < MinCanvasW || h < MinCanvasH {
		return math.Max(w, MinCanvasW), math.Max(h, MinCanvasH), true
	}
	return w, h, false
}

type Rect struct {
	X, Y, W, H float64
}

// Contains uses open bounds, so a click exactly on an edge misses.
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Screen is the geometry shared by the renderers and the input hit tests.
type Screen struct {
	ViewportW float64
	ViewportH float64

	W float64 // canvas width
	H float64 // canvas height

	// Degenerate is set when the viewport had to be clamped.
	Degenerate bool
}

func NewScreen(viewportW, viewportH float64) Screen {
	w, h, clamped := FitCanvas(viewportW, viewportH)
	return Screen{
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		W:          w,
		H:          h,
		Degenerate: clamped,
	}
}

func (s Screen) Narrow() bool { return s.ViewportW < NarrowBreakpoint }

// TitleY is the baseline of menu headings.
func (s Screen) TitleY() float64 { return s.H * 0.08 }

// ModeHeadingY is where "Select Game Mode" sits.
func (s Screen) ModeHeadingY() float64 { return s.H * 0.22 }

// ModeButtons returns the one-player and two-player buttons in that order.
func (s Screen) ModeButtons() [2]Rect {
	bw := s.W * 0.5
	bh := s.H * 0.12
	x := (s.W - bw) / 2
	return [2]Rect{
		{X: x, Y: s.H * 0.38, W: bw, H: bh},
		{X: x, Y: s.H * 0.55, W: bw, H: bh},
	}
}

// ModeAt hit-tests the mode buttons.
func (s Screen) ModeAt(x, y float64) (onePlayer bool, ok bool) {
	b := s.ModeButtons()
	switch {
	case b[0].Contains(x, y):
		return true, true
	case b[1].Contains(x, y):
		return false, true
	default:
		return false, false
	}
}

// Tile is one roster entry on the selection screen.
type Tile struct {
	Hit    Rect // clickable area
	Icon   Rect // coloured square behind the emblem
	LabelX float64
	LabelY float64
}

// Tiles lays out n roster tiles. Narrow viewports use a 3-column grid whose
// whole cells are clickable; wide viewports use one row of fixed-size squares.
func (s Screen) Tiles(n int) []Tile {
	if n <= 0 {
		return nil
	}
	tiles := make([]Tile, n)
	startY := s.H * 0.15

	if s.Narrow() {
		const cols = 3
		const icon = 48.0
		const labelOffset = 32.0 * 0.6
		rows := (n + cols - 1) / cols
		gridW := s.W * 0.92
		gridH := s.H * 0.38
		cellW := gridW / cols
		cellH := gridH / float64(rows)
		startX := (s.W - gridW) / 2
		for i := range tiles {
			col := i % cols
			row := i / cols
			cx := startX + float64(col)*cellW + cellW/2
			cy := startY + float64(row)*cellH + cellH/2
			tiles[i] = Tile{
				Hit:    Rect{X: cx - cellW/2, Y: cy - cellH/2, W: cellW, H: cellH},
				Icon:   Rect{X: cx - icon/2, Y: cy - icon/2, W: icon, H: icon},
				LabelX: cx,
				LabelY: cy + labelOffset,
			}
		}
		return tiles
	}

	const icon = 100.0
	const labelOffset = 70.0
	xOffset := s.W / float64(n+1)
	for i := range tiles {
		cx := xOffset * float64(i+1)
		r := Rect{X: cx - icon/2, Y: startY, W: icon, H: icon}
		tiles[i] = Tile{
			Hit:    r,
			Icon:   r,
			LabelX: cx,
			LabelY: startY + icon/2 + labelOffset,
		}
	}
	return tiles
}

// TileAt returns the first tile containing the point.
func (s Screen) TileAt(x, y float64, n int) (int, bool) {
	for i, t := range s.Tiles(n) {
		if t.Hit.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}
