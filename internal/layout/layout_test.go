package layout

import (
	"math"
	"testing"
)

func TestFitCanvas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		vw, vh       float64
		wantW, wantH float64
	}{
		{name: "landscape capped by height", vw: 1000, vh: 500, wantW: 735, wantH: 490},
		{name: "landscape hits max height", vw: 3000, vh: 1200, wantW: 810, wantH: 540},
		{name: "portrait capped by width", vw: 400, vh: 800, wantW: 392, wantH: 392 / 1.5},
		{name: "portrait hits max width", vw: 1000, vh: 2000, wantW: 900, wantH: 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h, clamped := FitCanvas(tt.vw, tt.vh)
			if clamped {
				t.Fatalf("unexpected clamp")
			}
			if math.Abs(w-tt.wantW) > 1e-9 || math.Abs(h-tt.wantH) > 1e-9 {
				t.Fatalf("FitCanvas(%v, %v) = %vx%v, want %vx%v", tt.vw, tt.vh, w, h, tt.wantW, tt.wantH)
			}
			if math.Abs(w/h-1.5) > 1e-9 {
				t.Fatalf("aspect = %v", w/h)
			}
		})
	}
}

func TestFitCanvas_Degenerate(t *testing.T) {
	t.Parallel()

	for _, vp := range [][2]float64{{0, 0}, {-10, 500}, {500, 0}, {math.NaN(), 400}, {math.Inf(1), 400}, {50, 40}} {
		w, h, clamped := FitCanvas(vp[0], vp[1])
		if !clamped {
			t.Fatalf("FitCanvas(%v) not clamped", vp)
		}
		if w < MinCanvasW || h < MinCanvasH {
			t.Fatalf("FitCanvas(%v) = %vx%v below minimum", vp, w, h)
		}
	}
}

func TestRect_ContainsIsOpen(t *testing.T) {
	t.Parallel()

	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	if !r.Contains(20, 20) {
		t.Fatalf("centre missed")
	}
	if r.Contains(10, 20) || r.Contains(30, 20) || r.Contains(20, 10) || r.Contains(20, 30) {
		t.Fatalf("edge should miss")
	}
}

func TestModeAt(t *testing.T) {
	t.Parallel()

	s := NewScreen(1200, 800)
	b := s.ModeButtons()

	x, y := b[0].Center()
	if one, ok := s.ModeAt(x, y); !ok || !one {
		t.Fatalf("first button: one=%v ok=%v", one, ok)
	}
	x, y = b[1].Center()
	if one, ok := s.ModeAt(x, y); !ok || one {
		t.Fatalf("second button: one=%v ok=%v", one, ok)
	}
	if _, ok := s.ModeAt(1, 1); ok {
		t.Fatalf("corner hit a button")
	}
}

func TestTiles_Wide(t *testing.T) {
	t.Parallel()

	s := NewScreen(1200, 800)
	if s.Narrow() {
		t.Fatalf("1200px should be wide")
	}
	tiles := s.Tiles(6)
	if len(tiles) != 6 {
		t.Fatalf("got %d tiles", len(tiles))
	}
	step := s.W / 7
	for i, tile := range tiles {
		cx, _ := tile.Icon.Center()
		if math.Abs(cx-step*float64(i+1)) > 1e-9 {
			t.Fatalf("tile %d centred at %v, want %v", i, cx, step*float64(i+1))
		}
		if tile.Icon.W != 100 || tile.Icon.Y != s.H*0.15 {
			t.Fatalf("tile %d icon = %+v", i, tile.Icon)
		}
		hx, hy := tile.Hit.Center()
		if got, ok := s.TileAt(hx, hy, 6); !ok || got != i {
			t.Fatalf("TileAt centre of %d = %d, %v", i, got, ok)
		}
	}
}

func TestTiles_NarrowGrid(t *testing.T) {
	t.Parallel()

	s := NewScreen(600, 900)
	if !s.Narrow() {
		t.Fatalf("600px should be narrow")
	}
	tiles := s.Tiles(6)
	for i, tile := range tiles {
		if tile.Icon.W != 48 {
			t.Fatalf("tile %d icon width %v", i, tile.Icon.W)
		}
		// The whole cell is clickable, not just the icon.
		x := tile.Hit.X + 1
		y := tile.Hit.Y + 1
		if got, ok := s.TileAt(x, y, 6); !ok || got != i {
			t.Fatalf("cell corner of %d resolved to %d, %v", i, got, ok)
		}
	}
	if tiles[3].Hit.Y <= tiles[0].Hit.Y {
		t.Fatalf("fourth tile should start the second row")
	}
	if _, ok := s.TileAt(1, s.H-1, 6); ok {
		t.Fatalf("point below the grid hit a tile")
	}
}

func TestTiles_Empty(t *testing.T) {
	t.Parallel()

	if got := NewScreen(1200, 800).Tiles(0); got != nil {
		t.Fatalf("expected no tiles, got %d", len(got))
	}
}
