package game

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour that has been validated once at assignment.
// The zero value is black.
type Color struct {
	c colorful.Color
}

var White = Color{c: colorful.Color{R: 1, G: 1, B: 1}}

// ParseColor accepts "#rrggbb" or "#rgb" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid color %q: want #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{c: c.Clamped()}, nil
}

func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the lower-case "#rrggbb" form.
func (c Color) Hex() string { return c.c.Hex() }

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return c.c.RGBA() }

func (c Color) RGB255() (r, g, b uint8) { return c.c.RGB255() }

// Blend mixes c toward other by t in [0,1].
func (c Color) Blend(other Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Color{c: c.c.BlendRgb(other.c, t).Clamped()}
}

func (c Color) String() string { return c.Hex() }
