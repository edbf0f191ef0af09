package game

import (
	"slices"
	"time"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Phase     Phase
	OnePlayer bool

	CanvasW float64
	CanvasH float64
	Narrow  bool

	Roster    []Character
	Selection Selection

	// Only set when InMatch is true.
	InMatch bool
	Players [2]Character
	Paddles [2]Paddle
	Ball    Ball

	Winner      string
	WinnerColor Color

	Remaining time.Duration
}

func (c *Context) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Phase:     c.phase,
		OnePlayer: c.onePlayer,
		CanvasW:   c.screen.W,
		CanvasH:   c.screen.H,
		Narrow:    c.screen.Narrow(),
		Roster:    slices.Clone(c.roster),
		Remaining: c.Remaining(now),
		Winner:    c.winner,
	}
	if c.selection.Player1 != nil {
		p := *c.selection.Player1
		s.Selection.Player1 = &p
	}
	if c.selection.Player2 != nil {
		p := *c.selection.Player2
		s.Selection.Player2 = &p
	}
	if m := c.match; m != nil {
		s.InMatch = true
		s.Players = m.Players
		s.Paddles = m.Paddles
		s.Ball = m.Ball
		if m.Over() {
			s.WinnerColor = m.Paddles[m.Winner()].Color
		}
	}
	return s
}
