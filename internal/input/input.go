package input

import (
	"github.com/fchimpan/magic-pong/internal/game"
	"github.com/fchimpan/magic-pong/internal/layout"
)

// Key is a frontend-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyS
	KeyUp
	KeyDown
	KeyZ
	KeySpace
	KeyEnter
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
)

// Held is the set of keys currently down.
type Held uint32

func (h Held) Has(k Key) bool { return k != KeyUnknown && h&(1<<uint(k)) != 0 }

func (h Held) With(k Key) Held {
	if k == KeyUnknown {
		return h
	}
	return h | 1<<uint(k)
}

func HeldOf(keys ...Key) Held {
	var h Held
	for _, k := range keys {
		h = h.With(k)
	}
	return h
}

// State is the part of the game the mapper reads to interpret raw input.
type State interface {
	Phase() game.Phase
	OnePlayer() bool
	Screen() layout.Screen
}

// Mapper turns pointer and key events into intents and per-tick controls.
// It also buffers touch drags until the next tick reads them.
type Mapper struct {
	dragging bool
	dragSide game.Side
	dragY    float64

	nudge [2]int
}

func NewMapper() *Mapper { return &Mapper{} }

// PointerDown handles a click or tap in canvas coordinates.
func (m *Mapper) PointerDown(st State, x, y float64) (game.Intent, bool) {
	scr := st.Screen()
	switch st.Phase() {
	case game.PhaseModeSelect:
		one, ok := scr.ModeAt(x, y)
		if !ok {
			return game.Intent{}, false
		}
		return game.Intent{Kind: game.IntentChooseMode, OnePlayer: one}, true
	case game.PhaseCharacterSelect:
		i, ok := scr.TileAt(x, y, game.RosterSize())
		if !ok {
			return game.Intent{}, false
		}
		return game.Intent{Kind: game.IntentPick, Index: i}, true
	case game.PhaseSelectionTransition, game.PhaseCountdown:
		return game.Intent{Kind: game.IntentSkip}, true
	case game.PhasePlaying:
		m.dragging = true
		m.dragSide = game.SideLeft
		if x >= scr.W/2 {
			m.dragSide = game.SideRight
		}
		m.dragY = y
	}
	return game.Intent{}, false
}

// PointerMove nudges the paddle on the half where the drag started by one
// speed step in the direction of travel.
func (m *Mapper) PointerMove(st State, x, y float64) {
	if !m.dragging || st.Phase() != game.PhasePlaying {
		return
	}
	switch dy := y - m.dragY; {
	case dy > 0:
		m.nudge[m.dragSide] = 1
	case dy < 0:
		m.nudge[m.dragSide] = -1
	}
	m.dragY = y
}

func (m *Mapper) PointerUp() {
	m.dragging = false
}

// KeyPress handles a single key press (not a hold).
func (m *Mapper) KeyPress(st State, k Key) (game.Intent, bool) {
	switch st.Phase() {
	case game.PhaseModeSelect:
		switch k {
		case Key1:
			return game.Intent{Kind: game.IntentChooseMode, OnePlayer: true}, true
		case Key2:
			return game.Intent{Kind: game.IntentChooseMode, OnePlayer: false}, true
		}
	case game.PhaseCharacterSelect:
		if k >= Key1 && k <= Key6 {
			i := int(k - Key1)
			if i < game.RosterSize() {
				return game.Intent{Kind: game.IntentPick, Index: i}, true
			}
		}
	case game.PhaseSelectionTransition, game.PhaseCountdown:
		if k == KeySpace || k == KeyEnter {
			return game.Intent{Kind: game.IntentSkip}, true
		}
	case game.PhaseGameOver:
		if k == KeyZ {
			return game.Intent{Kind: game.IntentRestart}, true
		}
	}
	return game.Intent{}, false
}

// Controls reads the held keys and any buffered drag for one tick. Player 1
// uses W/S; player 2 uses the arrows unless the computer is playing.
func (m *Mapper) Controls(st State, held Held) game.Controls {
	defer func() { m.nudge = [2]int{} }()
	if st.Phase() != game.PhasePlaying {
		return game.Controls{}
	}
	c := game.Controls{
		Left: direction(held, KeyW, KeyS),
	}
	if !st.OnePlayer() {
		c.Right = direction(held, KeyUp, KeyDown)
	}
	if c.Left == 0 {
		c.Left = m.nudge[game.SideLeft]
	}
	if c.Right == 0 && !st.OnePlayer() {
		c.Right = m.nudge[game.SideRight]
	}
	return c
}

func direction(h Held, up, down Key) int {
	d := 0
	if h.Has(up) {
		d--
	}
	if h.Has(down) {
		d++
	}
	return d
}
