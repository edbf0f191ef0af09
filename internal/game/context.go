package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fchimpan/magic-pong/internal/layout"
)

type Phase int

const (
	PhaseModeSelect Phase = iota
	PhaseCharacterSelect
	PhaseSelectionTransition
	PhaseCountdown
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseModeSelect:
		return "mode-select"
	case PhaseCharacterSelect:
		return "character-select"
	case PhaseSelectionTransition:
		return "selection-transition"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

type IntentKind int

const (
	IntentChooseMode IntentKind = iota
	IntentPick
	IntentSkip
	IntentRestart
)

// Intent is a discrete action produced by the input mapper.
type Intent struct {
	Kind      IntentKind
	OnePlayer bool // IntentChooseMode
	Index     int  // IntentPick, roster index
}

// Context owns the whole session: the current phase, the selection and the
// running match. It is not safe for concurrent use; frontends drive it from a
// single loop.
type Context struct {
	settings Settings
	logger   *log.Logger
	rng      *rand.Rand
	roster   []Character

	screen layout.Screen

	phase      Phase
	phaseStart time.Time

	onePlayer bool
	selection Selection
	match     *Match
	winner    string
}

type Option func(*Context)

func WithLogger(l *log.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSeed fixes the serve randomness.
func WithSeed(seed uint64) Option {
	return func(c *Context) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func NewContext(s Settings, viewportW, viewportH float64, opts ...Option) *Context {
	c := &Context{
		settings: s.normalize(),
		logger:   log.New(io.Discard),
		roster:   Roster(),
		phase:    PhaseModeSelect,
	}
	for _, o := range opts {
		o(c)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	c.Resize(viewportW, viewportH)
	return c
}

func (c *Context) Phase() Phase { return c.phase }
func (c *Context) OnePlayer() bool { return c.onePlayer }
func (c *Context) Screen() layout.Screen { return c.screen }
func (c *Context) Selection() Selection { return c.selection }
func (c *Context) Winner() string { return c.winner }

// Match is nil outside Countdown, Playing and GameOver.
func (c *Context) Match() *Match { return c.match }

// Resize recomputes the canvas for a new viewport. Degenerate sizes are
// clamped instead of rejected. A 0x0 viewport means the frontend has not
// reported a size yet and is clamped without a warning.
func (c *Context) Resize(viewportW, viewportH float64) {
	c.screen = layout.NewScreen(viewportW, viewportH)
	if c.screen.Degenerate && (viewportW != 0 || viewportH != 0) {
		c.logger.Warn("viewport clamped", "viewport_w", viewportW, "viewport_h", viewportH,
			"canvas_w", c.screen.W, "canvas_h", c.screen.H)
	}
	if c.match != nil {
		c.match.Resize(c.screen.W, c.screen.H)
	}
}

// Handle applies an intent. It reports false when the intent does not apply
// to the current phase; such intents are ignored.
func (c *Context) Handle(now time.Time, in Intent) bool {
	switch in.Kind {
	case IntentChooseMode:
		if c.phase != PhaseModeSelect {
			return false
		}
		c.onePlayer = in.OnePlayer
		c.selection = Selection{}
		c.enter(PhaseCharacterSelect, now)
		return true

	case IntentPick:
		if c.phase != PhaseCharacterSelect || in.Index < 0 || in.Index >= len(c.roster) {
			return false
		}
		ch := c.roster[in.Index]
		if c.selection.next() == SideLeft {
			c.selection.Player1 = &ch
			c.logger.Debug("player 1 picked", "character", ch.ID)
			if c.settings.SelectionTransition {
				c.enter(PhaseSelectionTransition, now)
			}
			return true
		}
		c.selection.Player2 = &ch
		c.logger.Debug("player 2 picked", "character", ch.ID)
		c.startMatch(now)
		return true

	case IntentSkip:
		switch c.phase {
		case PhaseSelectionTransition:
			c.enter(PhaseCharacterSelect, now)
			return true
		case PhaseCountdown:
			c.enter(PhasePlaying, now)
			return true
		}
		return false

	case IntentRestart:
		if c.phase != PhaseGameOver {
			return false
		}
		c.restart(now)
		return true
	}
	return false
}

// Tick polls phase timers and, while playing, advances the match by one step.
func (c *Context) Tick(now time.Time, in Controls) []Event {
	switch c.phase {
	case PhaseSelectionTransition:
		if c.elapsed(now) >= c.settings.TransitionDuration {
			c.enter(PhaseCharacterSelect, now)
		}
	case PhaseCountdown:
		if c.elapsed(now) >= c.settings.CountdownDuration {
			c.enter(PhasePlaying, now)
		}
	case PhasePlaying:
		events := c.match.Step(in)
		for _, ev := range events {
			if ev.Kind != EventWin {
				continue
			}
			c.winner = c.match.Players[ev.Side].ID
			c.logger.Info("match won", "winner", c.winner,
				"score_left", c.match.Paddles[SideLeft].Score,
				"score_right", c.match.Paddles[SideRight].Score)
			c.enter(PhaseGameOver, now)
		}
		return events
	}
	return nil
}

// Remaining is the time left in a timed phase, zero otherwise.
func (c *Context) Remaining(now time.Time) time.Duration {
	var total time.Duration
	switch c.phase {
	case PhaseSelectionTransition:
		total = c.settings.TransitionDuration
	case PhaseCountdown:
		total = c.settings.CountdownDuration
	default:
		return 0
	}
	return max(total-c.elapsed(now), 0)
}

func (c *Context) startMatch(now time.Time) {
	if !c.selection.Complete() {
		return
	}
	p1, p2 := *c.selection.Player1, *c.selection.Player2
	c.match = NewMatch(p1, p2, c.screen.W, c.screen.H, c.onePlayer, c.settings, c.rng)
	c.winner = ""
	c.enter(PhaseCountdown, now)
}

func (c *Context) restart(now time.Time) {
	if c.match != nil {
		for i := range c.match.Paddles {
			c.match.Paddles[i].Score = 0
		}
	}
	c.match = nil
	c.winner = ""
	c.selection = Selection{}
	c.enter(PhaseModeSelect, now)
}

func (c *Context) enter(p Phase, now time.Time) {
	c.logger.Debug("phase change", "from", c.phase, "to", p)
	c.phase = p
	c.phaseStart = now
}

func (c *Context) elapsed(now time.Time) time.Duration {
	d := now.Sub(c.phaseStart)
	if d < 0 {
		return 0
	}
	return d
}
