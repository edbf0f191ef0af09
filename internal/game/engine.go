package game

import (
	"math"
	"math/rand/v2"
)

// Controls is the per-tick paddle intent: -1 up, 0 none, +1 down.
type Controls struct {
	Left  int
	Right int
}

// Match is the simulation of a single game between two characters.
// All quantities are in canvas pixels and advance by a fixed amount per tick.
type Match struct {
	Width  float64
	Height float64

	Players [2]Character
	Paddles [2]Paddle
	Ball    Ball

	OnePlayer bool

	settings Settings
	rng      *rand.Rand

	over   bool
	winner Side
}

// NewMatch builds paddles and ball for the chosen characters. The ball opens
// toward player 2.
func NewMatch(p1, p2 Character, width, height float64, onePlayer bool, s Settings, rng *rand.Rand) *Match {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1^0x9e3779b97f4a7c15))
	}
	m := &Match{
		Width:     width,
		Height:    height,
		Players:   [2]Character{p1, p2},
		OnePlayer: onePlayer,
		settings:  s.normalize(),
		rng:       rng,
	}
	m.Paddles[SideLeft] = newPaddle(SideLeft, p1.Color, width, height)
	m.Paddles[SideRight] = newPaddle(SideRight, p2.Color, width, height)
	m.Ball = newBall(width, height)
	m.tintBall()
	return m
}

func (m *Match) Over() bool { return m.over }

// Winner is only meaningful once Over reports true.
func (m *Match) Winner() Side { return m.winner }

// FloorHeight is the minimum paddle height for the current canvas.
func (m *Match) FloorHeight() float64 { return m.Height * paddleFloorFrac }

// Step advances the match by one tick and returns what happened.
func (m *Match) Step(in Controls) []Event {
	if m.over {
		return nil
	}
	var events []Event

	m.movePaddles(in)

	b := &m.Ball
	prevX := b.X
	b.X += b.VX
	b.Y += b.VY

	// Top/bottom walls reflect without losing energy.
	r := b.Radius()
	if b.Y <= r {
		b.Y = r
		if b.VY < 0 {
			b.VY = -b.VY
			events = append(events, Event{Kind: EventBounce, X: b.X, Y: b.Y, Color: b.Color})
		}
	} else if b.Y >= m.Height-r {
		b.Y = m.Height - r
		if b.VY > 0 {
			b.VY = -b.VY
			events = append(events, Event{Kind: EventBounce, X: b.X, Y: b.Y, Color: b.Color})
		}
	}

	// Paddles first: a fast ball may cross a face and the edge in one tick.
	for side := range m.Paddles {
		if ev, ok := m.collide(Side(side), prevX); ok {
			events = append(events, ev...)
		}
	}

	if b.X < 0 {
		return m.score(SideRight, events)
	}
	if b.X > m.Width {
		return m.score(SideLeft, events)
	}

	m.tintBall()
	return events
}

func (m *Match) movePaddles(in Controls) {
	left := &m.Paddles[SideLeft]
	left.move(float64(clampDir(in.Left))*left.Speed, m.Height)

	right := &m.Paddles[SideRight]
	if m.OnePlayer {
		m.steerAI(right)
		return
	}
	right.move(float64(clampDir(in.Right))*right.Speed, m.Height)
}

// steerAI tracks the ball at reduced speed, idling inside the deadzone so the
// paddle does not jitter around the target.
func (m *Match) steerAI(p *Paddle) {
	target := m.Ball.Y
	if math.Abs(p.CenterY-target) <= m.settings.AIDeadzone {
		return
	}
	step := p.Speed * m.settings.AISpeedFactor
	if p.CenterY < target {
		p.move(step, m.Height)
	} else {
		p.move(-step, m.Height)
	}
}

func (m *Match) score(scorer Side, events []Event) []Event {
	b := &m.Ball
	p := &m.Paddles[scorer]
	p.Score++
	events = append(events, Event{Kind: EventScore, Side: scorer, X: b.X, Y: b.Y, Color: p.Color})

	m.shrinkPaddles()
	b.VX *= 0.5
	b.VY *= 0.5

	if p.Score >= WinningScore {
		p.Score = WinningScore
		m.over = true
		m.winner = scorer
		b.X = math.Max(0, math.Min(m.Width, b.X))
		events = append(events, Event{Kind: EventWin, Side: scorer, X: b.X, Y: b.Y, Color: p.Color})
		return events
	}
	m.ResetBall(scorer.Other())
	m.tintBall()
	return events
}

// shrinkPaddles takes a fifth of the distance to the floor off both paddles,
// so they lose the most height on the first points.
func (m *Match) shrinkPaddles() {
	floor := m.FloorHeight()
	for i := range m.Paddles {
		p := &m.Paddles[i]
		p.Height = math.Max(floor, p.Height-(p.Height-floor)/ShrinkSteps)
		p.clamp(m.Height)
	}
}

// ResetBall serves from the centre toward the side that conceded the last
// point with a fresh random vertical speed.
func (m *Match) ResetBall(conceded Side) {
	b := &m.Ball
	b.X = m.Width / 2
	b.Y = m.Height / 2

	spread := m.Height * serveSpreadFrac
	b.VY = (m.rng.Float64()*2 - 1) * spread

	b.VX = m.Width * serveSpeedXFrac
	if conceded == SideLeft {
		b.VX = -b.VX
	}
}

// collide handles a hit on the face of one paddle. The test is one-sided: the
// ball has to be travelling toward the paddle and its centre must still be in
// front of the back edge, unless it crossed the face during this tick.
func (m *Match) collide(side Side, prevX float64) ([]Event, bool) {
	b := &m.Ball
	p := &m.Paddles[side]
	r := b.Radius()
	if b.Y < p.Top() || b.Y > p.Bottom() {
		return nil, false
	}

	switch side {
	case SideLeft:
		if b.VX >= 0 || b.X-r > p.Face() {
			return nil, false
		}
		if b.X <= p.X && prevX-r < p.Face() {
			return nil, false
		}
		b.VX = VolleySpeed(b.VX, 1, m.Width, m.maxSpeed())
		b.X = p.Face() + r
	case SideRight:
		if b.VX <= 0 || b.X+r < p.Face() {
			return nil, false
		}
		if b.X >= p.X+p.Width && prevX+r > p.Face() {
			return nil, false
		}
		b.VX = VolleySpeed(b.VX, -1, m.Width, m.maxSpeed())
		b.X = p.Face() - r
	}

	bounce := BounceAngle(b.Y, p.CenterY, p.Height, m.Height)
	b.VY = bounce.VY
	if m.settings.Spin {
		b.VY += bounce.Spin
	}

	return []Event{
		{Kind: EventBounce, Side: side, X: b.X, Y: b.Y, Color: p.Color},
		{Kind: EventPaddleHit, Side: side, X: b.X, Y: b.Y, Color: p.Color},
	}, true
}

func (m *Match) maxSpeed() float64 {
	if m.settings.MaxSpeedFactor <= 0 {
		return 0
	}
	return m.settings.MaxSpeedFactor * m.Width * serveSpeedXFrac
}

// tintBall paints the ball in the colour of the half it is travelling through.
func (m *Match) tintBall() {
	if m.Ball.X < m.Width/2 {
		m.Ball.Color = m.Paddles[SideLeft].Color
	} else {
		m.Ball.Color = m.Paddles[SideRight].Color
	}
}

// Resize rescales every entity to a new canvas, keeping positions and the
// shrink progress as fractions of the canvas.
func (m *Match) Resize(width, height float64) {
	if width <= 0 || height <= 0 || (width == m.Width && height == m.Height) {
		return
	}
	sx := width / m.Width
	sy := height / m.Height

	for i := range m.Paddles {
		p := &m.Paddles[i]
		fresh := newPaddle(p.Side, p.Color, width, height)
		p.X = fresh.X
		p.Width = fresh.Width
		p.Speed = fresh.Speed
		p.Height *= sy
		p.CenterY *= sy
	}

	b := &m.Ball
	b.X *= sx
	b.Y *= sy
	b.VX *= sx
	b.VY *= sy
	b.Size = min(width, height) * ballSizeFrac

	m.Width = width
	m.Height = height

	floor := m.FloorHeight()
	for i := range m.Paddles {
		p := &m.Paddles[i]
		if p.Height < floor {
			p.Height = floor
		}
		p.clamp(height)
	}
	r := b.Radius()
	b.Y = math.Max(r, math.Min(height-r, b.Y))
	b.X = math.Max(0, math.Min(width, b.X))
}

func clampDir(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}
