package game

import (
	"math"
	"math/rand/v2"
	"testing"
)

const (
	testW = 900.0
	testH = 600.0
)

func newTestMatch(t *testing.T, onePlayer bool, s Settings) *Match {
	t.Helper()
	r := Roster()
	return NewMatch(r[0], r[1], testW, testH, onePlayer, s, rand.New(rand.NewPCG(1, 2)))
}

func hasEvent(events []Event, kind EventKind, side Side) bool {
	for _, ev := range events {
		if ev.Kind == kind && ev.Side == side {
			return true
		}
	}
	return false
}

func TestNewMatch_InitialState(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	for _, p := range m.Paddles {
		if !almostEqual(p.Height, testH*0.27) {
			t.Fatalf("%s paddle height = %v, want %v", p.Side, p.Height, testH*0.27)
		}
		if !almostEqual(p.CenterY, testH/2) {
			t.Fatalf("%s paddle not centred: %v", p.Side, p.CenterY)
		}
		if p.Score != 0 {
			t.Fatalf("%s paddle score = %d", p.Side, p.Score)
		}
	}
	if m.Paddles[SideLeft].X >= m.Paddles[SideRight].X {
		t.Fatalf("left paddle is not left of right paddle")
	}
	if m.Ball.X != testW/2 || m.Ball.Y != testH/2 {
		t.Fatalf("ball not centred: (%v, %v)", m.Ball.X, m.Ball.Y)
	}
	if m.Ball.VX <= 0 {
		t.Fatalf("opening serve should head toward player 2, vx=%v", m.Ball.VX)
	}
	if m.Over() {
		t.Fatalf("new match reports over")
	}
}

func TestStep_PaddleStopsAtTop(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	for range 40 {
		m.Step(Controls{Left: -1, Right: 1})
	}
	left, right := m.Paddles[SideLeft], m.Paddles[SideRight]
	if !almostEqual(left.Top(), 0) {
		t.Fatalf("left paddle top = %v, want 0", left.Top())
	}
	if !almostEqual(right.Bottom(), testH) {
		t.Fatalf("right paddle bottom = %v, want %v", right.Bottom(), testH)
	}

	// Holding further does not push it out of bounds.
	m.Step(Controls{Left: -1})
	if got := m.Paddles[SideLeft].Top(); got < 0 {
		t.Fatalf("left paddle top = %v, escaped the canvas", got)
	}
}

func TestStep_ControlsAreClampedToOneStep(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	before := m.Paddles[SideLeft].CenterY
	m.Step(Controls{Left: 5})
	if got := m.Paddles[SideLeft].CenterY - before; !almostEqual(got, m.Paddles[SideLeft].Speed) {
		t.Fatalf("paddle moved %v, want one speed step %v", got, m.Paddles[SideLeft].Speed)
	}
}

func TestStep_WallBounce(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	r := m.Ball.Radius()
	m.Ball.Y = r + 1
	m.Ball.VY = -5
	m.Ball.VX = 0

	events := m.Step(Controls{})
	if m.Ball.VY != 5 {
		t.Fatalf("vy = %v, want 5", m.Ball.VY)
	}
	if m.Ball.Y < r {
		t.Fatalf("ball y = %v left the canvas", m.Ball.Y)
	}
	if !hasEvent(events, EventBounce, SideLeft) {
		t.Fatalf("expected bounce event, got %+v", events)
	}
}

func TestStep_LeftPaddleHit(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	p := m.Paddles[SideLeft]
	m.Ball.X = p.Face() + m.Ball.Radius() + 2
	m.Ball.Y = p.CenterY
	m.Ball.VX = -5
	m.Ball.VY = 0

	events := m.Step(Controls{})
	if m.Ball.VX <= 0 {
		t.Fatalf("ball should leave the left paddle to the right, vx=%v", m.Ball.VX)
	}
	if !almostEqual(m.Ball.VX, 5+testW*0.0005) {
		t.Fatalf("vx = %v, want %v", m.Ball.VX, 5+testW*0.0005)
	}
	if !almostEqual(m.Ball.X, p.Face()+m.Ball.Radius()) {
		t.Fatalf("ball not snapped to the face: x=%v", m.Ball.X)
	}
	if !almostEqual(m.Ball.VY, 0) {
		t.Fatalf("centre hit should rebound flat, vy=%v", m.Ball.VY)
	}
	if !hasEvent(events, EventBounce, SideLeft) || !hasEvent(events, EventPaddleHit, SideLeft) {
		t.Fatalf("expected bounce and paddle-hit events, got %+v", events)
	}
}

func TestStep_FastBallDoesNotTunnel(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	p := m.Paddles[SideLeft]
	m.Ball.X = p.Face() + m.Ball.Radius() + 5
	m.Ball.Y = p.CenterY
	m.Ball.VX = -(p.Face() + m.Ball.Radius())
	m.Ball.VY = 0

	m.Step(Controls{})
	if m.Ball.VX <= 0 {
		t.Fatalf("fast ball passed through the paddle, vx=%v x=%v", m.Ball.VX, m.Ball.X)
	}
}

func TestStep_BallBehindPaddleDoesNotBounce(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	p := m.Paddles[SideLeft]
	m.Ball.X = p.X - 2
	m.Ball.Y = p.CenterY
	m.Ball.VX = -1
	m.Ball.VY = 0

	m.Step(Controls{})
	if m.Ball.VX != -1 {
		t.Fatalf("ball behind the paddle was reflected, vx=%v", m.Ball.VX)
	}
}

func TestStep_HorizontalSpeedNeverDecreasesOnHits(t *testing.T) {
	t.Parallel()

	for _, maxFactor := range []float64{0, 1, 1.2} {
		s := DefaultSettings()
		s.MaxSpeedFactor = maxFactor
		m := newTestMatch(t, false, s)

		prev := math.Abs(m.Ball.VX)
		for range 2000 {
			// Park both paddles on the ball so every approach is returned.
			m.Paddles[SideLeft].CenterY = m.Ball.Y
			m.Paddles[SideRight].CenterY = m.Ball.Y
			m.Paddles[SideLeft].clamp(m.Height)
			m.Paddles[SideRight].clamp(m.Height)

			events := m.Step(Controls{})
			if hasEvent(events, EventScore, SideLeft) || hasEvent(events, EventScore, SideRight) {
				t.Fatalf("max=%v: a tracked ball should never score", maxFactor)
			}
			if cur := math.Abs(m.Ball.VX); cur < prev-1e-12 {
				t.Fatalf("max=%v: |vx| decreased from %v to %v", maxFactor, prev, cur)
			} else {
				prev = cur
			}
		}
	}
}

func TestStep_LeftExitScoresForRight(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	m.Ball.X = 1
	m.Ball.Y = 10
	m.Ball.VX = -10
	m.Ball.VY = 0

	events := m.Step(Controls{})
	if !hasEvent(events, EventScore, SideRight) {
		t.Fatalf("expected right to score, got %+v", events)
	}
	if m.Paddles[SideRight].Score != 1 || m.Paddles[SideLeft].Score != 0 {
		t.Fatalf("scores = %d-%d, want 0-1", m.Paddles[SideLeft].Score, m.Paddles[SideRight].Score)
	}
	if m.Ball.X != testW/2 || m.Ball.Y != testH/2 {
		t.Fatalf("ball not re-served from centre: (%v, %v)", m.Ball.X, m.Ball.Y)
	}
	if m.Ball.VX >= 0 {
		t.Fatalf("serve should head toward the player who conceded, vx=%v", m.Ball.VX)
	}
	if m.Over() {
		t.Fatalf("match should continue after one point")
	}
}

func TestStep_FifthPointWins(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	m.Paddles[SideLeft].Score = WinningScore - 1
	m.Ball.X = testW - 1
	m.Ball.Y = 10
	m.Ball.VX = 10
	m.Ball.VY = 0

	events := m.Step(Controls{})
	if !hasEvent(events, EventWin, SideLeft) {
		t.Fatalf("expected left to win, got %+v", events)
	}
	if !m.Over() || m.Winner() != SideLeft {
		t.Fatalf("over=%v winner=%v", m.Over(), m.Winner())
	}
	if m.Paddles[SideLeft].Score != WinningScore {
		t.Fatalf("score = %d", m.Paddles[SideLeft].Score)
	}
	if got := m.Step(Controls{Left: 1}); got != nil {
		t.Fatalf("finished match still steps: %+v", got)
	}
}

func TestScore_PaddlesShrinkTowardFloor(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	start := m.Paddles[SideLeft].Height
	floor := m.FloorHeight()

	scorers := []Side{SideLeft, SideRight, SideLeft, SideRight, SideLeft, SideRight, SideLeft, SideRight}
	prev := start
	for i, s := range scorers {
		m.score(s, nil)
		want := math.Max(floor, prev-(prev-floor)/ShrinkSteps)
		for _, p := range m.Paddles {
			if math.Abs(p.Height-want) > 1e-9 {
				t.Fatalf("after %d points %s height = %v, want %v", i+1, p.Side, p.Height, want)
			}
			if p.Height > prev {
				t.Fatalf("after %d points %s height grew from %v to %v", i+1, p.Side, prev, p.Height)
			}
			if p.Height < floor {
				t.Fatalf("height %v under floor %v", p.Height, floor)
			}
		}
		prev = m.Paddles[SideLeft].Height

		// Each point removes a fifth of what is left above the floor.
		if i+1 == ShrinkSteps {
			closed := floor + (start-floor)*math.Pow(0.8, ShrinkSteps)
			if math.Abs(prev-closed) > 1e-9 {
				t.Fatalf("after %d points height = %v, want %v", ShrinkSteps, prev, closed)
			}
		}
	}
}

func TestStep_ServeFlightScoresForRight(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	m.ResetBall(SideLeft)
	m.Ball.VY = -3

	var (
		events  []Event
		bounced bool
		ticks   int
	)
	for ; ticks < 1000; ticks++ {
		// Hold both paddles at the bottom, away from the ball's path.
		events = m.Step(Controls{Left: 1, Right: 1})
		if hasEvent(events, EventPaddleHit, SideLeft) || hasEvent(events, EventPaddleHit, SideRight) {
			t.Fatalf("tick %d: ball touched a paddle", ticks)
		}
		if hasEvent(events, EventBounce, SideLeft) {
			bounced = true
		}
		if hasEvent(events, EventScore, SideRight) {
			break
		}
	}
	if ticks == 1000 {
		t.Fatalf("ball never left the court")
	}
	if !bounced {
		t.Fatalf("expected a wall bounce on the way out")
	}
	if m.Paddles[SideRight].Score != 1 || m.Paddles[SideLeft].Score != 0 {
		t.Fatalf("scores = %d-%d, want 0-1", m.Paddles[SideLeft].Score, m.Paddles[SideRight].Score)
	}
	if m.Ball.X != testW/2 || m.Ball.Y != testH/2 {
		t.Fatalf("ball not re-served from centre: (%v, %v)", m.Ball.X, m.Ball.Y)
	}
	if m.Ball.VX >= 0 {
		t.Fatalf("serve should head toward player 1, who conceded, vx=%v", m.Ball.VX)
	}
}

func TestStep_VeryFastBallIsReturnedNotScored(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	p := m.Paddles[SideLeft]
	m.Ball.X = p.Face() + m.Ball.Radius() + 5
	m.Ball.Y = p.CenterY
	m.Ball.VX = -150
	m.Ball.VY = 0

	events := m.Step(Controls{})
	if hasEvent(events, EventScore, SideRight) || m.Paddles[SideRight].Score != 0 {
		t.Fatalf("ball crossing the face and the edge in one tick was scored: %+v", events)
	}
	if m.Ball.VX <= 0 {
		t.Fatalf("ball should be returned, vx=%v", m.Ball.VX)
	}
	if !almostEqual(m.Ball.X, p.Face()+m.Ball.Radius()) {
		t.Fatalf("ball not snapped to the face: x=%v", m.Ball.X)
	}
}

func TestScore_HalvesVelocityBeforeServe(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	m.Paddles[SideRight].Score = WinningScore - 1
	m.Ball.VX = -8
	m.Ball.VY = 4

	m.score(SideRight, nil)
	if m.Ball.VX != -4 || m.Ball.VY != 2 {
		t.Fatalf("winning point velocity = (%v, %v), want (-4, 2)", m.Ball.VX, m.Ball.VY)
	}
}

func TestResetBall(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	spread := testH * serveSpreadFrac
	for range 50 {
		m.ResetBall(SideLeft)
		if m.Ball.VX >= 0 {
			t.Fatalf("serve toward left: vx=%v", m.Ball.VX)
		}
		if math.Abs(m.Ball.VY) > spread {
			t.Fatalf("vy %v outside +/-%v", m.Ball.VY, spread)
		}
		m.ResetBall(SideRight)
		if m.Ball.VX <= 0 {
			t.Fatalf("serve toward right: vx=%v", m.Ball.VX)
		}
	}
}

func TestStep_AIRespectsDeadzone(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, true, DefaultSettings())
	p := &m.Paddles[SideRight]
	m.Ball.VX, m.Ball.VY = 0, 0

	m.Ball.Y = p.CenterY + 20
	before := p.CenterY
	m.Step(Controls{Right: -1})
	if p.CenterY != before {
		t.Fatalf("AI moved inside the deadzone: %v -> %v", before, p.CenterY)
	}

	m.Ball.Y = p.CenterY + 200
	before = p.CenterY
	m.Step(Controls{})
	if got, want := p.CenterY-before, p.Speed*0.55; !almostEqual(got, want) {
		t.Fatalf("AI moved %v, want %v", got, want)
	}
}

func TestStep_SpinSetting(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.Spin = true
	m := newTestMatch(t, false, s)
	p := m.Paddles[SideLeft]
	m.Ball.X = p.Face() + m.Ball.Radius() + 2
	m.Ball.Y = p.Top() + 1
	m.Ball.VX = -5
	m.Ball.VY = 0

	m.Step(Controls{})
	want := BounceAngle(m.Ball.Y, p.CenterY, p.Height, testH)
	if !almostEqual(m.Ball.VY, want.VY+want.Spin) {
		t.Fatalf("vy = %v, want %v", m.Ball.VY, want.VY+want.Spin)
	}
}

func TestResize_KeepsFractions(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	m.score(SideLeft, nil)
	m.Ball.X, m.Ball.Y = 300, 200
	heightFrac := m.Paddles[SideLeft].Height / m.Height

	m.Resize(testW/2, testH/2)
	if !almostEqual(m.Paddles[SideLeft].Height/m.Height, heightFrac) {
		t.Fatalf("paddle height fraction changed: %v -> %v", heightFrac, m.Paddles[SideLeft].Height/m.Height)
	}
	if !almostEqual(m.Ball.X, 150) || !almostEqual(m.Ball.Y, 100) {
		t.Fatalf("ball = (%v, %v), want (150, 100)", m.Ball.X, m.Ball.Y)
	}
	if !almostEqual(m.FloorHeight(), testH/2*paddleFloorFrac) {
		t.Fatalf("floor = %v", m.FloorHeight())
	}
}

func TestStep_BallTakesColourOfItsHalf(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, false, DefaultSettings())
	m.Ball.X = testW / 4
	m.Ball.VX, m.Ball.VY = 1, 0
	m.Step(Controls{})
	if m.Ball.Color != m.Paddles[SideLeft].Color {
		t.Fatalf("ball colour %v, want left %v", m.Ball.Color, m.Paddles[SideLeft].Color)
	}
	m.Ball.X = testW * 3 / 4
	m.Step(Controls{})
	if m.Ball.Color != m.Paddles[SideRight].Color {
		t.Fatalf("ball colour %v, want right %v", m.Ball.Color, m.Paddles[SideRight].Color)
	}
}
