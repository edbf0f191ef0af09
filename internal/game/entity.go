package game

// Side identifies a paddle. Player 1 is always on the left.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

func (s Side) Other() Side {
	if s == SideRight {
		return SideLeft
	}
	return SideRight
}

// Geometry fractions. Everything is relative to the canvas so a resize only
// needs to rescale.
const (
	ballSizeFrac     = 0.07   // of min(W, H)
	serveSpeedXFrac  = 0.004  // of W
	openingSpeedFrac = 0.003  // of H
	serveSpreadFrac  = 0.007  // of H, vertical serve range is +/- this
	paddleWidthFrac  = 0.035  // of W
	paddleHeightFrac = 0.27   // of H
	paddleFloorFrac  = 0.135  // of H
	paddleSpeedFrac  = 0.012  // of H
	paddleInsetFrac  = 0.0125 // of W, gap between the wall and the paddle
	volleyBoostFrac  = 0.0005 // of W, added to |vx| on every paddle hit
	bounceFrac       = 0.01   // of H
	spinFrac         = 0.002  // of H
)

// ShrinkSteps divides the remaining distance to the floor height on each point.
const ShrinkSteps = 5

type Paddle struct {
	Side    Side
	X       float64 // left edge
	CenterY float64
	Width   float64
	Height  float64
	Speed   float64
	Color   Color
	Score   int
}

func newPaddle(side Side, c Color, w, h float64) Paddle {
	pw := w * paddleWidthFrac
	x := pw + w*paddleInsetFrac
	if side == SideRight {
		x = w - 2*pw - w*paddleInsetFrac
	}
	return Paddle{
		Side:    side,
		X:       x,
		CenterY: h / 2,
		Width:   pw,
		Height:  h * paddleHeightFrac,
		Speed:   h * paddleSpeedFrac,
		Color:   c,
	}
}

func (p *Paddle) Top() float64    { return p.CenterY - p.Height/2 }
func (p *Paddle) Bottom() float64 { return p.CenterY + p.Height/2 }

// Face is the x coordinate the ball rebounds from.
func (p *Paddle) Face() float64 {
	if p.Side == SideLeft {
		return p.X + p.Width
	}
	return p.X
}

// move shifts the paddle by dy and keeps it fully inside [0, h].
func (p *Paddle) move(dy, h float64) {
	p.CenterY += dy
	p.clamp(h)
}

func (p *Paddle) clamp(h float64) {
	half := p.Height / 2
	if half*2 >= h {
		p.CenterY = h / 2
		return
	}
	if p.CenterY < half {
		p.CenterY = half
	}
	if p.CenterY > h-half {
		p.CenterY = h - half
	}
}

type Ball struct {
	X, Y   float64
	Size   float64 // diameter
	VX, VY float64
	Color  Color
}

func (b *Ball) Radius() float64 { return b.Size / 2 }

func newBall(w, h float64) Ball {
	return Ball{
		X:     w / 2,
		Y:     h / 2,
		Size:  min(w, h) * ballSizeFrac,
		VX:    w * serveSpeedXFrac,
		VY:    h * openingSpeedFrac,
		Color: MustColor("#B026FF"),
	}
}
