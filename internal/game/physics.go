package game

import "math"

// Bounce is the vertical response to a paddle hit.
type Bounce struct {
	VY   float64 // new vertical speed
	Spin float64 // extra vertical speed carried by the ball when spin is enabled
}

// BounceAngle maps where the ball met the paddle to a vertical speed. A hit on
// the paddle centre returns 0; hits toward either end approach +/- 1% of the
// canvas height per tick.
func BounceAngle(ballY, paddleCenterY, paddleHeight, canvasH float64) Bounce {
	if paddleHeight <= 0 {
		return Bounce{}
	}
	n := (paddleCenterY - ballY) / (paddleHeight / 2)
	n = math.Max(-1, math.Min(1, n))
	return Bounce{
		VY:   n * canvasH * bounceFrac,
		Spin: n * canvasH * spinFrac,
	}
}

// VolleySpeed returns the horizontal speed after a paddle hit: sign picks the
// direction and the magnitude grows by a fixed fraction of the canvas width.
// maxSpeed <= 0 means unbounded.
func VolleySpeed(vx float64, sign int, canvasW, maxSpeed float64) float64 {
	s := math.Abs(vx) + canvasW*volleyBoostFrac
	if maxSpeed > 0 && s > maxSpeed {
		s = math.Max(maxSpeed, math.Abs(vx))
	}
	if sign < 0 {
		return -s
	}
	return s
}
