package game

import "time"

// WinningScore is the number of points that ends a match.
const WinningScore = 5

// Settings are the tunables of a session. normalize replaces negative values
// and a non-positive AISpeedFactor with defaults; zero durations and a zero
// deadzone are kept as given.
type Settings struct {
	// SelectionTransition shows player 1's pick before player 2 chooses.
	SelectionTransition bool
	TransitionDuration  time.Duration
	CountdownDuration   time.Duration

	// AIDeadzone is the distance in canvas pixels the computer paddle
	// tolerates between its centre and the ball before it moves.
	AIDeadzone    float64
	AISpeedFactor float64

	// MaxSpeedFactor caps |vx| at this multiple of the serve speed.
	// 0 leaves rallies unbounded.
	MaxSpeedFactor float64

	// Spin adds the paddle spin on top of the bounce angle.
	Spin bool
}

func DefaultSettings() Settings {
	return Settings{
		SelectionTransition: true,
		TransitionDuration:  3 * time.Second,
		CountdownDuration:   3 * time.Second,
		AIDeadzone:          32,
		AISpeedFactor:       0.55,
	}
}

func (s Settings) normalize() Settings {
	d := DefaultSettings()
	if s.TransitionDuration < 0 {
		s.TransitionDuration = d.TransitionDuration
	}
	if s.CountdownDuration < 0 {
		s.CountdownDuration = d.CountdownDuration
	}
	if s.AIDeadzone < 0 {
		s.AIDeadzone = d.AIDeadzone
	}
	if s.AISpeedFactor <= 0 {
		s.AISpeedFactor = d.AISpeedFactor
	}
	if s.MaxSpeedFactor < 0 {
		s.MaxSpeedFactor = 0
	}
	return s
}
