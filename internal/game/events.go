package game

type EventKind int

const (
	EventBounce EventKind = iota
	EventScore
	EventWin
	EventPaddleHit
)

func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventScore:
		return "score"
	case EventWin:
		return "win"
	case EventPaddleHit:
		return "paddle-hit"
	default:
		return "unknown"
	}
}

// Event is a notification for the audio, render and particle collaborators.
// Side is the scoring side for Score/Win and the paddle for PaddleHit.
type Event struct {
	Kind  EventKind
	Side  Side
	X, Y  float64
	Color Color
}

// Cue is a fire-and-forget sound request.
type Cue int

const (
	CueBounce Cue = iota
	CueScore
)

// Cue reports the sound an event should trigger, if any.
func (e Event) Cue() (Cue, bool) {
	switch e.Kind {
	case EventBounce:
		return CueBounce, true
	case EventScore:
		return CueScore, true
	default:
		return 0, false
	}
}
