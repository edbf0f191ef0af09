package window

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/fchimpan/magic-pong/internal/game"
)

const sampleRate = 44100

// sound plays short synthesized cues. Playback is fire-and-forget; a cue
// that fails to rewind is skipped.
type sound struct {
	logger  *log.Logger
	players map[game.Cue]*audio.Player
}

func newSound(logger *log.Logger) *sound {
	ctx := audio.NewContext(sampleRate)
	return &sound{
		logger: logger,
		players: map[game.Cue]*audio.Player{
			game.CueBounce: ctx.NewPlayerFromBytes(beep(660, 0.06)),
			game.CueScore:  ctx.NewPlayerFromBytes(beep(330, 0.3)),
		},
	}
}

func (s *sound) play(c game.Cue) {
	if s == nil {
		return
	}
	p, ok := s.players[c]
	if !ok {
		return
	}
	if err := p.SetPosition(0); err != nil {
		s.logger.Debug("cue skipped", "cue", c, "err", err)
		return
	}
	p.Play()
}

// beep renders a decaying sine as 16-bit little-endian stereo PCM.
func beep(freq, durSec float64) []byte {
	n := int(sampleRate * durSec)
	buf := make([]byte, n*4)
	for i := range n {
		t := float64(i) / sampleRate
		v := int16(math.Sin(2*math.Pi*freq*t) * 4000 * math.Exp(-6*t))
		for ch := range 2 {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}
