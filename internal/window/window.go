package window

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/fchimpan/magic-pong/internal/config"
	"github.com/fchimpan/magic-pong/internal/game"
	"github.com/fchimpan/magic-pong/internal/input"
)

var (
	pageColor  = color.RGBA{0x0b, 0x1a, 0x14, 0xff}
	courtColor = game.MustColor("#143025")
	netColor   = color.RGBA{0xff, 0xff, 0xff, 0x64}
	glowColor  = color.RGBA{0xff, 0xff, 0xff, 0x32}

	modeButtonColors = [2]game.Color{game.MustColor("#4169E1"), game.MustColor("#7731A0")}
)

var keyMap = []struct {
	ebiten ebiten.Key
	key    input.Key
}{
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyZ, input.KeyZ},
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyEnter, input.KeyEnter},
	{ebiten.KeyNumpadEnter, input.KeyEnter},
	{ebiten.KeyDigit1, input.Key1},
	{ebiten.KeyDigit2, input.Key2},
	{ebiten.KeyDigit3, input.Key3},
	{ebiten.KeyDigit4, input.Key4},
	{ebiten.KeyDigit5, input.Key5},
	{ebiten.KeyDigit6, input.Key6},
}

// Game adapts a game.Context to ebiten's Update/Draw/Layout loop.
type Game struct {
	ctx    *game.Context
	mapper *input.Mapper
	logger *log.Logger
	sound  *sound
	now    func() time.Time

	speed float64
	acc   float64

	viewW, viewH int
	offX, offY   float64

	touchID  ebiten.TouchID
	touching bool

	rng       *rand.Rand
	sparks    []spark
	fireworks []spark
}

type spark struct {
	X, Y   float64
	VX, VY float64
	Alpha  float64
	Color  game.Color
}

func New(cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1
	}
	return &Game{
		ctx: game.NewContext(cfg.Settings(), 0, 0,
			game.WithLogger(logger), game.WithSeed(seed)),
		mapper: input.NewMapper(),
		logger: logger,
		sound:  newSound(logger),
		now:    time.Now,
		speed:  speed,
		rng:    rand.New(rand.NewPCG(seed, seed^0x517cc1b727220a95)),
	}
}

// Run opens a resizable window and blocks until it is closed.
func Run(cfg config.Config, logger *log.Logger) error {
	ebiten.SetWindowSize(960, 640)
	ebiten.SetWindowTitle("Magic Pong")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(New(cfg, logger)); err != nil {
		return fmt.Errorf("window closed with error: %w", err)
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewW || outsideHeight != g.viewH {
		g.viewW, g.viewH = outsideWidth, outsideHeight
		g.ctx.Resize(float64(outsideWidth), float64(outsideHeight))
		scr := g.ctx.Screen()
		g.offX = math.Max(0, (float64(outsideWidth)-scr.W)/2)
		g.offY = math.Max(0, (float64(outsideHeight)-scr.H)/2)
		g.sparks = nil
		g.fireworks = nil
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Update() error {
	now := g.now()
	g.readPointer(now)
	g.readKeys(now)

	var held input.Held
	for _, km := range keyMap {
		if ebiten.IsKeyPressed(km.ebiten) {
			held = held.With(km.key)
		}
	}

	// ebiten calls Update at a fixed 60 TPS; speed scales steps per call.
	g.acc += g.speed
	steps := 0
	for g.acc >= 1 {
		g.acc--
		steps++
		g.handleEvents(g.ctx.Tick(now, g.mapper.Controls(g.ctx, held)))
	}
	if steps == 0 && g.ctx.Phase() != game.PhasePlaying {
		g.ctx.Tick(now, game.Controls{})
	}

	g.updateSparks()
	return nil
}

func (g *Game) toCanvas(x, y int) (float64, float64) {
	return float64(x) - g.offX, float64(y) - g.offY
}

func (g *Game) readPointer(now time.Time) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := g.toCanvas(ebiten.CursorPosition())
		g.pointerDown(now, x, y)
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := g.toCanvas(ebiten.CursorPosition())
		g.mapper.PointerMove(g.ctx, x, y)
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.mapper.PointerUp()
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		g.touchID, g.touching = id, true
		x, y := g.toCanvas(ebiten.TouchPosition(id))
		g.pointerDown(now, x, y)
	}
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			g.mapper.PointerUp()
		} else {
			x, y := g.toCanvas(ebiten.TouchPosition(g.touchID))
			g.mapper.PointerMove(g.ctx, x, y)
		}
	}
}

func (g *Game) pointerDown(now time.Time, x, y float64) {
	if in, ok := g.mapper.PointerDown(g.ctx, x, y); ok {
		g.ctx.Handle(now, in)
	}
}

func (g *Game) readKeys(now time.Time) {
	for _, km := range keyMap {
		if !inpututil.IsKeyJustPressed(km.ebiten) {
			continue
		}
		if in, ok := g.mapper.KeyPress(g.ctx, km.key); ok {
			g.ctx.Handle(now, in)
		}
	}
}

func (g *Game) handleEvents(events []game.Event) {
	for _, ev := range events {
		if cue, ok := ev.Cue(); ok {
			g.sound.play(cue)
		}
		switch ev.Kind {
		case game.EventPaddleHit:
			g.burst(&g.sparks, ev.X, ev.Y, ev.Color, 12, 3)
		case game.EventWin:
			scr := g.ctx.Screen()
			for range 5 {
				g.burst(&g.fireworks, g.rng.Float64()*scr.W, g.rng.Float64()*scr.H/2, ev.Color, 50, 2)
			}
		}
	}
}

func (g *Game) burst(dst *[]spark, x, y float64, c game.Color, n int, speed float64) {
	for range n {
		*dst = append(*dst, spark{
			X:     x,
			Y:     y,
			VX:    (g.rng.Float64()*2 - 1) * speed,
			VY:    (g.rng.Float64()*2 - 1) * speed,
			Alpha: 255,
			Color: c,
		})
	}
}

func (g *Game) updateSparks() {
	step := func(ps []spark, fade float64) []spark {
		out := ps[:0]
		for _, p := range ps {
			p.X += p.VX
			p.Y += p.VY
			p.Alpha -= fade
			if p.Alpha > 0 {
				out = append(out, p)
			}
		}
		return out
	}
	g.sparks = step(g.sparks, 15)
	g.fireworks = step(g.fireworks, 5)
	if g.ctx.Phase() != game.PhaseGameOver {
		g.fireworks = g.fireworks[:0]
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(pageColor)
	now := g.now()
	s := g.ctx.Snapshot(now)
	scr := g.ctx.Screen()
	c := canvas{dst: screen, ox: g.offX, oy: g.offY}

	c.rect(0, 0, s.CanvasW, s.CanvasH, courtColor)

	switch s.Phase {
	case game.PhaseModeSelect:
		c.print(s.CanvasW/2, scr.ModeHeadingY(), "Select Game Mode")
		labels := [2]string{"1 Player", "2 Player"}
		for i, b := range scr.ModeButtons() {
			c.rect(b.X, b.Y, b.W, b.H, modeButtonColors[i])
			cx, cy := b.Center()
			c.print(cx, cy, labels[i])
		}
	case game.PhaseCharacterSelect:
		title := "Player 1: Tap your favorite Descendant!"
		if s.Selection.Player1 != nil {
			title = "Player 2: Tap your favorite Descendant!"
		}
		c.print(s.CanvasW/2, scr.TitleY(), title)
		for i, t := range scr.Tiles(len(s.Roster)) {
			ch := s.Roster[i]
			c.rect(t.Icon.X, t.Icon.Y, t.Icon.W, t.Icon.H, ch.Color)
			cx, cy := t.Icon.Center()
			c.emblem(ch, cx, cy, t.Icon.W*0.6)
			c.print(t.LabelX, t.LabelY, ch.ID)
		}
	case game.PhaseSelectionTransition:
		if p1 := s.Selection.Player1; p1 != nil {
			c.tile(*p1, s.CanvasW/2, s.CanvasH*0.4, 100)
			c.print(s.CanvasW/2, s.CanvasH*0.2, "Player 1 is "+p1.ID+"!")
			c.print(s.CanvasW/2, s.CanvasH*0.7, fmt.Sprintf("Player 2, get ready... %d", ceilSeconds(s.Remaining)))
		}
	case game.PhaseCountdown:
		if s.InMatch {
			c.tile(s.Players[0], s.CanvasW*0.25, s.CanvasH*0.4, 100)
			c.tile(s.Players[1], s.CanvasW*0.75, s.CanvasH*0.4, 100)
			c.print(s.CanvasW*0.25, s.CanvasH*0.6, s.Players[0].ID)
			c.print(s.CanvasW*0.75, s.CanvasH*0.6, s.Players[1].ID)
			c.print(s.CanvasW/2, s.CanvasH*0.4, "VS")
			c.print(s.CanvasW/2, s.CanvasH*0.8, fmt.Sprintf("%d", ceilSeconds(s.Remaining)))
		}
	case game.PhasePlaying:
		g.drawCourt(c, s)
	case game.PhaseGameOver:
		c.print(s.CanvasW/2, s.CanvasH/2, s.Winner+" wins!")
		c.print(s.CanvasW/2, s.CanvasH/2+60, "Press Z to restart")
		c.sparks(g.fireworks)
	}
}

func (g *Game) drawCourt(c canvas, s game.Snapshot) {
	// Star dust.
	for range 20 {
		x := g.rng.Float64() * s.CanvasW
		y := g.rng.Float64() * s.CanvasH
		vector.DrawFilledCircle(c.dst, float32(c.ox+x), float32(c.oy+y), float32(1+g.rng.Float64()), glowColor, false)
	}
	vector.StrokeLine(c.dst, float32(c.ox+s.CanvasW/2), float32(c.oy), float32(c.ox+s.CanvasW/2), float32(c.oy+s.CanvasH), 2, netColor, false)

	for i := range s.Paddles {
		p := s.Paddles[i]
		c.rect(p.X, p.Top(), p.Width, p.Height, p.Color)
	}

	b := s.Ball
	vector.DrawFilledCircle(c.dst, float32(c.ox+b.X), float32(c.oy+b.Y), float32(b.Radius()+5), glowColor, true)
	vector.DrawFilledCircle(c.dst, float32(c.ox+b.X), float32(c.oy+b.Y), float32(b.Radius()), b.Color, true)
	c.sparks(g.sparks)

	c.print(s.CanvasW*0.15, s.CanvasH*0.08, fmt.Sprintf("%s: %d", s.Players[0].ID, s.Paddles[0].Score))
	c.print(s.CanvasW*0.6, s.CanvasH*0.08, fmt.Sprintf("%s: %d", s.Players[1].ID, s.Paddles[1].Score))
	ebitenutil.DebugPrintAt(c.dst, s.Players[0].ID+"\nW key: Move Up\nS key: Move Down", int(c.ox)+16, int(c.oy+s.CanvasH)-60)
	if !s.OnePlayer {
		ebitenutil.DebugPrintAt(c.dst, s.Players[1].ID+"\nUP: Move Up\nDOWN: Move Down", int(c.ox+s.CanvasW)-110, int(c.oy+s.CanvasH)-60)
	}
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
