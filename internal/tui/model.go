package tui

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fchimpan/magic-pong/internal/config"
	"github.com/fchimpan/magic-pong/internal/game"
	"github.com/fchimpan/magic-pong/internal/input"
)

// A terminal cell stands for this many canvas pixels.
const (
	cellPxW = 8.0
	cellPxH = 16.0
)

// Terminals report presses but no releases, so a movement key counts as held
// for a short window after its last press or auto-repeat.
const holdWindow = 180 * time.Millisecond

type Model struct {
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time

	ctx    *game.Context
	mapper *input.Mapper
	held   map[input.Key]time.Time

	speed    float64
	lastTick time.Time
	acc      float64

	rng      *rand.Rand
	confetti []particle
	sparks   []particle
	partyAcc float64

	ready bool
	w     int
	h     int

	// Field placement in cells.
	fieldX, fieldY int
	fieldW, fieldH int
	// Canvas placement inside the field, in cells.
	canvasX, canvasY int
	canvasW, canvasH int

	viewBuf bytes.Buffer
	canvas  canvasBuf
}

// baseSpeedMultiplier is what "1.0x" means: one simulation step per 60 Hz frame.
const baseSpeedMultiplier = 1.0

func NewModel(cfg config.Config, logger *log.Logger) *Model {
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		mapper: input.NewMapper(),
		held:   make(map[input.Key]time.Time),
		speed:  speed,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ctx: game.NewContext(cfg.Settings(), 0, 0,
			game.WithLogger(logger), game.WithSeed(seed)),
	}
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second / 60
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(time.Second / 60)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.relayout()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if m.lastTick.IsZero() {
			m.lastTick = now
			return m, tickCmd(m.frameDuration())
		}

		// Clamp real elapsed time to avoid a "warp" after a stall.
		dt := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		if dt < 0 {
			dt = 0
		}
		if dt > 0.05 {
			dt = 0.05
		}
		m.updateParty(dt)

		// The simulation moves a fixed amount per step; speed only changes
		// how many steps a second of wall time buys.
		m.acc += dt * (m.speed * baseSpeedMultiplier)
		const fixed = 1.0 / 60.0
		const maxStepsPerTick = 10

		if m.ready {
			steps := 0
			for m.acc >= fixed && steps < maxStepsPerTick {
				ctl := m.mapper.Controls(m.ctx, m.heldKeys(now))
				m.handleEvents(m.ctx.Tick(now, ctl))
				m.acc -= fixed
				steps++
			}
			if steps >= maxStepsPerTick {
				m.acc = math.Mod(m.acc, fixed)
			}
			// Timed phases must expire even when no step ran this frame.
			if steps == 0 && m.ctx.Phase() != game.PhasePlaying {
				m.ctx.Tick(now, game.Controls{})
			}
		}
		return m, tickCmd(m.frameDuration())
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "+", "=":
		m.speed = math.Min(m.speed+0.1, 5)
		return m, nil
	case "-", "_":
		m.speed = math.Max(m.speed-0.1, 0.25)
		return m, nil
	}
	k := keyOf(msg)
	if k == input.KeyUnknown {
		return m, nil
	}
	now := m.now()
	switch k {
	case input.KeyW, input.KeyS, input.KeyUp, input.KeyDown:
		m.held[k] = now
	}
	if in, ok := m.mapper.KeyPress(m.ctx, k); ok {
		m.ctx.Handle(now, in)
	}
	return m, nil
}

func keyOf(msg tea.KeyMsg) input.Key {
	switch msg.String() {
	case "w", "W":
		return input.KeyW
	case "s", "S":
		return input.KeyS
	case "up":
		return input.KeyUp
	case "down":
		return input.KeyDown
	case "z", "Z":
		return input.KeyZ
	case " ", "space":
		return input.KeySpace
	case "enter":
		return input.KeyEnter
	case "1":
		return input.Key1
	case "2":
		return input.Key2
	case "3":
		return input.Key3
	case "4":
		return input.Key4
	case "5":
		return input.Key5
	case "6":
		return input.Key6
	}
	return input.KeyUnknown
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.ready {
		return
	}
	x, y := m.cellToCanvas(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if in, ok := m.mapper.PointerDown(m.ctx, x, y); ok {
			m.ctx.Handle(m.now(), in)
		}
	case tea.MouseActionMotion:
		m.mapper.PointerMove(m.ctx, x, y)
	case tea.MouseActionRelease:
		m.mapper.PointerUp()
	}
}

func (m *Model) heldKeys(now time.Time) input.Held {
	var h input.Held
	for k, at := range m.held {
		if now.Sub(at) <= holdWindow {
			h = h.With(k)
		} else {
			delete(m.held, k)
		}
	}
	return h
}

func (m *Model) handleEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventPaddleHit:
			m.spawnSparks(ev)
		case game.EventScore:
			m.logger.Debug("point", "side", ev.Side)
		}
	}
}

func (m *Model) frameDuration() time.Duration {
	if !m.ready {
		return time.Second / 60
	}
	switch m.ctx.Phase() {
	case game.PhaseModeSelect, game.PhaseCharacterSelect:
		return time.Second / 30
	}
	return time.Second / 60
}

// relayout maps the terminal onto a pixel viewport and lets the game fit its
// canvas inside it.
func (m *Model) relayout() {
	m.fieldX = 1
	m.fieldY = 2
	m.fieldW = max(m.w-2, 10)
	m.fieldH = max(m.h-3, 6)

	m.ctx.Resize(float64(m.fieldW)*cellPxW, float64(m.fieldH)*cellPxH)
	scr := m.ctx.Screen()
	m.canvasW = min(int(math.Ceil(scr.W/cellPxW)), m.fieldW)
	m.canvasH = min(int(math.Ceil(scr.H/cellPxH)), m.fieldH)
	m.canvasX = m.fieldX + (m.fieldW-m.canvasW)/2
	m.canvasY = m.fieldY + (m.fieldH-m.canvasH)/2

	m.canvas.Reset()
	m.confetti = nil
	m.sparks = nil
	m.lastTick = time.Time{}
	m.acc = 0
	m.ready = true
}

// cellToCanvas converts a terminal cell to the canvas pixel at its centre.
func (m *Model) cellToCanvas(col, row int) (float64, float64) {
	return (float64(col-m.canvasX) + 0.5) * cellPxW, (float64(row-m.canvasY) + 0.5) * cellPxH
}

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}

	m.viewBuf.Reset()
	b := &m.viewBuf
	now := m.now()
	snap := m.ctx.Snapshot(now)

	leftPad := strings.Repeat(" ", m.canvasX)

	b.WriteString(leftPad)
	b.WriteString(renderHUD(snap, m.speed))
	b.WriteString("\n")
	b.WriteString(leftPad)
	b.WriteString(styleHudDim.Render(infoLine(snap)))
	b.WriteString("\n")
	for i := m.fieldY; i < m.canvasY; i++ {
		b.WriteString("\n")
	}

	m.canvas.Resize(m.canvasW, m.canvasH)
	m.canvas.Fill(bgCell)
	d := drawer{c: &m.canvas}

	switch snap.Phase {
	case game.PhaseModeSelect:
		d.modeSelect(m.ctx.Screen())
	case game.PhaseCharacterSelect:
		d.characterSelect(m.ctx.Screen(), snap)
	case game.PhaseSelectionTransition:
		d.selectionTransition(snap)
	case game.PhaseCountdown:
		d.countdown(snap)
	case game.PhasePlaying:
		d.court(snap, m.sparks)
	case game.PhaseGameOver:
		d.court(snap, nil)
		d.particles(m.confetti)
		applyOverlay(&m.canvas, &fieldOverlay{
			Title: snap.Winner + " wins!",
			Lines: []string{
				fmt.Sprintf("%s %d  -  %d %s", snap.Players[0].ID, snap.Paddles[0].Score, snap.Paddles[1].Score, snap.Players[1].ID),
			},
			Footer: "press z to restart, q to quit",
		}, snap.WinnerColor)
	}

	for y := 0; y < m.canvas.h; y++ {
		b.WriteString(leftPad)
		row := y * m.canvas.w
		for x := 0; x < m.canvas.w; x++ {
			b.WriteString(m.canvas.cells[row+x])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func infoLine(s game.Snapshot) string {
	switch s.Phase {
	case game.PhaseModeSelect:
		return "click a mode or press 1 / 2"
	case game.PhaseCharacterSelect:
		return "click a tile or press 1-6"
	case game.PhaseSelectionTransition, game.PhaseCountdown:
		return "space / enter / click to skip"
	case game.PhasePlaying:
		if s.OnePlayer {
			return "w/s move, drag to nudge, +/- speed, q quit"
		}
		return "w/s left, up/down right, drag to nudge, +/- speed, q quit"
	case game.PhaseGameOver:
		return "press z to restart"
	}
	return ""
}

func renderHUD(s game.Snapshot, speed float64) string {
	sep := styleHudDim.Render("  |  ")
	parts := []string{styleHudLabel.Render("magic pong")}
	if s.InMatch {
		for i := range s.Players {
			st := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Paddles[i].Color.Hex()))
			parts = append(parts, sep, st.Render(fmt.Sprintf("%s: %d", s.Players[i].ID, s.Paddles[i].Score)))
		}
	} else {
		mode := "2 player"
		if s.OnePlayer {
			mode = "1 player"
		}
		parts = append(parts, sep, styleHudLabel.Render("mode ")+styleHudValue.Render(mode))
	}
	parts = append(parts, sep, styleHudLabel.Render("speed ")+styleHudValue.Render(fmt.Sprintf("%.2fx", speed)))
	return strings.Join(parts, "")
}

type particle struct {
	X, Y   float64 // cells
	VX, VY float64 // cells per second
	TTL    float64
	Cell   string
}

func (m *Model) spawnSparks(ev game.Event) {
	col := ev.X / cellPxW
	row := ev.Y / cellPxH
	dir := 1.0
	if ev.Side == game.SideRight {
		dir = -1
	}
	cell := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(ev.Color.Blend(game.White, 0.4).Hex())).Render("+")
	for range 6 {
		m.sparks = append(m.sparks, particle{
			X:    col,
			Y:    row,
			VX:   dir * (5 + m.rng.Float64()*15),
			VY:   (m.rng.Float64()*2 - 1) * 8,
			TTL:  0.25 + m.rng.Float64()*0.2,
			Cell: cell,
		})
	}
}

func (m *Model) updateParty(dt float64) {
	if !m.ready {
		return
	}

	out := m.sparks[:0]
	for _, p := range m.sparks {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.TTL -= dt
		if p.TTL > 0 {
			out = append(out, p)
		}
	}
	m.sparks = out

	if m.ctx.Phase() != game.PhaseGameOver {
		m.confetti = nil
		m.partyAcc = 0
		return
	}

	w, h := m.canvasW, m.canvasH
	if w <= 0 || h <= 0 {
		return
	}
	conf := m.confetti[:0]
	for _, p := range m.confetti {
		p.Y += p.VY * dt
		if p.Y < float64(h) {
			conf = append(conf, p)
		}
	}
	m.confetti = conf

	winner := m.ctx.Snapshot(m.now()).WinnerColor
	m.partyAcc = math.Min(m.partyAcc+dt*45, 200)
	for m.partyAcc >= 1 {
		m.partyAcc--
		tint := winner.Blend(game.White, m.rng.Float64()*0.6)
		ch := confettiChars[m.rng.IntN(len(confettiChars))]
		m.confetti = append(m.confetti, particle{
			X:    float64(m.rng.IntN(w)),
			Y:    -1,
			VY:   10 + m.rng.Float64()*25,
			Cell: lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(tint.Hex())).Render(string(ch)),
		})
	}
}

var confettiChars = []rune{'*', '+', 'x', 'o', '~', '^'}
