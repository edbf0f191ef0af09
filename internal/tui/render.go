package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/magic-pong/internal/game"
	"github.com/fchimpan/magic-pong/internal/layout"
)

// ===== Render helpers (cached styles) =====

var (
	// Dark forest green.
	bgColor = lipgloss.Color("#143025")
	bgCell  = lipgloss.NewStyle().Background(bgColor).Render(" ")

	styleText  = lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color("#ffffff"))
	styleTitle = lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color("#ffffff")).Bold(true)
	styleGold  = lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color("#ffd700")).Bold(true)
	styleNet   = lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color("#5d7a6e"))

	styleHudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleHudValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHudDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

	modeButtonColors = [2]lipgloss.Color{"#4169E1", "#7731A0"}
)

// emblemGlyph keeps to single-width runes so the grid stays aligned.
func emblemGlyph(e game.Emblem) string {
	switch e {
	case game.EmblemStar:
		return "*"
	case game.EmblemCrown:
		return "Ш"
	case game.EmblemBolt:
		return "ϟ"
	case game.EmblemTrident:
		return "Ψ"
	case game.EmblemShield:
		return "Ø"
	case game.EmblemPaw:
		return "ᴥ"
	default:
		return "o"
	}
}

// contrast picks black or white text for a background.
func contrast(c game.Color) lipgloss.Color {
	r, g, b := c.RGB255()
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 150 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

type canvasBuf struct {
	w     int
	h     int
	cells []string // flat: y*w + x
}

func (c *canvasBuf) Reset() {
	c.w = 0
	c.h = 0
	c.cells = nil
}

func (c *canvasBuf) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		c.Reset()
		return
	}
	n := w * h
	if c.w == w && c.h == h && cap(c.cells) >= n {
		c.cells = c.cells[:n]
		return
	}
	c.w = w
	c.h = h
	c.cells = make([]string, n)
}

func (c *canvasBuf) Fill(cell string) {
	for i := range c.cells {
		c.cells[i] = cell
	}
}

func (c *canvasBuf) Set(x, y int, cell string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell
}

// drawer paints canvas-pixel geometry onto the cell buffer.
type drawer struct {
	c *canvasBuf
}

func cellX(px float64) int { return int(math.Floor(px / cellPxW)) }
func cellY(px float64) int { return int(math.Floor(px / cellPxH)) }

func (d drawer) rect(r layout.Rect, cell string) {
	x0, y0 := cellX(r.X), cellY(r.Y)
	x1 := max(cellX(r.X+r.W-0.001), x0)
	y1 := max(cellY(r.Y+r.H-0.001), y0)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d.c.Set(x, y, cell)
		}
	}
}

// text centres s on the canvas pixel (cx, y).
func (d drawer) text(cx, y float64, s string, st lipgloss.Style) {
	runes := []rune(s)
	x0 := cellX(cx) - len(runes)/2
	row := cellY(y)
	for i, r := range runes {
		d.c.Set(x0+i, row, st.Render(string(r)))
	}
}

func (d drawer) modeSelect(scr layout.Screen) {
	d.text(scr.W/2, scr.ModeHeadingY(), "Select Game Mode", styleTitle)
	labels := [2]string{"1 Player", "2 Player"}
	for i, b := range scr.ModeButtons() {
		bg := lipgloss.NewStyle().Background(modeButtonColors[i])
		d.rect(b, bg.Render(" "))
		cx, cy := b.Center()
		d.text(cx, cy, labels[i], bg.Foreground(lipgloss.Color("#ffffff")).Bold(true))
	}
}

func (d drawer) characterSelect(scr layout.Screen, s game.Snapshot) {
	title := "Player 1: Tap your favorite Descendant!"
	if s.Selection.Player1 != nil {
		title = "Player 2: Tap your favorite Descendant!"
	}
	d.text(scr.W/2, scr.TitleY(), title, styleTitle)

	for i, t := range scr.Tiles(len(s.Roster)) {
		ch := s.Roster[i]
		tile := lipgloss.NewStyle().Background(lipgloss.Color(ch.Color.Hex()))
		d.rect(t.Icon, tile.Render(" "))
		cx, cy := t.Icon.Center()
		d.text(cx, cy, emblemGlyph(ch.Emblem), tile.Foreground(contrast(ch.Color)).Bold(true))
		d.text(t.LabelX, t.LabelY, fmt.Sprintf("%d %s", i+1, ch.ID), styleText)
	}
	if p1 := s.Selection.Player1; p1 != nil {
		st := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(p1.Color.Hex())).Bold(true)
		d.text(scr.W/2, s.CanvasH*0.9, "Player 1: "+p1.ID, st)
	}
}

func (d drawer) selectionTransition(s game.Snapshot) {
	p1 := s.Selection.Player1
	if p1 == nil {
		return
	}
	d.emblemTile(s.CanvasW/2, s.CanvasH*0.4, *p1)
	st := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(p1.Color.Hex())).Bold(true)
	d.text(s.CanvasW/2, s.CanvasH*0.2, "Player 1 is "+p1.ID+"!", st)
	d.text(s.CanvasW/2, s.CanvasH*0.65, "Player 2, get ready to choose", styleText)
	d.text(s.CanvasW/2, s.CanvasH*0.75, seconds(s.Remaining), styleGold)
}

func (d drawer) countdown(s game.Snapshot) {
	if !s.InMatch {
		return
	}
	for i, x := range [2]float64{s.CanvasW * 0.25, s.CanvasW * 0.75} {
		ch := s.Players[i]
		d.emblemTile(x, s.CanvasH*0.4, ch)
		st := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(ch.Color.Hex())).Bold(true)
		d.text(x, s.CanvasH*0.65, ch.ID, st)
	}
	d.text(s.CanvasW/2, s.CanvasH*0.4, "VS", styleTitle)
	d.text(s.CanvasW/2, s.CanvasH*0.8, seconds(s.Remaining), styleGold)
}

func (d drawer) emblemTile(cx, cy float64, ch game.Character) {
	const size = 48.0
	tile := lipgloss.NewStyle().Background(lipgloss.Color(ch.Color.Hex()))
	d.rect(layout.Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size}, tile.Render(" "))
	d.text(cx, cy, emblemGlyph(ch.Emblem), tile.Foreground(contrast(ch.Color)).Bold(true))
}

func (d drawer) court(s game.Snapshot, sparks []particle) {
	if !s.InMatch {
		return
	}
	net := styleNet.Render("¦")
	for y := 0; y < d.c.h; y++ {
		d.c.Set(cellX(s.CanvasW/2), y, net)
	}

	for i := range s.Paddles {
		p := s.Paddles[i]
		st := lipgloss.NewStyle().Background(lipgloss.Color(p.Color.Hex()))
		d.rect(layout.Rect{X: p.X, Y: p.Top(), W: p.Width, H: p.Height}, st.Render(" "))
	}

	b := s.Ball
	ball := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(b.Color.Blend(game.White, 0.2).Hex())).Bold(true).Render("●")
	d.c.Set(cellX(b.X), cellY(b.Y), ball)

	d.particles(sparks)

	for i, x := range [2]float64{s.CanvasW * 0.15, s.CanvasW * 0.6} {
		st := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color(s.Paddles[i].Color.Hex())).Bold(true)
		d.text(x, s.CanvasH*0.08, fmt.Sprintf("%s: %d", s.Players[i].ID, s.Paddles[i].Score), st)
	}
}

func (d drawer) particles(ps []particle) {
	for _, p := range ps {
		d.c.Set(int(p.X), int(p.Y), p.Cell)
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%d", int(math.Ceil(d.Seconds())))
}

type fieldOverlay struct {
	Title  string
	Lines  []string
	Footer string
}

func applyOverlay(canvas *canvasBuf, ov *fieldOverlay, accent game.Color) {
	h := canvas.h
	if h == 0 {
		return
	}
	w := canvas.w
	if w == 0 {
		return
	}

	lines := make([]string, 0, 2+len(ov.Lines)+1)
	if ov.Title != "" {
		lines = append(lines, ov.Title)
	}
	lines = append(lines, ov.Lines...)
	if ov.Footer != "" {
		lines = append(lines, ov.Footer)
	}

	maxLen := 0
	for _, s := range lines {
		maxLen = max(maxLen, len([]rune(s)))
	}
	innerW := maxLen
	innerH := len(lines)

	// Padding 1 plus border on every side.
	boxW := min(innerW+4, w)
	boxH := min(innerH+4, h)

	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2

	borderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent.Hex()))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	panelStyle := lipgloss.NewStyle().Background(lipgloss.Color("#0d1f18"))

	put := canvas.Set

	bg := panelStyle.Render(" ")
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			put(x, y, bg)
		}
	}

	hLine := panelStyle.Inherit(borderStyle).Render("─")
	vLine := panelStyle.Inherit(borderStyle).Render("│")
	for x := x0 + 1; x < x0+boxW-1; x++ {
		put(x, y0, hLine)
		put(x, y0+boxH-1, hLine)
	}
	for y := y0 + 1; y < y0+boxH-1; y++ {
		put(x0, y, vLine)
		put(x0+boxW-1, y, vLine)
	}
	put(x0, y0, panelStyle.Inherit(borderStyle).Render("╭"))
	put(x0+boxW-1, y0, panelStyle.Inherit(borderStyle).Render("╮"))
	put(x0, y0+boxH-1, panelStyle.Inherit(borderStyle).Render("╰"))
	put(x0+boxW-1, y0+boxH-1, panelStyle.Inherit(borderStyle).Render("╯"))

	tx0 := x0 + 2
	ty0 := y0 + 2
	for i, line := range lines {
		y := ty0 + i
		if y >= y0+boxH-2 {
			break
		}
		runes := []rune(line)
		if len(runes) > innerW {
			runes = runes[:innerW]
		}
		startX := tx0 + (innerW-len(runes))/2

		var st lipgloss.Style
		switch {
		case i == 0 && ov.Title != "":
			st = titleStyle
		case i == len(lines)-1 && ov.Footer != "":
			st = helpStyle
		default:
			st = textStyle
		}
		cell := panelStyle.Inherit(st)
		for j, r := range runes {
			x := startX + j
			if x >= x0+boxW-2 {
				break
			}
			put(x, y, cell.Render(string(r)))
		}
	}
}
