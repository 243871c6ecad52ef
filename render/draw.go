package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/typewall/content"
	"github.com/lixenwraith/typewall/session"
)

// Frame glyphs, focused windows use the double set
var (
	singleBorder = border{'┌', '┐', '└', '┘', '─', '│'}
	doubleBorder = border{'╔', '╗', '╚', '╝', '═', '║'}
)

const (
	cursorGlyph      = '█'
	gripGlyph        = '◢'
	placeholderGlyph = '·'
	markerGlyph      = '▪'
	CatGlyph         = "=^.^="
	StatusRows       = 1
)

type border struct {
	tl, tr, bl, br, h, v rune
}

// Frame is everything drawn in one pass
type Frame struct {
	Windows []session.WindowView // Bottom to top
	Cats    []session.CatView
	Status  string
}

// Renderer draws session views onto a tcell screen
// Not safe for concurrent use, the event loop owns it
type Renderer struct {
	theme Theme
}

// NewRenderer creates a renderer with the given theme
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Theme returns the active theme
func (r *Renderer) Theme() Theme {
	return r.theme
}

// SetTheme swaps the active theme
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
}

// Viewport returns the window area for a screen size, the status bar takes the bottom row
func Viewport(width, height int) (int, int) {
	return max(width, 0), max(height-StatusRows, 0)
}

// Draw renders one full frame; the caller calls Show
func (r *Renderer) Draw(s tcell.Screen, f Frame) {
	sw, sh := s.Size()
	vw, vh := Viewport(sw, sh)
	c := canvas{screen: s, width: vw, height: vh}

	s.Fill(' ', r.theme.Background)
	for _, w := range f.Windows {
		r.drawWindow(c, w)
	}
	for _, k := range f.Cats {
		c.text(k.Position.X, k.Position.Y, CatGlyph, vw, r.theme.Cat)
	}

	if sh > vh {
		status := canvas{screen: s, width: sw, height: sh}
		for x := range sw {
			status.put(x, sh-1, ' ', r.theme.Status)
		}
		status.text(1, sh-1, f.Status, sw-1, r.theme.Status)
	}
}

func (r *Renderer) drawWindow(c canvas, w session.WindowView) {
	x0, y0 := w.Position.X, w.Position.Y
	width, height := w.Size.Width, w.Size.Height
	if width < 1 || height < 1 {
		return
	}

	frame, glyphs := r.theme.Frame, singleBorder
	switch {
	case w.Placeholder:
		frame = r.theme.Placeholder
	case w.Focused:
		frame, glyphs = r.theme.FocusFrame, doubleBorder
	}

	// Too small for a frame, dense uniform grids still show one cell per window
	if width < 2 || height < 2 {
		marker := markerGlyph
		if w.Placeholder {
			marker = placeholderGlyph
		} else if w.TypingActive {
			frame = r.theme.Cursor
		}
		c.put(x0, y0, marker, frame)
		return
	}
	x1, y1 := x0+width-1, y0+height-1

	// Body first so the border overwrites nothing it needs
	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			c.put(x, y, ' ', r.theme.Background)
		}
	}

	for x := x0 + 1; x < x1; x++ {
		c.put(x, y0, glyphs.h, frame)
		c.put(x, y1, glyphs.h, frame)
	}
	for y := y0 + 1; y < y1; y++ {
		c.put(x0, y, glyphs.v, frame)
		c.put(x1, y, glyphs.v, frame)
	}
	c.put(x0, y0, glyphs.tl, frame)
	c.put(x1, y0, glyphs.tr, frame)
	c.put(x0, y1, glyphs.bl, frame)
	c.put(x1, y1, glyphs.br, frame)
	if w.Focused {
		c.put(x1, y1, gripGlyph, frame)
	}

	if title := w.Sequence; title != "" && width > 4 {
		titleStyle := r.theme.Title
		if w.Placeholder {
			titleStyle = r.theme.Placeholder
		}
		c.text(x0+2, y0, " "+title+" ", width-4, titleStyle)
	}

	innerW, innerH := width-2, height-2
	if innerW <= 0 || innerH <= 0 {
		return
	}

	if w.Placeholder {
		c.put(x0+1+innerW/2, y0+1+innerH/2, placeholderGlyph, r.theme.Placeholder)
		return
	}

	lines := visibleLines(w.RevealedLines, innerH)
	for i, line := range lines {
		c.text(x0+1, y0+1+i, line.Text, innerW, r.theme.Resolve(line.Role, line.Bold))
	}

	if w.TypingActive {
		cx, cy := x0+1, y0+1
		if n := len(lines); n > 0 {
			cy += n - 1
			cx += runewidth.StringWidth(lines[n-1].Text)
		}
		if cx < x1 && cy < y1 {
			c.put(cx, cy, cursorGlyph, r.theme.Cursor)
		}
	}
}

// visibleLines keeps the tail that fits, the window scrolls like a terminal
func visibleLines(lines []content.Line, rows int) []content.Line {
	if len(lines) <= rows {
		return lines
	}
	return lines[len(lines)-rows:]
}

// canvas clips writes to a rectangle anchored at the origin
type canvas struct {
	screen        tcell.Screen
	width, height int
}

func (c canvas) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// text writes s from x, clipped to limit display cells and to the canvas
// Wide runes that would straddle the limit are dropped
func (c canvas) text(x, y int, s string, limit int, style tcell.Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > limit {
			break
		}
		c.put(x+used, y, r, style)
		used += w
	}
	return used
}
