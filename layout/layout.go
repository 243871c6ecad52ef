package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/vmath"
)

// Mode selects how windows are arranged
type Mode uint8

const (
	ModeScattered Mode = iota
	ModeUniform
)

func (m Mode) String() string {
	switch m {
	case ModeUniform:
		return "uniform"
	case ModeScattered:
		return "scattered"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Next cycles to the other mode
func (m Mode) Next() Mode {
	if m == ModeUniform {
		return ModeScattered
	}
	return ModeUniform
}

// ParseMode resolves a mode name, "grid" is accepted as an alias for uniform
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "grid":
		return ModeUniform, nil
	case "scattered", "scatter", "random":
		return ModeScattered, nil
	default:
		return ModeScattered, fmt.Errorf("unknown layout mode %q", s)
	}
}

// Viewport is the drawable area in cells
type Viewport struct {
	Width, Height int
}

// Degenerate reports a viewport with no usable area
func (v Viewport) Degenerate() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Options carries the per-window parameters of a layout pass
type Options struct {
	Window  core.Size // Window size used by scattered placement
	Padding int       // Per-cell inset used by uniform placement
}

// Compute returns count positions for mode inside viewport
// A degenerate viewport puts every window at the origin instead of dividing by zero
func Compute(count int, mode Mode, vp Viewport, opts Options, rng *vmath.FastRand) []core.Point {
	if count <= 0 {
		return []core.Point{}
	}

	points := make([]core.Point, count)
	if vp.Degenerate() {
		return points
	}

	switch mode {
	case ModeUniform:
		g := NewGrid(count, vp)
		inset := g.Inset(opts.Padding)
		for i := range points {
			points[i] = g.CellOrigin(i).Add(inset)
		}
	default:
		for i := range points {
			points[i] = Scatter(vp, opts.Window, rng)
		}
	}
	return points
}

// Scatter picks one uniformly random position keeping the window inside the viewport where it fits
// Overlap with other windows is allowed
func Scatter(vp Viewport, window core.Size, rng *vmath.FastRand) core.Point {
	if vp.Degenerate() {
		return core.Point{}
	}
	return core.Point{
		X: rng.IntRange(0, max(vp.Width-window.Width, 0)),
		Y: rng.IntRange(0, max(vp.Height-window.Height, 0)),
	}
}

// Grid is an aspect-aware cols x rows partition of a viewport
type Grid struct {
	Cols, Rows int
	Viewport   Viewport
}

// NewGrid picks cols = ceil(sqrt(count * W/H)) so cells stay close to the viewport aspect
// rows is the smallest value with rows*cols >= count
func NewGrid(count int, vp Viewport) Grid {
	if count <= 0 || vp.Degenerate() {
		return Grid{Cols: 1, Rows: 1, Viewport: vp}
	}

	aspect := float64(vp.Width) / float64(vp.Height)
	cols := int(math.Ceil(math.Sqrt(float64(count) * aspect)))
	cols = vmath.Clamp(cols, 1, count)
	rows := (count + cols - 1) / cols

	return Grid{Cols: cols, Rows: rows, Viewport: vp}
}

// CellOrigin returns the top-left corner of cell i, filled row-major
// Cell edges are spread with integer division so the last column/row reaches the viewport edge
func (g Grid) CellOrigin(i int) core.Point {
	col := i % g.Cols
	row := i / g.Cols
	return core.Point{
		X: col * g.Viewport.Width / g.Cols,
		Y: row * g.Viewport.Height / g.Rows,
	}
}

// cell is the smallest cell in the grid, integer division makes some cells one wider
func (g Grid) cell() core.Size {
	return core.Size{Width: g.Viewport.Width / g.Cols, Height: g.Viewport.Height / g.Rows}
}

// Inset is the padding actually applied per axis
// Padding shrinks so that a cell of at least 2 keeps a window of at least 2 on that axis
func (g Grid) Inset(padding int) core.Point {
	if g.Viewport.Degenerate() || padding <= 0 {
		return core.Point{}
	}
	c := g.cell()
	return core.Point{
		X: min(padding, max(0, (c.Width-2)/2)),
		Y: min(padding, max(0, (c.Height-2)/2)),
	}
}

// CellSize is the window size that fits inside every cell without overlap
func (g Grid) CellSize(padding int) core.Size {
	if g.Viewport.Degenerate() {
		return core.Size{Width: 1, Height: 1}
	}
	c := g.cell()
	inset := g.Inset(padding)
	return core.Size{
		Width:  max(c.Width-2*inset.X, 1),
		Height: max(c.Height-2*inset.Y, 1),
	}
}
