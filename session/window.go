package session

import (
	"time"

	"github.com/lixenwraith/typewall/content"
	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/engine"
	"github.com/lixenwraith/typewall/typewriter"
	"github.com/lixenwraith/typewall/vmath"
)

// window is the controller-owned record of one terminal
// state is nil for placeholders; the timer handle belongs to the record and is cancelled with it
type window struct {
	id    string
	index int // Creation index, drives round-robin content

	pos  core.Point
	size core.Size
	z    int

	speedFactor float64
	seqKey      string
	state       *typewriter.State
	focused     bool

	timer engine.Timer
	token uint64    // Bumped on every schedule/cancel, stale callbacks compare against it
	last  time.Time // When the pending step was scheduled
	rng   *vmath.FastRand

	removed bool
}

func (w *window) placeholder() bool {
	return w.state == nil
}

// WindowView is the read-only render model of a window
// RevealedLines is shared with the engine state, which never writes to a published slice
type WindowView struct {
	ID       string
	Position core.Point
	Size     core.Size
	ZIndex   int
	Focused  bool

	RevealedLines []content.Line
	TypingActive  bool

	Placeholder bool
	Inert       bool
	Sequence    string
}

func (w *window) view() WindowView {
	v := WindowView{
		ID:          w.id,
		Position:    w.pos,
		Size:        w.size,
		ZIndex:      w.z,
		Focused:     w.focused,
		Placeholder: w.state == nil,
		Sequence:    w.seqKey,
	}
	if w.state != nil {
		v.RevealedLines = w.state.Revealed
		v.TypingActive = w.state.Active
		v.Inert = w.state.Inert
	}
	return v
}

// CatView is the render model of a decorative cat
type CatView struct {
	ID       string
	Position core.Point
}
