package render

import (
	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/session"
)

// Region is the part of a window under the pointer
type Region uint8

const (
	RegionBody Region = iota
	RegionTitle
	RegionCorner
)

// Hit describes the top-most window at a cell
type Hit struct {
	ID       string
	Region   Region
	Position core.Point // Window origin at hit time
	Size     core.Size
}

// HitTest finds the top-most window containing (x, y); windows are ordered bottom to top
func HitTest(windows []session.WindowView, x, y int) (Hit, bool) {
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		if !core.NewArea(w.Position, w.Size).Contains(x, y) {
			continue
		}
		h := Hit{ID: w.ID, Region: RegionBody, Position: w.Position, Size: w.Size}
		switch {
		case OnBorderCorner(w, x, y):
			h.Region = RegionCorner
		case y == w.Position.Y:
			h.Region = RegionTitle
		}
		return h, true
	}
	return Hit{}, false
}

// OnBorderCorner reports whether (x, y) is the bottom-right resize grip of w
func OnBorderCorner(w session.WindowView, x, y int) bool {
	return x == w.Position.X+w.Size.Width-1 && y == w.Position.Y+w.Size.Height-1
}

// DragMode is what an active drag changes
type DragMode uint8

const (
	DragNone DragMode = iota
	DragMove
	DragResize
)

// DragTracker turns pointer motion into window position or size changes
type DragTracker struct {
	mode   DragMode
	id     string
	offset core.Point // Pointer offset from the window origin for moves
	origin core.Point // Window origin for resizes
}

// Start begins a drag from a hit; body hits start nothing
func (t *DragTracker) Start(h Hit, x, y int) DragMode {
	t.End()
	switch h.Region {
	case RegionTitle:
		t.mode = DragMove
		t.offset = core.Point{X: x - h.Position.X, Y: y - h.Position.Y}
	case RegionCorner:
		t.mode = DragResize
		t.origin = h.Position
	default:
		return DragNone
	}
	t.id = h.ID
	return t.mode
}

// Active reports a drag in progress
func (t *DragTracker) Active() bool {
	return t.mode != DragNone
}

// ID is the window being dragged
func (t *DragTracker) ID() string {
	return t.id
}

// Mode is the kind of active drag
func (t *DragTracker) Mode() DragMode {
	return t.mode
}

// Position returns the new window origin for a move to (x, y)
func (t *DragTracker) Position(x, y int) core.Point {
	return core.Point{X: x - t.offset.X, Y: y - t.offset.Y}
}

// Size returns the new window size for a resize to (x, y), the grip follows the pointer
func (t *DragTracker) Size(x, y int) core.Size {
	return core.Size{Width: x - t.origin.X + 1, Height: y - t.origin.Y + 1}
}

// End stops the drag
func (t *DragTracker) End() {
	*t = DragTracker{}
}
