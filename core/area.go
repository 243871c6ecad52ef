package core

// Point is a cell coordinate, origin at top-left
type Point struct {
	X, Y int
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Size is a width/height pair in cells
type Size struct {
	Width, Height int
}

// Clamp bounds s to [min, max] per axis
func (s Size) Clamp(min, max Size) Size {
	if s.Width < min.Width {
		s.Width = min.Width
	}
	if s.Height < min.Height {
		s.Height = min.Height
	}
	if max.Width > 0 && s.Width > max.Width {
		s.Width = max.Width
	}
	if max.Height > 0 && s.Height > max.Height {
		s.Height = max.Height
	}
	return s
}

// Area represents a rectangular target region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// NewArea builds an area from a position and size
func NewArea(p Point, s Size) Area {
	return Area{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Contains checks if point is within area
func (a Area) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Overlaps reports whether two areas share at least one cell
func (a Area) Overlaps(b Area) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}
