package vmath

import "github.com/lixenwraith/typewall/core"

// AreaRandomPointF returns a uniform sub-cell point whose rounded cell lies inside a
// Empty or single-cell axes collapse to the area origin
func AreaRandomPointF(a core.Area, rng *FastRand) (float64, float64) {
	x, y := float64(a.X), float64(a.Y)
	if a.Width > 1 {
		x = rng.FloatRange(x, float64(a.X+a.Width-1))
	}
	if a.Height > 1 {
		y = rng.FloatRange(y, float64(a.Y+a.Height-1))
	}
	return x, y
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat bounds v to [lo, hi]
func ClampFloat(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
