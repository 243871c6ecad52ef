package layout

// Policy bounds how many windows run a live animation
// Above Threshold only LiveCap windows animate; the rest are static placeholders
type Policy struct {
	Threshold int
	LiveCap   int
}

// DefaultPolicy keeps every window live up to 1000, then caps at 80
func DefaultPolicy() Policy {
	return Policy{Threshold: 1000, LiveCap: 80}
}

// Live returns how many of count windows should be fully rendered
func (p Policy) Live(count int) int {
	if count <= 0 {
		return 0
	}
	if count > p.Threshold {
		return min(count, max(p.LiveCap, 0))
	}
	return count
}

// Placeholders returns how many of count windows are placeholders
func (p Policy) Placeholders(count int) int {
	return max(count, 0) - p.Live(count)
}
