package typewriter

import (
	"time"

	"github.com/lixenwraith/typewall/content"
)

const (
	ChunkMin = 3
	ChunkMax = 6

	SpeedMin = 1
	SpeedMax = 20

	JitterMin = 0.85
	JitterMax = 1.15
)

// Rand is the randomness Advance needs, vmath.FastRand satisfies it
type Rand interface {
	IntRange(lo, hi int) int
}

// FloatRand is the randomness Jitter needs
type FloatRand interface {
	FloatRange(lo, hi float64) float64
}

// ChunkSize rolls the rune count revealed by one step
func ChunkSize(rng Rand) int {
	return rng.IntRange(ChunkMin, ChunkMax)
}

// Jitter rolls a per-window speed multiplier
func Jitter(rng FloatRand) float64 {
	return rng.FloatRange(JitterMin, JitterMax)
}

// ClampSpeed bounds a chunks-per-second speed
func ClampSpeed(speed int) int {
	return min(max(speed, SpeedMin), SpeedMax)
}

// Interval is the delay between steps: jitter * 1000/speed milliseconds
func Interval(speed int, jitter float64) time.Duration {
	ms := jitter * 1000 / float64(ClampSpeed(speed))
	return time.Duration(ms * float64(time.Millisecond))
}

// Advance performs one step after elapsed time and returns the new state
// The input state is never mutated, its Revealed slice stays valid for readers
func Advance(s State, elapsed time.Duration, rng Rand) State {
	if s.Paused || !s.Active || s.Inert {
		return s
	}
	if elapsed < 0 {
		elapsed = 0
	}

	// Holds are measured in elapsed time, independent of step cadence
	if s.Hold > 0 {
		if elapsed < s.Hold {
			s.Hold -= elapsed
			return s
		}
		s.Hold = 0
	}
	if s.Waiting {
		return rewind(s)
	}

	lines := s.Sequence.Lines
	line := lines[s.LineIndex]
	runes := []rune(line.Text)
	end := min(s.CharOffset+ChunkSize(rng), len(runes))

	revealed := make([]content.Line, len(s.Revealed), len(s.Revealed)+1)
	copy(revealed, s.Revealed)
	if s.CharOffset > 0 {
		// Drop the previous partial entry, it is rebuilt below
		revealed = revealed[:len(revealed)-1]
	}

	if end < len(runes) {
		partial := line
		partial.Text = string(runes[:end])
		s.Revealed = append(revealed, partial)
		s.CharOffset = end
		return s
	}

	s.Revealed = append(revealed, line)
	s.LineIndex++
	s.CharOffset = 0

	switch {
	case s.LineIndex < len(lines):
		s.Hold = lines[s.LineIndex].Delay
	case s.Loop:
		s.Waiting = true
		s.Hold = s.LoopDelay
	default:
		s.Active = false
	}
	return s
}
