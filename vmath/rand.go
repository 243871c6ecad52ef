package vmath

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// FastRand is a xorshift64 generator
// Not safe for concurrent use; give each owner its own instance via Fork
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator from seed, zero is remapped since xorshift would stall on it
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// NewEntropyRand seeds a generator from system entropy, falling back to the wall clock
func NewEntropyRand() *FastRand {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return NewFastRand(uint64(time.Now().UnixNano()))
	}
	return NewFastRand(binary.LittleEndian.Uint64(buf[:]))
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), zero for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns a value in [lo, hi] inclusive
func (r *FastRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns a value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// FloatRange returns a value in [lo, hi)
func (r *FastRand) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Fork derives an independent generator; the parent advances by one step
func (r *FastRand) Fork() *FastRand {
	// splitmix64 finalizer decorrelates child from parent stream
	z := r.Next() + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return NewFastRand(z ^ (z >> 31))
}
