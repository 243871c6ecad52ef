package engine

import "time"

// Clock abstracts time so schedulers can be driven deterministically in tests
// Production code injects RealClock, tests inject FakeClock
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// AfterFunc calls f once after d elapses and returns a cancellable handle
	// f runs on an arbitrary goroutine (real) or inside FakeClock.Advance (fake)
	// f is never called before AfterFunc returns, so callers may hold locks f also takes
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending one-shot callback
type Timer interface {
	// Stop prevents the callback from firing
	// Returns false if the callback already fired, started, or was stopped
	Stop() bool
}

// RealClock is backed by the time package
type RealClock struct{}

// NewRealClock returns the wall clock
func NewRealClock() RealClock {
	return RealClock{}
}

// Now returns the current time with monotonic clock reading
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	return time.AfterFunc(d, f)
}
