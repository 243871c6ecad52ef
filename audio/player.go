package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/typewall/vmath"
)

// ClickPlayer mixes keystroke clicks into one output stream
// Safe for concurrent use; Play never blocks on audio hardware
type ClickPlayer struct {
	cfg    Config
	mixer  *beep.Mixer
	locker sync.Locker // Guards the mixer against the output goroutine

	muted atomic.Bool

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
	rng  *vmath.FastRand

	played  atomic.Uint64
	dropped atomic.Uint64
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// NewClickPlayer creates a player feeding mixer
// A nil locker means the mixer is not shared with an output goroutine
func NewClickPlayer(cfg Config, mixer *beep.Mixer, locker sync.Locker) *ClickPlayer {
	cfg = cfg.normalize()
	if locker == nil {
		locker = noopLocker{}
	}
	p := &ClickPlayer{
		cfg:    cfg,
		mixer:  mixer,
		locker: locker,
		now:    time.Now,
		rng:    vmath.NewEntropyRand(),
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Play queues a click for a chunk of runes
// Returns false when muted or when the previous click was less than MinGap ago
func (p *ClickPlayer) Play(runes int) bool {
	if p.muted.Load() || runes <= 0 {
		return false
	}

	p.mu.Lock()
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.cfg.MinGap {
		p.mu.Unlock()
		p.dropped.Add(1)
		return false
	}
	p.last = now
	click := NewClick(runes, p.cfg.Volume, p.cfg.SampleRate, p.rng)
	p.mu.Unlock()

	p.locker.Lock()
	p.mixer.Add(click)
	p.locker.Unlock()

	p.played.Add(1)
	return true
}

// ToggleMute flips the mute state, returns true if now audible
func (p *ClickPlayer) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return old
		}
	}
}

// SetMuted sets the mute state
func (p *ClickPlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// IsMuted returns the current mute state
func (p *ClickPlayer) IsMuted() bool {
	return p.muted.Load()
}

// Stats returns played and rate-limited click counts
func (p *ClickPlayer) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// clear drops every queued click
func (p *ClickPlayer) clear() {
	p.locker.Lock()
	p.mixer.Clear()
	p.locker.Unlock()
}
