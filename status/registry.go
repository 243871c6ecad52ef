package status

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"
)

// Metric keys published by the session controller
const (
	WindowsTotal       = "windows.total"
	WindowsLive        = "windows.live"
	WindowsPlaceholder = "windows.placeholder"
	WindowsInert       = "windows.inert"
	Cats               = "cats"
	TypewriterSteps    = "typewriter.steps"
	TimersPending      = "timers.pending"
	ZombieTicks        = "timers.zombie"
	CatTicksStale      = "cats.stale"     // Cat frames dropped after a cancel, separate from window zombies
	CatDistance        = "cats.distance"  // Cells travelled by all cats
	TypingRatio        = "windows.typing" // Fraction of windows whose sequence is still running
	Speed              = "speed"
	Paused             = "paused"
)

// Registry is the central metrics facade
// Producers cache pointers at construction; hot paths write directly to atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every metric into a flat map keyed by metric name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out[k] = fmt.Sprintf("%t", v.Load())
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = fmt.Sprintf("%d", v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out[k] = fmt.Sprintf("%.2f", v.Get())
	})
	return out
}

// Format renders the listed keys as "key=value" pairs; missing keys are skipped
// With no keys every metric is rendered in sorted order
func (r *Registry) Format(keys ...string) string {
	snap := r.Snapshot()
	if len(keys) == 0 {
		for k := range snap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := snap[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}

// Service wraps Registry for the service hub
type Service struct {
	registry *Registry
}

// NewService creates a status service with an initialized registry
func NewService() *Service {
	return &Service{registry: NewRegistry()}
}

// Name implements Service
func (s *Service) Name() string { return "status" }

// Dependencies implements Service
func (s *Service) Dependencies() []string { return nil }

// Init implements Service
func (s *Service) Init() error { return nil }

// Start implements Service
func (s *Service) Start() error { return nil }

// Stop implements Service
func (s *Service) Stop() error { return nil }

// Registry returns the underlying metrics registry
func (s *Service) Registry() *Registry {
	return s.registry
}

// AtomicFloat stores a float64 as its bit pattern in an atomic.Uint64
// Zero value is ready to use and reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add applies delta with a CAS loop and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
