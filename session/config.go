package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/layout"
	"github.com/lixenwraith/typewall/typewriter"
)

var ErrInvalidConfig = errors.New("invalid session config")

// Config holds the tunables of a session
type Config struct {
	MinTerminals int
	MaxTerminals int

	Speed     int // Nominal chunks per second, 1..20
	Loop      bool
	LoopDelay time.Duration

	Policy    layout.Policy
	Mode      layout.Mode
	Viewport  layout.Viewport
	Window    core.Size // Default window size
	MinWindow core.Size // Smallest size a resize may produce
	Padding   int       // Uniform grid cell inset

	CatThresholds []int
	CatFrame      time.Duration
	CatSize       core.Size
}

// DefaultConfig returns the stock session settings
func DefaultConfig() Config {
	return Config{
		MinTerminals:  1,
		MaxTerminals:  10000,
		Speed:         8,
		Loop:          true,
		LoopDelay:     2 * time.Second,
		Policy:        layout.DefaultPolicy(),
		Mode:          layout.ModeScattered,
		Viewport:      layout.Viewport{Width: 160, Height: 48},
		Window:        core.Size{Width: 42, Height: 12},
		MinWindow:     core.Size{Width: 12, Height: 3},
		Padding:       1,
		CatThresholds: []int{5, 25, 100, 500, 2000},
		CatFrame:      100 * time.Millisecond,
		CatSize:       core.Size{Width: 5, Height: 1},
	}
}

// Validate reports structural problems; range problems are clamped by normalize instead
func (c Config) Validate() error {
	if c.MinTerminals < 0 {
		return fmt.Errorf("%w: min terminals %d is negative", ErrInvalidConfig, c.MinTerminals)
	}
	if c.MaxTerminals < c.MinTerminals {
		return fmt.Errorf("%w: max terminals %d below min %d", ErrInvalidConfig, c.MaxTerminals, c.MinTerminals)
	}
	if c.CatFrame <= 0 {
		return fmt.Errorf("%w: cat frame must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c Config) normalize() Config {
	c.Speed = typewriter.ClampSpeed(c.Speed)
	c.LoopDelay = max(c.LoopDelay, 0)
	c.Padding = max(c.Padding, 0)
	c.MinWindow = c.MinWindow.Clamp(core.Size{Width: 1, Height: 1}, core.Size{})
	c.Window = c.Window.Clamp(c.MinWindow, core.Size{})
	c.Policy.LiveCap = max(c.Policy.LiveCap, 0)
	return c
}

// CatTarget is the number of cats for a window count: one per threshold reached
// Monotonic non-decreasing in count whatever the threshold order
func CatTarget(count int, thresholds []int) int {
	n := 0
	for _, t := range thresholds {
		if count >= t {
			n++
		}
	}
	return n
}
