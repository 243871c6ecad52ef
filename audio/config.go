package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Config holds click player settings
type Config struct {
	Enabled    bool            // Unmuted at start
	Volume     float64         // Master volume 0.0-1.0
	MinGap     time.Duration   // Clicks closer than this are dropped
	SampleRate beep.SampleRate // Speaker sample rate
	Buffer     time.Duration   // Speaker buffer length
}

// DefaultConfig returns muted defaults
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     0.4,
		MinGap:     35 * time.Millisecond,
		SampleRate: beep.SampleRate(48000),
		Buffer:     50 * time.Millisecond,
	}
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	c.Volume = min(max(c.Volume, 0), 1)
	c.MinGap = max(c.MinGap, 0)
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.Buffer <= 0 {
		c.Buffer = d.Buffer
	}
	return c
}
