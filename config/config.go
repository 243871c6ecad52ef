// Package config loads typewall settings from an optional YAML file and command-line flags
//
// Values come from three layers, later layers win:
//   - built-in defaults (Default)
//   - the YAML file given by --config, unknown keys are rejected
//   - explicitly set flags
//
// Range problems are clamped by Normalize; structural problems are reported by Validate
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/typewall/audio"
	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/layout"
	"github.com/lixenwraith/typewall/render"
	"github.com/lixenwraith/typewall/session"
	"github.com/lixenwraith/typewall/typewriter"
)

var ErrInvalid = errors.New("invalid config")

// Config is the complete typewall configuration
type Config struct {
	// Terminals bounds the window count and the live-animation cap
	Terminals TerminalsConfig `yaml:"terminals"`

	// Typing controls the reveal cadence
	Typing TypingConfig `yaml:"typing"`

	// Layout controls arrangement and default window geometry
	Layout LayoutConfig `yaml:"layout"`

	// Cats controls the decorative cats
	Cats CatsConfig `yaml:"cats"`

	// Sound controls keystroke clicks
	Sound SoundConfig `yaml:"sound"`

	// Theme is a built-in theme name
	Theme string `yaml:"theme"`

	// Scripts is an optional directory of extra script files
	Scripts string `yaml:"scripts"`

	// FPS is the screen redraw rate
	FPS int `yaml:"fps"`

	// Seed fixes the random source when non-zero
	Seed uint64 `yaml:"seed"`
}

// TerminalsConfig bounds the window count
type TerminalsConfig struct {
	// Count is the number of windows at startup
	Count int `yaml:"count"`
	Min   int `yaml:"min"`
	Max   int `yaml:"max"`

	// Above Threshold windows only LiveCap of them animate
	Threshold int `yaml:"threshold"`
	LiveCap   int `yaml:"live_cap"`
}

// TypingConfig controls reveal speed and looping
type TypingConfig struct {
	// Speed is nominal chunks per second, 1-20
	Speed     int           `yaml:"speed"`
	Loop      bool          `yaml:"loop"`
	LoopDelay time.Duration `yaml:"loop_delay"`
}

// LayoutConfig controls arrangement
type LayoutConfig struct {
	// Mode is "scattered" or "uniform"
	Mode    string     `yaml:"mode"`
	Window  SizeConfig `yaml:"window"`
	Padding int        `yaml:"padding"`
}

// SizeConfig is a width/height pair in cells
type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CatsConfig controls cat spawning and motion
type CatsConfig struct {
	// Thresholds adds one cat per window count reached
	Thresholds []int         `yaml:"thresholds"`
	Frame      time.Duration `yaml:"frame"`
}

// SoundConfig controls keystroke clicks
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Minimum window size a config or resize may produce
var minWindow = core.Size{Width: 12, Height: 3}

// Default returns the built-in configuration
func Default() Config {
	sc := session.DefaultConfig()
	return Config{
		Terminals: TerminalsConfig{
			Count:     6,
			Min:       sc.MinTerminals,
			Max:       sc.MaxTerminals,
			Threshold: sc.Policy.Threshold,
			LiveCap:   sc.Policy.LiveCap,
		},
		Typing: TypingConfig{
			Speed:     sc.Speed,
			Loop:      sc.Loop,
			LoopDelay: sc.LoopDelay,
		},
		Layout: LayoutConfig{
			Mode:    sc.Mode.String(),
			Window:  SizeConfig{Width: sc.Window.Width, Height: sc.Window.Height},
			Padding: sc.Padding,
		},
		Cats: CatsConfig{
			Thresholds: append([]int(nil), sc.CatThresholds...),
			Frame:      sc.CatFrame,
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  audio.DefaultConfig().Volume,
		},
		Theme: "matrix",
		FPS:   30,
	}
}

// Load reads path over the defaults; an empty path or a missing file yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads one YAML document into cfg, keeping values for absent keys
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Normalize clamps every ranged value into bounds; it never fails
func (c Config) Normalize() Config {
	d := Default()

	c.Terminals.Min = max(c.Terminals.Min, 0)
	c.Terminals.Threshold = max(c.Terminals.Threshold, 0)
	c.Terminals.LiveCap = max(c.Terminals.LiveCap, 0)
	if c.Terminals.Max >= c.Terminals.Min {
		c.Terminals.Count = min(max(c.Terminals.Count, c.Terminals.Min), c.Terminals.Max)
	}

	c.Typing.Speed = typewriter.ClampSpeed(c.Typing.Speed)
	c.Typing.LoopDelay = max(c.Typing.LoopDelay, 0)

	c.Layout.Padding = max(c.Layout.Padding, 0)
	c.Layout.Window.Width = max(c.Layout.Window.Width, minWindow.Width)
	c.Layout.Window.Height = max(c.Layout.Window.Height, minWindow.Height)

	if c.Cats.Frame <= 0 {
		c.Cats.Frame = d.Cats.Frame
	}
	c.Sound.Volume = min(max(c.Sound.Volume, 0), 1)
	c.FPS = min(max(c.FPS, 1), 120)
	return c
}

// Validate reports problems clamping cannot fix
func (c Config) Validate() error {
	if c.Terminals.Min < 0 {
		return fmt.Errorf("%w: terminals.min %d is negative", ErrInvalid, c.Terminals.Min)
	}
	if c.Terminals.Max < c.Terminals.Min {
		return fmt.Errorf("%w: terminals.max %d below terminals.min %d", ErrInvalid, c.Terminals.Max, c.Terminals.Min)
	}
	if _, err := layout.ParseMode(c.Layout.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := render.ThemeByName(c.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, t := range c.Cats.Thresholds {
		if t <= 0 {
			return fmt.Errorf("%w: cat threshold %d must be positive", ErrInvalid, t)
		}
	}
	return nil
}

// Session maps the config onto session settings; call after Validate
func (c Config) Session() session.Config {
	sc := session.DefaultConfig()
	mode, _ := layout.ParseMode(c.Layout.Mode)

	sc.MinTerminals = c.Terminals.Min
	sc.MaxTerminals = c.Terminals.Max
	sc.Policy = layout.Policy{Threshold: c.Terminals.Threshold, LiveCap: c.Terminals.LiveCap}
	sc.Speed = c.Typing.Speed
	sc.Loop = c.Typing.Loop
	sc.LoopDelay = c.Typing.LoopDelay
	sc.Mode = mode
	sc.Window = core.Size{Width: c.Layout.Window.Width, Height: c.Layout.Window.Height}
	sc.MinWindow = minWindow
	sc.Padding = c.Layout.Padding
	sc.CatThresholds = append([]int(nil), c.Cats.Thresholds...)
	sc.CatFrame = c.Cats.Frame
	return sc
}

// Audio maps the config onto click player settings
func (c Config) Audio() audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Sound.Enabled
	ac.Volume = c.Sound.Volume
	return ac
}

// FrameInterval is the redraw period for FPS
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.FPS, 1))
}
