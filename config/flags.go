package config

import (
	"github.com/spf13/pflag"
)

// Flags holds command-line overrides
type Flags struct {
	ConfigPath string
	Debug      bool

	count   int
	max     int
	speed   int
	layout  string
	theme   string
	scripts string
	seed    uint64
	sound   bool
	loop    bool
}

// RegisterFlags binds typewall flags on fs; defaults are shown from Default
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{}

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to YAML config file")
	fs.BoolVar(&f.Debug, "debug", false, "write debug log to logs/typewall.log")
	fs.IntVarP(&f.count, "count", "n", d.Terminals.Count, "number of terminal windows")
	fs.IntVar(&f.max, "max", d.Terminals.Max, "upper bound for the window count")
	fs.IntVarP(&f.speed, "speed", "s", d.Typing.Speed, "typing speed in chunks per second (1-20)")
	fs.StringVarP(&f.layout, "layout", "l", d.Layout.Mode, "layout mode: scattered or uniform")
	fs.StringVarP(&f.theme, "theme", "t", d.Theme, "color theme: matrix, amber, ocean, mono")
	fs.StringVar(&f.scripts, "scripts", d.Scripts, "directory of extra script files")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "random seed, 0 picks one from system entropy")
	fs.BoolVar(&f.sound, "sound", d.Sound.Enabled, "start with keystroke clicks unmuted")
	fs.BoolVar(&f.loop, "loop", d.Typing.Loop, "restart scripts after they finish")
	return f
}

// Apply copies the flags the user actually set onto cfg
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("count") {
		cfg.Terminals.Count = f.count
	}
	if fs.Changed("max") {
		cfg.Terminals.Max = f.max
	}
	if fs.Changed("speed") {
		cfg.Typing.Speed = f.speed
	}
	if fs.Changed("layout") {
		cfg.Layout.Mode = f.layout
	}
	if fs.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fs.Changed("scripts") {
		cfg.Scripts = f.scripts
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("sound") {
		cfg.Sound.Enabled = f.sound
	}
	if fs.Changed("loop") {
		cfg.Typing.Loop = f.loop
	}
}
