package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/typewall/audio"
	"github.com/lixenwraith/typewall/config"
	"github.com/lixenwraith/typewall/content"
	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/engine"
	"github.com/lixenwraith/typewall/render"
	"github.com/lixenwraith/typewall/service"
	"github.com/lixenwraith/typewall/session"
	"github.com/lixenwraith/typewall/status"
	"github.com/lixenwraith/typewall/vmath"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("typewall", pflag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	flags.Apply(fs, &cfg)
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, logFile := setupLogging(flags.Debug)
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Info("starting", "count", cfg.Terminals.Count, "layout", cfg.Layout.Mode, "theme", cfg.Theme, "seed", cfg.Seed)

	hub := service.NewHub(logger)
	statusSvc := status.NewService()
	contentSvc := content.NewService(cfg.Scripts, logger)
	audioSvc := audio.NewService(cfg.Audio(), logger)
	for _, svc := range []service.Service{statusSvc, contentSvc, audioSvc} {
		if err := hub.Register(svc); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if err := hub.InitAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer hub.StopAll()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	screen.EnableMouse()
	screen.HideCursor()
	defer screen.Fini()

	// Restore the terminal before reporting a crash from any goroutine
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTYPEWALL CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
	core.SetCrashHandler(crash)
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	rng := vmath.NewEntropyRand()
	if cfg.Seed != 0 {
		rng = vmath.NewFastRand(cfg.Seed)
	}

	clicks := audioSvc.Player()
	sess, err := session.New(cfg.Session(), session.Options{
		Clock:   engine.NewRealClock(),
		Content: contentSvc.Store(),
		Rand:    rng,
		Logger:  logger,
		Status:  statusSvc.Registry(),
		OnChunk: func(_ string, runes int) { clicks.Play(runes) },
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.Stop()

	theme, _ := render.ThemeByName(cfg.Theme)
	a := &app{
		screen:   screen,
		sess:     sess,
		renderer: render.NewRenderer(theme),
		clicks:   audioSvc,
		registry: statusSvc.Registry(),
		logger:   logger,
		frame:    cfg.FrameInterval(),
	}
	a.resize()
	sess.SetCount(cfg.Terminals.Count)
	a.run()

	logger.Info("exiting", "stats", statusSvc.Registry().Format())
	return 0
}
