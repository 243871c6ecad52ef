package audio

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Service wraps ClickPlayer as a Service
// Handles graceful degradation when no audio backend is available
type Service struct {
	cfg    Config
	logger *log.Logger

	mixer    *beep.Mixer
	player   *ClickPlayer
	disabled atomic.Bool
	started  bool
}

// NewService creates an audio service, nil logger discards
func NewService(cfg Config, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{cfg: cfg.normalize(), logger: logger}
}

// Name implements Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// The player exists from here on so callers can hold it even if the speaker never opens
func (s *Service) Init() error {
	s.mixer = &beep.Mixer{}
	s.player = NewClickPlayer(s.cfg, s.mixer, speakerLocker{})
	return nil
}

// Start implements Service
// Opens the speaker; on failure the service goes silent and reports no error
func (s *Service) Start() error {
	if s.player == nil || s.started {
		return nil
	}
	if err := speaker.Init(s.cfg.SampleRate, s.cfg.SampleRate.N(s.cfg.Buffer)); err != nil {
		s.disabled.Store(true)
		s.player.SetMuted(true)
		s.logger.Warn("audio unavailable, running silent", "err", err)
		return nil
	}
	speaker.Play(s.mixer)
	s.started = true
	s.logger.Debug("audio started", "rate", int(s.cfg.SampleRate), "muted", s.player.IsMuted())
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	if !s.started {
		return nil
	}
	s.player.clear()
	speaker.Clear()
	s.started = false
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the click player, nil before Init
func (s *Service) Player() *ClickPlayer {
	return s.player
}

// ToggleMute flips mute unless the backend is unavailable, returns true if now audible
func (s *Service) ToggleMute() bool {
	if s.disabled.Load() || s.player == nil {
		return false
	}
	return s.player.ToggleMute()
}

type speakerLocker struct{}

func (speakerLocker) Lock()   { speaker.Lock() }
func (speakerLocker) Unlock() { speaker.Unlock() }
