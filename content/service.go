package content

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Service owns the content store lifecycle
// Built-in scripts load first, files from the optional directory are appended after them
type Service struct {
	dir    string
	logger *log.Logger
	store  *Store
}

// NewService creates a content service, dir may be empty
func NewService(dir string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		dir:    dir,
		logger: logger,
		store:  NewStore(),
	}
}

// Name implements Service
func (s *Service) Name() string {
	return "content"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *Service) Init() error {
	m := NewManager(s.dir, s.logger)

	if err := m.LoadBuiltins(s.store); err != nil {
		return fmt.Errorf("content init: %w", err)
	}

	if err := m.DiscoverScriptFiles(); err != nil {
		// Continue gracefully with builtins only
		s.logger.Warn("script discovery failed", "err", err)
		return nil
	}

	n, _ := m.LoadAll(s.store)
	s.logger.Info("content loaded", "sequences", s.store.Len(), "from_dir", n)
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	return nil
}

// Store returns the populated store
func (s *Service) Store() *Store {
	return s.store
}
