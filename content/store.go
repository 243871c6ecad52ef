package content

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownSequence   = errors.New("unknown sequence")
	ErrDuplicateSequence = errors.New("duplicate sequence")
)

// Store holds named sequences in registration order
// Sequences are copied on the way in, so callers cannot mutate stored lines
type Store struct {
	mu    sync.RWMutex
	byKey map[string]Sequence
	names []string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		byKey: make(map[string]Sequence),
	}
}

// Register adds a sequence; names must be unique and non-empty
func (s *Store) Register(seq Sequence) error {
	if seq.Name == "" {
		return fmt.Errorf("register: sequence name is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byKey[seq.Name]; exists {
		return fmt.Errorf("register %q: %w", seq.Name, ErrDuplicateSequence)
	}

	s.byKey[seq.Name] = Sequence{Name: seq.Name, Lines: slices.Clone(seq.Lines)}
	s.names = append(s.names, seq.Name)
	return nil
}

// Sequence returns the named sequence
func (s *Store) Sequence(name string) (Sequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.byKey[name]
	if !ok {
		return Sequence{}, fmt.Errorf("%q: %w", name, ErrUnknownSequence)
	}
	return seq, nil
}

// Names returns sequence names in registration order
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.names)
}

// Len returns the number of stored sequences
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}
