package typewriter

import (
	"time"

	"github.com/lixenwraith/typewall/content"
)

// Options configure a new reveal run
type Options struct {
	Loop      bool
	LoopDelay time.Duration
}

// State is the reveal cursor for one window
// Revealed holds one entry per completed line plus a truncated entry for the line in progress
type State struct {
	Sequence content.Sequence

	LineIndex  int
	CharOffset int // Runes of the current line already revealed
	Revealed   []content.Line

	Active    bool
	Loop      bool
	LoopDelay time.Duration

	// Hold is the remaining pause before reveal resumes (line delay or loop wait)
	Hold time.Duration
	// Waiting is set while holding at the end of a looping sequence
	Waiting bool
	// Paused freezes the state without losing progress
	Paused bool
	// Inert marks a state built from an empty sequence, it never animates
	Inert bool
}

// New builds the initial state for seq
// An empty sequence yields an inert state that never becomes active
func New(seq content.Sequence, opts Options) State {
	s := State{
		Sequence:  seq,
		Loop:      opts.Loop,
		LoopDelay: max(opts.LoopDelay, 0),
	}
	if seq.Empty() {
		s.Inert = true
		return s
	}
	return rewind(s)
}

// Reset rewinds to the first line and reactivates regardless of loop setting
// Inert states stay inactive since there is nothing to type
func Reset(s State) State {
	if s.Inert {
		s.LineIndex, s.CharOffset, s.Revealed = 0, 0, nil
		s.Hold, s.Waiting, s.Active = 0, false, false
		return s
	}
	return rewind(s)
}

// Reassign swaps the sequence of a running state and resets it
func Reassign(s State, seq content.Sequence) State {
	s.Sequence = seq
	s.Inert = seq.Empty()
	return Reset(s)
}

// Pause freezes s, Advance becomes a no-op until Resume
func Pause(s State) State {
	s.Paused = true
	return s
}

// Resume lifts a Pause
func Resume(s State) State {
	s.Paused = false
	return s
}

// Done reports a finished non-looping run
func Done(s State) bool {
	return !s.Active && !s.Inert
}

// RevealedChars counts revealed runes across all lines
func RevealedChars(s State) int {
	n := 0
	for _, l := range s.Revealed {
		n += len([]rune(l.Text))
	}
	return n
}

func rewind(s State) State {
	s.LineIndex = 0
	s.CharOffset = 0
	s.Revealed = nil
	s.Waiting = false
	s.Active = true
	s.Hold = s.Sequence.Lines[0].Delay
	return s
}
