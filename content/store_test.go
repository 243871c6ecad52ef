package content

import (
	"errors"
	"testing"
)

func TestStore_RegisterAndLookup(t *testing.T) {
	s := NewStore()

	for _, name := range []string{"b", "a", "c"} {
		if err := s.Register(Sequence{Name: name, Lines: []Line{{Text: name}}}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	names := s.Names()
	want := []string{"b", "a", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names = %v, want registration order %v", names, want)
		}
	}

	seq, err := s.Sequence("a")
	if err != nil {
		t.Fatalf("Sequence(a): %v", err)
	}
	if seq.Lines[0].Text != "a" {
		t.Errorf("got line %q", seq.Lines[0].Text)
	}
}

func TestStore_UnknownSequence(t *testing.T) {
	s := NewStore()
	_, err := s.Sequence("missing")
	if !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("err = %v, want ErrUnknownSequence", err)
	}
}

func TestStore_Duplicate(t *testing.T) {
	s := NewStore()
	if err := s.Register(Sequence{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Register(Sequence{Name: "x"}); !errors.Is(err, ErrDuplicateSequence) {
		t.Errorf("err = %v, want ErrDuplicateSequence", err)
	}
	if err := s.Register(Sequence{}); err == nil {
		t.Error("empty name accepted")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_RegisterCopiesLines(t *testing.T) {
	s := NewStore()
	lines := []Line{{Text: "original"}}
	if err := s.Register(Sequence{Name: "x", Lines: lines}); err != nil {
		t.Fatal(err)
	}
	lines[0].Text = "mutated"

	seq, _ := s.Sequence("x")
	if seq.Lines[0].Text != "original" {
		t.Errorf("stored line changed to %q", seq.Lines[0].Text)
	}
}

func TestStore_NamesIsCopy(t *testing.T) {
	s := NewStore()
	_ = s.Register(Sequence{Name: "x"})
	names := s.Names()
	names[0] = "y"
	if s.Names()[0] != "x" {
		t.Error("Names exposed internal slice")
	}
}
