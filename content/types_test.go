package content

import (
	"strings"
	"testing"
)

func TestParseColorRole(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorRole
		wantErr bool
	}{
		{"", RoleDefault, false},
		{"prompt", RolePrompt, false},
		{"  Error ", RoleError, false},
		{"accent", RoleAccent, false},
		{"chartreuse", RoleDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseColorRole(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorRole(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColorRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorRole_StringRoundTrip(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseColorRole(r.String())
		if err != nil || got != r {
			t.Errorf("role %d: parse(%q) = %v, %v", r, r.String(), got, err)
		}
	}
	if s := ColorRole(200).String(); !strings.HasPrefix(s, "role(") {
		t.Errorf("out of range role string = %q", s)
	}
}

func TestSequence_Runes(t *testing.T) {
	seq := Sequence{Lines: []Line{{Text: "héllo"}, {Text: ""}, {Text: "日本"}}}
	if got := seq.Runes(); got != 7 {
		t.Errorf("Runes = %d, want 7", got)
	}
	if seq.Empty() {
		t.Error("sequence with lines reported empty")
	}
	if !Empty("x").Empty() {
		t.Error("Empty() sequence not empty")
	}
}
