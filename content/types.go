package content

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ColorRole tags a line with a semantic color; resolving it to a concrete style is the renderer's job
type ColorRole uint8

const (
	RoleDefault ColorRole = iota
	RolePrompt
	RoleCommand
	RoleOutput
	RoleSuccess
	RoleWarning
	RoleError
	RoleComment
	RoleAccent

	roleCount
)

var roleNames = [roleCount]string{
	RoleDefault: "default",
	RolePrompt:  "prompt",
	RoleCommand: "command",
	RoleOutput:  "output",
	RoleSuccess: "success",
	RoleWarning: "warning",
	RoleError:   "error",
	RoleComment: "comment",
	RoleAccent:  "accent",
}

func (r ColorRole) String() string {
	if r >= roleCount {
		return fmt.Sprintf("role(%d)", uint8(r))
	}
	return roleNames[r]
}

// Roles returns every defined role in declaration order
func Roles() []ColorRole {
	out := make([]ColorRole, roleCount)
	for i := range out {
		out[i] = ColorRole(i)
	}
	return out
}

// ParseColorRole resolves a role name, empty string maps to RoleDefault
func ParseColorRole(s string) (ColorRole, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleDefault, nil
	}
	for i, name := range roleNames {
		if name == s {
			return ColorRole(i), nil
		}
	}
	return RoleDefault, fmt.Errorf("unknown color role %q", s)
}

func (r ColorRole) MarshalYAML() (any, error) {
	return r.String(), nil
}

func (r *ColorRole) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	role, err := ParseColorRole(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = role
	return nil
}

// Line is a single authored line to type, immutable once built
type Line struct {
	Text  string
	Role  ColorRole
	Bold  bool
	Delay time.Duration // Hold before this line starts revealing
}

// Sequence is an ordered script of lines identified by name
type Sequence struct {
	Name  string
	Lines []Line
}

// Empty returns an inert sequence used when a requested name is missing
func Empty(name string) Sequence {
	return Sequence{Name: name}
}

// Empty reports whether the sequence has nothing to type
func (s Sequence) Empty() bool {
	return len(s.Lines) == 0
}

// Runes returns the total rune count across all lines
func (s Sequence) Runes() int {
	n := 0
	for _, l := range s.Lines {
		n += len([]rune(l.Text))
	}
	return n
}
