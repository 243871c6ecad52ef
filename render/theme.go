package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/typewall/content"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Theme maps semantic roles and chrome elements to terminal styles
type Theme struct {
	Name string

	Background  tcell.Style
	Frame       tcell.Style
	FocusFrame  tcell.Style
	Title       tcell.Style
	Placeholder tcell.Style
	Cursor      tcell.Style
	Cat         tcell.Style
	Status      tcell.Style

	Roles map[content.ColorRole]tcell.Style
}

// Resolve returns the style for a line role; unknown roles fall back to the default role
func (t Theme) Resolve(role content.ColorRole, bold bool) tcell.Style {
	style, ok := t.Roles[role]
	if !ok {
		style = t.Roles[content.RoleDefault]
	}
	if bold {
		style = style.Bold(true)
	}
	return style
}

func themeStyle(bg tcell.Color, fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Background(bg).Foreground(fg)
}

func newTheme(name string, bg tcell.Color, frame, focus, dim, text, status tcell.Color, roles map[content.ColorRole]tcell.Color) Theme {
	t := Theme{
		Name:        name,
		Background:  themeStyle(bg, text),
		Frame:       themeStyle(bg, frame),
		FocusFrame:  themeStyle(bg, focus).Bold(true),
		Title:       themeStyle(bg, focus),
		Placeholder: themeStyle(bg, dim).Dim(true),
		Cursor:      themeStyle(bg, focus).Reverse(true),
		Cat:         themeStyle(bg, focus).Bold(true),
		Status:      themeStyle(status, bg),
		Roles:       make(map[content.ColorRole]tcell.Style, len(roles)+1),
	}
	t.Roles[content.RoleDefault] = themeStyle(bg, text)
	for role, fg := range roles {
		t.Roles[role] = themeStyle(bg, fg)
	}
	return t
}

var themes = []Theme{
	newTheme("matrix",
		tcell.NewRGBColor(0, 8, 0),      // Near-black green
		tcell.NewRGBColor(0, 130, 0),    // Dark green frame
		tcell.NewRGBColor(50, 255, 50),  // Bright green focus
		tcell.NewRGBColor(0, 70, 0),     // Placeholder
		tcell.NewRGBColor(0, 200, 0),    // Body text
		tcell.NewRGBColor(0, 130, 0),    // Status bar
		map[content.ColorRole]tcell.Color{
			content.RolePrompt:  tcell.NewRGBColor(50, 255, 50),
			content.RoleCommand: tcell.NewRGBColor(180, 255, 180),
			content.RoleOutput:  tcell.NewRGBColor(0, 200, 0),
			content.RoleSuccess: tcell.NewRGBColor(120, 255, 120),
			content.RoleWarning: tcell.NewRGBColor(200, 255, 0),
			content.RoleError:   tcell.NewRGBColor(255, 80, 80),
			content.RoleComment: tcell.NewRGBColor(0, 110, 0),
			content.RoleAccent:  tcell.NewRGBColor(0, 255, 180),
		}),
	newTheme("amber",
		tcell.NewRGBColor(16, 8, 0),
		tcell.NewRGBColor(160, 90, 0),
		tcell.NewRGBColor(255, 176, 0),
		tcell.NewRGBColor(90, 50, 0),
		tcell.NewRGBColor(230, 150, 0),
		tcell.NewRGBColor(160, 90, 0),
		map[content.ColorRole]tcell.Color{
			content.RolePrompt:  tcell.NewRGBColor(255, 200, 60),
			content.RoleCommand: tcell.NewRGBColor(255, 220, 140),
			content.RoleOutput:  tcell.NewRGBColor(230, 150, 0),
			content.RoleSuccess: tcell.NewRGBColor(255, 200, 0),
			content.RoleWarning: tcell.NewRGBColor(255, 120, 0),
			content.RoleError:   tcell.NewRGBColor(255, 60, 30),
			content.RoleComment: tcell.NewRGBColor(130, 80, 0),
			content.RoleAccent:  tcell.NewRGBColor(255, 240, 180),
		}),
	newTheme("ocean",
		tcell.NewRGBColor(26, 27, 38),    // Tokyo Night background
		tcell.NewRGBColor(60, 100, 200),  // Dark blue frame
		tcell.NewRGBColor(140, 190, 255), // Bright blue focus
		tcell.NewRGBColor(50, 55, 80),
		tcell.NewRGBColor(190, 200, 230),
		tcell.NewRGBColor(100, 150, 255),
		map[content.ColorRole]tcell.Color{
			content.RolePrompt:  tcell.NewRGBColor(125, 207, 255),
			content.RoleCommand: tcell.NewRGBColor(192, 202, 245),
			content.RoleOutput:  tcell.NewRGBColor(169, 177, 214),
			content.RoleSuccess: tcell.NewRGBColor(158, 206, 106),
			content.RoleWarning: tcell.NewRGBColor(224, 175, 104),
			content.RoleError:   tcell.NewRGBColor(247, 118, 142),
			content.RoleComment: tcell.NewRGBColor(86, 95, 137),
			content.RoleAccent:  tcell.NewRGBColor(187, 154, 247),
		}),
	newTheme("mono",
		tcell.ColorBlack,
		tcell.ColorGray,
		tcell.ColorWhite,
		tcell.ColorDarkGray,
		tcell.ColorSilver,
		tcell.ColorSilver,
		map[content.ColorRole]tcell.Color{
			content.RolePrompt:  tcell.ColorWhite,
			content.RoleCommand: tcell.ColorWhite,
			content.RoleComment: tcell.ColorGray,
			content.RoleError:   tcell.ColorWhite,
		}),
}

// Themes returns the built-in themes in cycling order
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ThemeNames lists the built-in theme names
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName looks up a built-in theme, case-insensitive
func ThemeByName(name string) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// NextTheme returns the theme after name, wrapping; unknown names restart at the first theme
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
