package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/cpfgen/pkg/pattern"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name    string
	Header  lipgloss.Style
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons marks valid CPFs, invalid ones, warnings such as an early
// stop, and neutral counts.
type ThemeIcons struct {
	Valid   string
	Invalid string
	Warn    string
	Info    string
}

// DefaultTheme is the 256-color theme used unless --theme says otherwise.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Icons:   ThemeIcons{Valid: "✓", Invalid: "✗", Warn: "⚠", Info: "●"},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Header:  lipgloss.NewStyle().Bold(true),
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Icons:   ThemeIcons{Valid: "✓", Invalid: "✗", Warn: "!", Info: "·"},
	}
}

// MonoTheme is used with --no-color or NO_COLOR: no styling, ASCII icons.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:    "mono",
		Header:  plain,
		Primary: plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
		Muted:   plain,
		Icons:   ThemeIcons{Valid: "+", Invalid: "x", Warn: "!", Info: "*"},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// kindStyle maps a pattern item kind to its icon and style.
func (t Theme) kindStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case pattern.KindSuccess:
		return t.Icons.Valid, t.Success
	case pattern.KindError:
		return t.Icons.Invalid, t.Error
	case pattern.KindWarning:
		return t.Icons.Warn, t.Warning
	default:
		return t.Icons.Info, t.Primary
	}
}
