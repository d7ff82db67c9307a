package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Focus     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Checked   lipgloss.Style
	Unchecked lipgloss.Style
	Group     lipgloss.Style
}

// ThemeByName returns the named theme, falling back to DefaultTheme.
func ThemeByName(name string) Theme {
	if theme, ok := Themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return theme
	}
	return DefaultTheme
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:     theme,
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Focus:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Selected)).Bold(true),
		Unchecked: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Group:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true),
	}
}
