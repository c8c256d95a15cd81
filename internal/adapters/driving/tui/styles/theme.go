// Package styles provides colour themes and styling for the TUI and the
// styled CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette shared by the TUI and styled CLI output.
// Foreground matches the header bars drawn in exported PDFs.
type Theme struct {
	Primary    lipgloss.Color // titles and the selected row
	Secondary  lipgloss.Color // group keys
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color // exports in progress
	Error      lipgloss.Color
	Bar        lipgloss.Color // status bar and group header background
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2F6FDB"),
		Secondary:  lipgloss.Color("#0FA3B1"),
		Foreground: lipgloss.Color("#E6E9EE"),
		Muted:      lipgloss.Color("#8A8F98"),
		Success:    lipgloss.Color("#7BC47F"),
		Warning:    lipgloss.Color("#F2C14E"),
		Error:      lipgloss.Color("#E5636A"),
		Bar:        lipgloss.Color("#23262D"),
	}
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// GroupHeader renders a group's key line like the PDF header bar.
	GroupHeader lipgloss.Style

	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		GroupHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			Background(theme.Bar).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
