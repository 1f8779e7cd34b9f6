package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups every lipgloss style the view uses.
type Styles struct {
	Title         lipgloss.Style
	Intro         lipgloss.Style
	Label         lipgloss.Style
	Error         lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	SummaryTitle  lipgloss.Style
	Summary       lipgloss.Style
	Help          lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	return Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Intro:         lipgloss.NewStyle().Italic(true),
		Label:         lipgloss.NewStyle().Bold(true),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("#E0245E")),
		Button:        lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()),
		ButtonFocused: lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(accent).Bold(true),
		SummaryTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")).MarginTop(1),
		Summary:       lipgloss.NewStyle().PaddingLeft(2),
		Help:          lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
