// Package ui renders the presentational pieces of the task page.
// Every function here is a pure render over already-derived data.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	highlight = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	danger    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	success   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(highlight)

	subtitleStyle = lipgloss.NewStyle().Foreground(subtle)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(success).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Underline(true)

	tabStyle = lipgloss.NewStyle().Foreground(subtle)

	cursorStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true)

	doneStyle = lipgloss.NewStyle().Foreground(subtle).Strikethrough(true)

	descStyle = lipgloss.NewStyle().Foreground(subtle).PaddingLeft(6)

	helpStyle = lipgloss.NewStyle().Foreground(subtle)
)
