// Package ui renders suggestions, created tasks and ClickUp listings for
// the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252")
	ColorCyan      = lipgloss.Color("87")

	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)
	StyleLabel   = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// priority badges, keyed by ClickUp priority name
	priorityStyles = map[string]lipgloss.Style{
		"urgent": lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		"high":   lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
		"normal": lipgloss.NewStyle().Foreground(ColorCyan),
		"low":    lipgloss.NewStyle().Foreground(ColorSecondary),
	}
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// PriorityBadge renders a priority name in its color; unknown names are plain.
func PriorityBadge(priority string) string {
	if s, ok := priorityStyles[priority]; ok {
		return s.Render(priority)
	}
	return priority
}
