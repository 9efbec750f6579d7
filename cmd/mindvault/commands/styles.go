// ABOUTME: Lipgloss styles shared by all CLI commands
// ABOUTME: Small calm palette; errors red, headers bold, dates muted
package commands

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#89b4fa"))

	therapistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94e2d5"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Italic(true)
)
