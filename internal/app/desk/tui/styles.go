package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1F6FB2")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F6FB2"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	deliveredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E9E44"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D9822B"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1F6FB2")).
			Padding(1, 2)

	alertStyle = modalStyle.BorderForeground(lipgloss.Color("#D9822B"))

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F6FB2"))
)
