package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	dayStyle         = lipgloss.NewStyle().Bold(true)
	selectedDayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	fieldStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			MarginLeft(2)
)
