package tui

import "github.com/charmbracelet/lipgloss"

var (
	Green    = lipgloss.Color("#00FF41")
	DimGreen = lipgloss.Color("#008F11")
	Red      = lipgloss.Color("#FF5555")
	White    = lipgloss.Color("#e0e0e0")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true).
			MarginLeft(2)

	StatusStyle = lipgloss.NewStyle().
			Foreground(DimGreen).
			MarginLeft(2)

	PromptStyle = lipgloss.NewStyle().
			Foreground(White).
			MarginLeft(2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true).
			MarginLeft(2)

	FooterStyle = lipgloss.NewStyle().
			Foreground(DimGreen).
			Padding(1, 2)
)
