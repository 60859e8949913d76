package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HSL palette.
	colorBrand  = lipgloss.Color("#003B71")
	colorAccent = lipgloss.Color("#00A3AD")
	colorSubtle = lipgloss.Color("#666666")
	colorError  = lipgloss.Color("#FF6B6B")
	colorOK     = lipgloss.Color("#A3BE8C")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorBrand).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorAccent).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorOK)
)
