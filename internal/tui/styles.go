package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(2).
			PaddingTop(1)

	gallowsStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			PaddingLeft(2)

	wordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	loseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)
