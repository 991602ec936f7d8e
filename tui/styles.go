package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the browser chrome.
var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C6F"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			Padding(1, 2)
)
