package main

import "github.com/charmbracelet/lipgloss"

// Terminal styles for command output, matching the default palette.
var (
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00e5ff"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00e5ff")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff2bd6")).
			Bold(true)
)

// swatchStyle renders a block of the given hex color for palette listings.
func swatchStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex))
}
