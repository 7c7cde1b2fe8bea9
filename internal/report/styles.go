// Package report renders the human-readable analysis summary using lipgloss.
package report

import "github.com/charmbracelet/lipgloss"

var (
	// goodColor marks strong deals.
	goodColor = lipgloss.Color("#4ECDC4") // Teal
	// okayColor marks borderline deals.
	okayColor = lipgloss.Color("#FFE66D") // Yellow
	// badColor marks poor deals.
	badColor = lipgloss.Color("#FF6B6B") // Red
	// subtleColor is used for less prominent detail.
	subtleColor = lipgloss.Color("#666666") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(goodColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	goodStyle = lipgloss.NewStyle().
			Foreground(goodColor)

	okayStyle = lipgloss.NewStyle().
			Foreground(okayColor)

	badStyle = lipgloss.NewStyle().
			Foreground(badColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)
