package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/michaelscutari/dutop/internal/report"
)

var (
	// Colors
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorSecondary = lipgloss.Color("245") // Gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorMuted     = lipgloss.Color("240") // Dark gray

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	statsStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorMuted)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(colorPrimary)

	dirStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	symlinkStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	barFilledStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1)
)

// sizeStyle colors a size by magnitude, matching the one-shot report.
func sizeStyle(size uint64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(report.SizeColor(size))
}
