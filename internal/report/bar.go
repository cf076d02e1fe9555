package report

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarWidth is the number of cells in a usage bar.
const BarWidth = 20

// Size thresholds for coloring, in decimal units.
const (
	GB    uint64 = 1_000_000_000
	MB100 uint64 = 100_000_000
	MB10  uint64 = 10_000_000
	MB1   uint64 = 1_000_000
)

// Bar renders pct (0-100) as width cells of filled and empty blocks.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	filled := int(math.Round(pct / 100 * float64(width)))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// SizeColor maps a byte count to the color used for its row.
func SizeColor(size uint64) lipgloss.Color {
	switch {
	case size >= GB:
		return lipgloss.Color("9") // Bright red
	case size >= MB100:
		return lipgloss.Color("3") // Yellow
	case size >= MB10:
		return lipgloss.Color("2") // Green
	case size >= MB1:
		return lipgloss.Color("6") // Cyan
	default:
		return lipgloss.Color("7") // White
	}
}
