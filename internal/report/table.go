// Package report renders an inventory as a one-shot ranked report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/rollup"
)

// Report is an inventory together with the directory it describes.
type Report struct {
	Root      string          `json:"root"`
	Inventory entry.Inventory `json:"inventory"`
}

// Options controls table rendering.
type Options struct {
	// Top limits the number of rows (0 = all).
	Top int
	// NoColor disables ANSI colors even on a terminal.
	NoColor bool
}

const (
	ruleWidth   = 70
	emptyNotice = "directory is empty or unreadable"
)

// PrintTable writes the ranked inventory in human-readable table form.
// Colors follow the terminal capabilities of w. Output is buffered and the
// first write error is returned.
func PrintTable(w io.Writer, r Report, opts Options) error {
	renderer := lipgloss.NewRenderer(w)
	if opts.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	headStyle := renderer.NewStyle().Bold(true)
	mutedStyle := renderer.NewStyle().Faint(true)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, headStyle.Render("Directory: "+r.Root))

	inv := r.Inventory
	if inv.Empty() {
		fmt.Fprintln(bw, emptyNotice)
		return bw.Flush()
	}

	fmt.Fprintf(bw, "%12s │ %-*s │ %7s │ %s\n", "SIZE", BarWidth, "USAGE", "SHARE", "NAME")
	fmt.Fprintln(bw, strings.Repeat("─", ruleWidth))

	rows := inv.Entries
	if opts.Top > 0 && len(rows) > opts.Top {
		rows = rows[:opts.Top]
	}

	for _, e := range rows {
		pct := rollup.Percent(e.Size, inv.TotalSize)
		style := renderer.NewStyle().Foreground(SizeColor(e.Size))

		sizeCol := fmt.Sprintf("%12s", humanize.Bytes(e.Size))
		pctCol := fmt.Sprintf("%6.1f%%", pct)
		name := e.Name
		if e.IsDir {
			name += "/"
		}

		fmt.Fprintf(bw, "%s │ %s │ %s │ %s\n",
			style.Render(sizeCol), Bar(pct, BarWidth), pctCol, style.Render(name))
	}

	fmt.Fprintln(bw, strings.Repeat("─", ruleWidth))
	footer := fmt.Sprintf("Total: %s in %s items", humanize.Bytes(inv.TotalSize), humanize.Comma(int64(inv.Len())))
	if len(rows) < inv.Len() {
		footer += fmt.Sprintf(" (showing top %d)", len(rows))
	}
	fmt.Fprintln(bw, mutedStyle.Render(footer))

	// bufio.Writer keeps its first error; Flush reports it.
	return bw.Flush()
}
