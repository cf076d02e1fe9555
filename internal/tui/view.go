package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/report"
	"github.com/michaelscutari/dutop/internal/rollup"
)

const (
	colGap       = 2
	sizeColWidth = 9
	pctColWidth  = 6 // "100.0%"
	minNameWidth = 10
	minRows      = 5
	emptyNotice  = "directory is empty or unreadable"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines += 1 + strings.Count(line, "\n")
	}

	s := m.state

	writeLine(titleStyle.Render("dutop - Disk Usage Browser"))
	writeLine(pathStyle.Render(truncateMiddle(s.Path, max(minNameWidth, m.width-2))))

	stats := fmt.Sprintf("Total: %s in %s items", humanize.Bytes(s.TotalSize), humanize.Comma(int64(len(s.Entries))))
	if sel, ok := s.Selected(); ok {
		stats += fmt.Sprintf(" | Sel: %s (%s)", sel.Name, humanize.Bytes(sel.Size))
	}
	writeLine(statsStyle.Render(stats))

	if m.busy {
		writeLine(fmt.Sprintf("%s Scanning %s...", m.spinner.View(), m.pending))
	}

	nameWidth := m.nameWidth()
	header := fmt.Sprintf("%*s%s%-*s%s%*s%s%s",
		sizeColWidth, "SIZE",
		gapStr(),
		report.BarWidth, "USAGE",
		gapStr(),
		pctColWidth, "SHARE",
		gapStr(),
		"NAME",
	)
	writeLine(headerStyle.Render(header))

	helpView := helpStyle.Render(m.help.View(m.keys))
	footerLines := 1 + strings.Count(helpView, "\n")
	visibleRows := m.height - headerLines - footerLines
	if visibleRows < minRows {
		visibleRows = minRows
	}

	if len(s.Entries) == 0 {
		b.WriteString(emptyStyle.Render(emptyNotice))
		b.WriteString("\n")
		for i := 1; i < visibleRows; i++ {
			b.WriteString("\n")
		}
	} else {
		startIdx, endIdx := scrollWindow(s.Cursor, len(s.Entries), visibleRows)
		for i := startIdx; i < endIdx; i++ {
			b.WriteString(m.formatEntry(s.Entries[i], i == s.Cursor, nameWidth))
			b.WriteString("\n")
		}
		for i := endIdx - startIdx; i < visibleRows; i++ {
			b.WriteString("\n")
		}
	}

	if len(s.Entries) > 0 && s.Cursor >= 0 {
		b.WriteString(pathStyle.Render(fmt.Sprintf("[%d/%d]", s.Cursor+1, len(s.Entries))))
	}
	b.WriteString(helpView)

	return b.String()
}

// scrollWindow returns the [start, end) slice of rows that keeps cursor visible.
func scrollWindow(cursor, total, rows int) (int, int) {
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	return start, min(total, start+rows)
}

func (m *Model) nameWidth() int {
	used := sizeColWidth + report.BarWidth + pctColWidth + colGap*3
	w := m.width - used
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

func (m *Model) formatEntry(e entry.Entry, selected bool, nameWidth int) string {
	size := humanize.Bytes(e.Size)
	pct := rollup.Percent(e.Size, m.state.TotalSize)

	rawName := e.Name
	switch {
	case e.IsDir:
		rawName += "/"
	case e.Kind == entry.KindSymlink:
		rawName += "@"
	}
	rawName = truncateRight(rawName, nameWidth)

	if selected {
		line := fmt.Sprintf("%*s%s%s%s%5.1f%%%s%s",
			sizeColWidth, size,
			gapStr(),
			report.Bar(pct, report.BarWidth),
			gapStr(),
			pct,
			gapStr(),
			rawName,
		)
		return selectedStyle.Render(line)
	}

	sty := sizeStyle(e.Size)
	var styledName string
	switch {
	case e.IsDir:
		styledName = dirStyle.Render(rawName)
	case e.Kind == entry.KindSymlink:
		styledName = symlinkStyle.Render(rawName)
	default:
		styledName = sty.Render(rawName)
	}

	return fmt.Sprintf("%s%s%s%s%5.1f%%%s%s",
		sty.Render(fmt.Sprintf("%*s", sizeColWidth, size)),
		gapStr(),
		formatBar(pct),
		gapStr(),
		pct,
		gapStr(),
		styledName,
	)
}

func formatBar(pct float64) string {
	bar := report.Bar(pct, report.BarWidth)
	filled := strings.TrimRight(bar, "░")
	empty := bar[len(filled):]
	return barFilledStyle.Render(filled) + barEmptyStyle.Render(empty)
}

func gapStr() string {
	return strings.Repeat(" ", colGap)
}

func truncateRight(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func truncateMiddle(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
