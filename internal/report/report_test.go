package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/michaelscutari/dutop/internal/entry"
)

func sampleReport() Report {
	return Report{
		Root: "/data",
		Inventory: entry.Inventory{
			Entries: []entry.Entry{
				{Path: "/data/big.log", Name: "big.log", Size: 5_000_000},
				{Path: "/data/sub", Name: "sub", Size: 3_000_000, IsDir: true, Kind: entry.KindDir},
				{Path: "/data/small.txt", Name: "small.txt", Size: 120},
			},
			TotalSize: 8_000_120,
		},
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{-5, 0},
		{2.4, 0},
		{3, 1},
		{50, 10},
		{100, 20},
		{250, 20},
	}
	for _, c := range cases {
		bar := Bar(c.pct, BarWidth)
		if n := utf8.RuneCountInString(bar); n != BarWidth {
			t.Fatalf("Bar(%v) has %d cells", c.pct, n)
		}
		if got := strings.Count(bar, "█"); got != c.filled {
			t.Fatalf("Bar(%v) filled %d, want %d", c.pct, got, c.filled)
		}
	}
	if Bar(50, 0) != "" {
		t.Fatalf("zero width bar should be empty")
	}
}

func TestSizeColorThresholds(t *testing.T) {
	if SizeColor(GB) != SizeColor(5*GB) || SizeColor(GB) == SizeColor(GB-1) {
		t.Fatalf("GB threshold misplaced")
	}
	if SizeColor(MB1) == SizeColor(MB1-1) {
		t.Fatalf("MB threshold misplaced")
	}
}

func TestPrintTableOrderAndTotals(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, sampleReport(), Options{NoColor: true}); err != nil {
		t.Fatalf("print table: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ANSI escapes with NoColor: %q", out)
	}
	big := strings.Index(out, "big.log")
	sub := strings.Index(out, "sub/")
	small := strings.Index(out, "small.txt")
	if big < 0 || sub < 0 || small < 0 || !(big < sub && sub < small) {
		t.Fatalf("rows out of order:\n%s", out)
	}
	if !strings.Contains(out, "62.5%") || !strings.Contains(out, "37.5%") {
		t.Fatalf("missing percentages:\n%s", out)
	}
	if !strings.Contains(out, "Total: 8.0 MB in 3 items") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestPrintTableTopAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, sampleReport(), Options{Top: 1, NoColor: true}); err != nil {
		t.Fatalf("print table: %v", err)
	}
	if strings.Contains(buf.String(), "small.txt") || !strings.Contains(buf.String(), "showing top 1") {
		t.Fatalf("top not applied:\n%s", buf.String())
	}

	buf.Reset()
	if err := PrintTable(&buf, Report{Root: "/nothing"}, Options{NoColor: true}); err != nil {
		t.Fatalf("print empty: %v", err)
	}
	if !strings.Contains(buf.String(), "empty or unreadable") {
		t.Fatalf("missing empty notice:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrintTableReportsWriteErrors(t *testing.T) {
	reports := map[string]Report{
		"ranked": sampleReport(),
		"empty":  {Root: "/nothing"},
	}
	for name, r := range reports {
		if err := PrintTable(failingWriter{}, r, Options{NoColor: true}); err == nil {
			t.Fatalf("%s: expected write error", name)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("print json: %v", err)
	}

	var decoded struct {
		Root      string `json:"root"`
		Inventory struct {
			Entries []struct {
				Name  string `json:"name"`
				Size  uint64 `json:"size"`
				IsDir bool   `json:"is_directory"`
			} `json:"entries"`
			TotalSize uint64 `json:"total_size"`
		} `json:"inventory"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Inventory.TotalSize != 8_000_120 || len(decoded.Inventory.Entries) != 3 {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}
	if !decoded.Inventory.Entries[1].IsDir || decoded.Inventory.Entries[1].Name != "sub" {
		t.Fatalf("unexpected second entry: %+v", decoded.Inventory.Entries[1])
	}
}
