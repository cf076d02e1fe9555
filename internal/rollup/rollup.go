// Package rollup turns measured children into a ranked inventory.
package rollup

import (
	"cmp"
	"math"
	"slices"

	"github.com/michaelscutari/dutop/internal/entry"
)

// Build ranks entries by size, largest first, keeping the input order for
// equal sizes, and computes the total from the ranked entries themselves.
// The input slice is not modified.
func Build(entries []entry.Entry) entry.Inventory {
	if len(entries) == 0 {
		return entry.Inventory{Entries: []entry.Entry{}}
	}

	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b entry.Entry) int {
		return cmp.Compare(b.Size, a.Size)
	})

	return entry.Inventory{
		Entries:   ranked,
		TotalSize: Total(ranked),
	}
}

// Total sums entry sizes, clamping at math.MaxUint64.
func Total(entries []entry.Entry) uint64 {
	var total uint64
	for _, e := range entries {
		if total > math.MaxUint64-e.Size {
			return math.MaxUint64
		}
		total += e.Size
	}
	return total
}

// Percent returns size as a percentage of total, or 0 when total is 0.
func Percent(size, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(size) / float64(total) * 100
}
