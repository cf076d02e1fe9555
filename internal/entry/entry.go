package entry

import (
	"os"
	"time"
)

// Kind represents the type of filesystem entry.
type Kind uint8

const (
	KindFile    Kind = 0
	KindDir     Kind = 1
	KindSymlink Kind = 2
	KindOther   Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindFromMode derives the Kind from an os.FileMode.
func KindFromMode(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Entry is one immediate child of a scanned directory with its aggregate size.
// Entries are created fresh on every scan and never modified afterwards.
type Entry struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Size  uint64 `json:"size"`
	IsDir bool   `json:"is_directory"`
	Kind  Kind   `json:"-"`
}

// Inventory is the ranked outcome of one scan.
// TotalSize always equals the (saturating) sum of the entry sizes.
type Inventory struct {
	Entries   []Entry `json:"entries"`
	TotalSize uint64  `json:"total_size"`
}

// Len returns the number of entries.
func (inv Inventory) Len() int {
	return len(inv.Entries)
}

// Empty reports whether the inventory has no entries.
func (inv Inventory) Empty() bool {
	return len(inv.Entries) == 0
}

// ScanMeta holds metadata about a saved scan.
type ScanMeta struct {
	ID         int64
	RootPath   string
	ScannedAt  time.Time
	Duration   time.Duration
	TotalSize  uint64
	EntryCount int
}
