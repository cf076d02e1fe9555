// Package navigator holds the browsing session: the current directory, its
// ranked inventory and a cursor. Every loading transition re-scans from
// scratch and resets the cursor.
package navigator

import (
	"github.com/go-logr/logr"

	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/pathutil"
)

// NoCursor marks the cursor of an empty inventory.
const NoCursor = -1

// Scanner produces a fresh inventory for a directory. Implementations must
// never fail; an unreadable directory yields an empty inventory.
type Scanner interface {
	Scan(path string) entry.Inventory
}

// State is the snapshot re-emitted after every transition.
type State struct {
	Path       string
	Entries    []entry.Entry
	TotalSize  uint64
	Cursor     int
	Terminated bool
}

// Selected returns the entry under the cursor.
func (s State) Selected() (entry.Entry, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Entries) {
		return entry.Entry{}, false
	}
	return s.Entries[s.Cursor], true
}

// Navigator is not safe for concurrent use; callers serialize transitions.
type Navigator struct {
	scanner    Scanner
	path       string
	inventory  entry.Inventory
	cursor     int
	terminated bool
	log        logr.Logger
}

// Option customizes a Navigator.
type Option func(*Navigator)

// WithLogger sets the navigator's logger.
func WithLogger(l logr.Logger) Option {
	return func(n *Navigator) {
		n.log = l.WithName("navigator")
	}
}

// New creates a navigator and loads path.
func New(scanner Scanner, path string, opts ...Option) *Navigator {
	n := &Navigator{
		scanner: scanner,
		cursor:  NoCursor,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.Load(path)
	return n
}

// State returns the current session snapshot.
func (n *Navigator) State() State {
	return State{
		Path:       n.path,
		Entries:    n.inventory.Entries,
		TotalSize:  n.inventory.TotalSize,
		Cursor:     n.cursor,
		Terminated: n.terminated,
	}
}

// Path returns the directory currently displayed.
func (n *Navigator) Path() string {
	return n.path
}

// Inventory returns the inventory for the current directory.
func (n *Navigator) Inventory() entry.Inventory {
	return n.inventory
}

// Cursor returns the cursor index, or NoCursor.
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Terminated reports whether Quit was called.
func (n *Navigator) Terminated() bool {
	return n.terminated
}

// Load scans path and replaces the inventory wholesale.
func (n *Navigator) Load(path string) {
	if n.terminated {
		return
	}
	n.path = path
	n.inventory = n.scanner.Scan(path)
	if n.inventory.Empty() {
		n.cursor = NoCursor
	} else {
		n.cursor = 0
	}
	n.log.V(1).Info("loaded", "path", path, "entries", n.inventory.Len(), "total", n.inventory.TotalSize)
}

// MoveNext advances the cursor, wrapping from the last entry to the first.
func (n *Navigator) MoveNext() {
	if n.terminated || n.inventory.Empty() {
		return
	}
	n.cursor = (n.cursor + 1) % n.inventory.Len()
}

// MovePrevious retreats the cursor, wrapping from the first entry to the last.
func (n *Navigator) MovePrevious() {
	if n.terminated || n.inventory.Empty() {
		return
	}
	size := n.inventory.Len()
	n.cursor = (n.cursor - 1 + size) % size
}

// MoveFirst puts the cursor on the largest entry.
func (n *Navigator) MoveFirst() {
	if n.terminated || n.inventory.Empty() {
		return
	}
	n.cursor = 0
}

// MoveLast puts the cursor on the smallest entry.
func (n *Navigator) MoveLast() {
	if n.terminated || n.inventory.Empty() {
		return
	}
	n.cursor = n.inventory.Len() - 1
}

// Descend loads the selected entry if it is a directory.
func (n *Navigator) Descend() {
	if n.terminated {
		return
	}
	selected, ok := n.State().Selected()
	if !ok || !selected.IsDir {
		return
	}
	n.Load(selected.Path)
}

// Ascend loads the parent of the current directory. At a filesystem root
// it does nothing.
func (n *Navigator) Ascend() {
	if n.terminated {
		return
	}
	parent, ok := pathutil.Parent(n.path)
	if !ok {
		return
	}
	n.Load(parent)
}

// Reload re-scans the current directory in place.
func (n *Navigator) Reload() {
	n.Load(n.path)
}

// Quit ends the session. Later transitions are ignored.
func (n *Navigator) Quit() {
	n.terminated = true
}
