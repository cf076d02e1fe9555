// Package scan lists a directory's immediate children and measures each of
// them concurrently, producing a size-ranked inventory.
package scan

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"

	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/probe"
	"github.com/michaelscutari/dutop/internal/rollup"
)

// Scanner produces inventories. It is safe for concurrent use, though each
// Scan call already fans out internally.
type Scanner struct {
	opts  *ScanOptions
	probe *probe.Probe
	log   logr.Logger
}

// NewScanner creates a new scanner.
func NewScanner(opts *ScanOptions) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Probe == nil {
		opts.Probe = probe.DefaultOptions()
	}
	return &Scanner{
		opts:  opts,
		probe: probe.New(opts.Probe),
		log:   opts.Logger.WithName("scan"),
	}
}

// child is one listed child waiting to be measured.
type child struct {
	path string
	name string
	info os.FileInfo
}

// Scan lists path and measures every immediate child. It blocks until all
// measurements are done. An unreadable path yields an empty inventory.
func (s *Scanner) Scan(path string) entry.Inventory {
	start := time.Now()

	children, dev, err := s.list(path)
	if err != nil {
		s.log.V(1).Info("listing failed", "path", path, "err", err.Error(), "partial", len(children))
	}
	if len(children) == 0 {
		return rollup.Build(nil)
	}

	entries := make([]entry.Entry, len(children))
	for i, c := range children {
		kind := entry.KindOther
		if c.info != nil {
			kind = entry.KindFromMode(c.info.Mode())
		}
		entries[i] = entry.Entry{
			Path:  c.path,
			Name:  c.name,
			Kind:  kind,
			IsDir: kind == entry.KindDir,
		}
	}

	sizes := s.measureAll(children, dev)
	for i := range entries {
		entries[i].Size = sizes[i]
	}

	inv := rollup.Build(entries)
	s.log.V(1).Info("scan complete",
		"path", path,
		"entries", inv.Len(),
		"total", inv.TotalSize,
		"workers", s.opts.workers(),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
	return inv
}

// list reads the immediate children of dir in enumeration order and
// classifies each with a single Lstat. It also returns the device of dir,
// which bounds every child's walk under Xdev.
func (s *Scanner) list(dir string) ([]child, probe.Device, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, probe.Device{}, err
	}
	defer f.Close()

	var dev probe.Device
	if info, err := f.Stat(); err == nil {
		dev = probe.DeviceOf(info)
	}

	dirEntries, readErr := f.ReadDir(-1)

	children := make([]child, 0, len(dirEntries))
	for _, de := range dirEntries {
		childPath := filepath.Join(dir, de.Name())
		if s.opts.Probe.ShouldExclude(childPath) {
			continue
		}

		info, err := os.Lstat(childPath)
		if err != nil {
			s.log.V(1).Info("lstat failed", "path", childPath, "err", err.Error())
		}
		children = append(children, child{path: childPath, name: de.Name(), info: info})
	}
	return children, dev, readErr
}
