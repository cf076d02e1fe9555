package probe

import (
	"io/fs"
	"math"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// walkFast sums regular files under root using fastwalk. The callback
// runs on fastwalk's goroutines; the running total is local to this call.
func (p *Probe) walkFast(root string, dev Device) uint64 {
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: p.opts.FastWorkers,
	}

	var total atomic.Uint64
	var saturated atomic.Bool
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.log.V(1).Info("skipping unreadable path", "path", path, "err", err.Error())
			return nil
		}
		if path == root {
			return nil
		}
		if p.opts.ShouldExclude(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p.opts.Xdev && dev.known {
				info, err := d.Info()
				if err != nil {
					return filepath.SkipDir
				}
				if p.crossesDevice(info, dev) {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			p.log.V(1).Info("skipping unreadable file", "path", path, "err", err.Error())
			return nil
		}
		size := fileSize(info)
		if sum := total.Add(size); sum < size {
			saturated.Store(true)
		}
		return nil
	})
	if err != nil {
		p.log.V(1).Info("walk ended early", "path", root, "err", err.Error())
	}
	if saturated.Load() {
		return math.MaxUint64
	}
	return total.Load()
}
