// Package probe measures the aggregate size of a single filesystem path.
//
// Measurement never fails: anything that cannot be read contributes zero
// bytes and the walk carries on. Symbolic links are never followed, so a
// link counts as zero and link cycles cannot occur.
package probe

import (
	"io/fs"
	"math"
	"os"

	"github.com/go-logr/logr"
)

// Probe computes path sizes. A Probe holds no mutable state and is safe
// for concurrent use.
type Probe struct {
	opts *Options
	log  logr.Logger
}

// New creates a probe. A nil opts uses DefaultOptions.
func New(opts *Options) *Probe {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Walker == "" {
		opts.Walker = WalkerStack
	}
	return &Probe{opts: opts, log: opts.Logger.WithName("probe")}
}

// Options returns the options the probe was built with.
func (p *Probe) Options() *Options {
	return p.opts
}

// Measure returns the byte length of a regular file, or the sum of all
// regular files beneath a directory. Everything else measures zero.
func (p *Probe) Measure(path string) uint64 {
	info, err := os.Lstat(path)
	if err != nil {
		p.log.V(1).Info("skipping unreadable path", "path", path, "err", err.Error())
		return 0
	}
	return p.MeasureInfo(path, info)
}

// MeasureInfo is Measure for callers that already hold the Lstat result.
// With Xdev the walk stays on the device of path itself.
func (p *Probe) MeasureInfo(path string, info fs.FileInfo) uint64 {
	if info == nil {
		return 0
	}
	return p.MeasureOn(path, info, DeviceOf(info))
}

// MeasureOn measures path while confining an Xdev walk to dev, the device
// of the directory being scanned. A directory on another device, such as
// a mount point, measures zero.
func (p *Probe) MeasureOn(path string, info fs.FileInfo, dev Device) uint64 {
	switch {
	case info == nil:
		return 0
	case info.Mode().IsRegular():
		return fileSize(info)
	case info.IsDir():
		if p.crossesDevice(info, dev) {
			p.log.V(1).Info("skipping other filesystem", "path", path)
			return 0
		}
		if p.opts.Walker == WalkerFast {
			return p.walkFast(path, dev)
		}
		return p.walkStack(path, dev)
	default:
		return 0
	}
}

// Device identifies the filesystem an Xdev walk must not leave. The zero
// value imposes no boundary.
type Device struct {
	id    uint64
	known bool
}

// DeviceOf returns the device backing info.
func DeviceOf(info fs.FileInfo) Device {
	if info == nil {
		return Device{}
	}
	id, ok := deviceID(info)
	return Device{id: id, known: ok}
}

// crossesDevice reports whether info lives outside dev under Xdev.
func (p *Probe) crossesDevice(info fs.FileInfo, dev Device) bool {
	if !p.opts.Xdev || !dev.known {
		return false
	}
	id, ok := deviceID(info)
	return ok && id != dev.id
}

func fileSize(info fs.FileInfo) uint64 {
	if info.Size() < 0 {
		return 0
	}
	return uint64(info.Size())
}

// addSaturating adds b to a, clamping at math.MaxUint64.
func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
