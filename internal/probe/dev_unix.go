//go:build !windows

package probe

import (
	"io/fs"
	"syscall"
)

// deviceID returns the device number backing info.
func deviceID(info fs.FileInfo) (uint64, bool) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Dev), true
	}
	return 0, false
}
