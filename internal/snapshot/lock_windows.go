//go:build windows

package snapshot

import "os"

// Windows has no flock; concurrent saves rely on SQLite's own locking.
func lockFile(f *os.File) error { return nil }

func unlockFile(f *os.File) {}
