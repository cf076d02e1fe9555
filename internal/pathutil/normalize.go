package pathutil

import "path/filepath"

// Normalize returns a canonical filesystem path string.
// It removes trailing slashes, collapses "." and "..", and
// preserves relative paths when provided.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}

// Parent returns the directory containing path. Relative paths are
// resolved against the working directory first, so "." and ".." have
// real parents. The second result is false only at a filesystem root.
func Parent(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	abs := Absolute(path)
	parent := filepath.Dir(abs)
	if parent == abs {
		return "", false
	}
	return parent, true
}

// Absolute resolves path against the working directory and normalizes it.
// If resolution fails the normalized input is returned unchanged.
func Absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Normalize(path)
	}
	return Normalize(abs)
}
