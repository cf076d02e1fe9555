package probe

import (
	"fmt"
	"regexp"

	"github.com/go-logr/logr"
)

// Walker selects the traversal strategy used for directories.
type Walker string

const (
	// WalkerStack walks with an explicit depth-first work list on the calling goroutine.
	WalkerStack Walker = "stack"
	// WalkerFast walks with fastwalk's parallel traversal.
	WalkerFast Walker = "fast"
)

// ParseWalker validates a walker name.
func ParseWalker(name string) (Walker, error) {
	switch Walker(name) {
	case WalkerStack, WalkerFast:
		return Walker(name), nil
	case "":
		return WalkerStack, nil
	default:
		return "", fmt.Errorf("unknown walker %q (expected stack|fast)", name)
	}
}

// Options configures size measurement.
type Options struct {
	// Walker is the directory traversal strategy.
	Walker Walker

	// FastWorkers bounds fastwalk's goroutines per measurement.
	// Zero lets fastwalk pick its default.
	FastWorkers int

	// Xdev prevents descending into other filesystems.
	Xdev bool

	// ExcludePatterns are regular expressions for paths to skip.
	ExcludePatterns []*regexp.Regexp

	// Logger receives V(1) records for every absorbed failure.
	Logger logr.Logger
}

// DefaultOptions returns sensible defaults for measuring.
func DefaultOptions() *Options {
	return &Options{
		Walker: WalkerStack,
		Logger: logr.Discard(),
	}
}

// WithWalker sets the traversal strategy.
func (o *Options) WithWalker(w Walker) *Options {
	o.Walker = w
	return o
}

// WithFastWorkers sets the fastwalk worker count.
func (o *Options) WithFastWorkers(n int) *Options {
	o.FastWorkers = n
	return o
}

// WithXdev sets cross-device behavior.
func (o *Options) WithXdev(xdev bool) *Options {
	o.Xdev = xdev
	return o
}

// WithLogger sets the logger.
func (o *Options) WithLogger(l logr.Logger) *Options {
	o.Logger = l
	return o
}

// AddExcludePattern adds a pattern to exclude.
func (o *Options) AddExcludePattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	o.ExcludePatterns = append(o.ExcludePatterns, re)
	return nil
}

// ShouldExclude checks if a path matches any exclude pattern.
func (o *Options) ShouldExclude(path string) bool {
	for _, re := range o.ExcludePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
