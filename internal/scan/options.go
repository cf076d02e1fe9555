package scan

import (
	"runtime"

	"github.com/go-logr/logr"

	"github.com/michaelscutari/dutop/internal/probe"
)

// ProgressFunc is called once per measured child. It runs on worker
// goroutines and must be safe for concurrent use.
type ProgressFunc func(name string, done, total int)

// ScanOptions configures the scanning behavior.
type ScanOptions struct {
	// Workers is the number of concurrent child measurements.
	// Zero or less means one per available CPU.
	Workers int

	// Probe configures how each child is measured. Its exclude patterns
	// also drop matching immediate children from the listing.
	Probe *probe.Options

	// Progress, when set, observes completed measurements.
	Progress ProgressFunc

	// Logger receives debug records for listing failures and timings.
	Logger logr.Logger
}

// DefaultOptions returns sensible defaults for scanning.
func DefaultOptions() *ScanOptions {
	return &ScanOptions{
		Workers: runtime.NumCPU(),
		Probe:   probe.DefaultOptions(),
		Logger:  logr.Discard(),
	}
}

// WithWorkers sets the number of workers.
func (o *ScanOptions) WithWorkers(n int) *ScanOptions {
	o.Workers = n
	return o
}

// WithProbe sets the measurement options.
func (o *ScanOptions) WithProbe(p *probe.Options) *ScanOptions {
	o.Probe = p
	return o
}

// WithProgress sets the progress callback.
func (o *ScanOptions) WithProgress(f ProgressFunc) *ScanOptions {
	o.Progress = f
	return o
}

// WithLogger sets the logger for the scanner and its probe.
func (o *ScanOptions) WithLogger(l logr.Logger) *ScanOptions {
	o.Logger = l
	if o.Probe != nil {
		o.Probe.Logger = l
	}
	return o
}

func (o *ScanOptions) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}
