// Package log builds the structured logger shared by the scanner, the
// navigator and the command line. Loggers are zap backed and exposed as
// logr.Logger so library packages only depend on the logr interface.
package log

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures logger construction.
type Options struct {
	// Verbose enables debug records (logr V(1)).
	Verbose bool

	// File redirects output to a file instead of stderr.
	File string

	// Discard drops everything unless File is set. The browser uses this
	// so records never land on the alternate screen.
	Discard bool
}

// New returns a logr.Logger backed by zap and a function that flushes it.
func New(opts Options) (logr.Logger, func(), error) {
	if opts.Discard && opts.File == "" {
		return logr.Discard(), func() {}, nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	out := "stderr"
	if opts.File != "" {
		out = opts.File
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("failed to build logger: %w", err)
	}

	return zapr.NewLogger(zapLog).WithName("dutop"), func() { _ = zapLog.Sync() }, nil
}
