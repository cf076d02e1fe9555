package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesDebugToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dutop.log")

	logger, flush, err := New(Options{Verbose: true, File: path, Discard: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.V(1).Info("scan complete", "entries", 3)
	flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "scan complete") {
		t.Fatalf("expected debug record in log, got %q", data)
	}
}

func TestNewQuietDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dutop.log")

	logger, flush, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.V(1).Info("hidden")
	logger.Info("shown")
	flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug record written without verbose: %q", data)
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("info record missing: %q", data)
	}
}

func TestNewDiscard(t *testing.T) {
	logger, flush, err := New(Options{Discard: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer flush()
	if logger.Enabled() {
		t.Fatalf("expected discard logger")
	}
}
