// Package config resolves dutop settings from defaults, an optional YAML
// file, DUTOP_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/michaelscutari/dutop/internal/probe"
	"github.com/michaelscutari/dutop/internal/scan"
)

// EnvPrefix prefixes every environment variable, e.g. DUTOP_WORKERS.
const EnvPrefix = "DUTOP"

// Output formats for the one-shot report.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config is the resolved, validated configuration.
type Config struct {
	Workers   int
	Walker    probe.Walker
	Xdev      bool
	Exclude   []string
	Top       int
	Output    string
	NoColor   bool
	Save      bool
	DBPath    string
	Retention int
	Verbose   bool
	LogFile   string
}

// RegisterFlags defines every configurable flag on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Config file (default "+defaultConfigPath()+")")
	flags.IntP("workers", "w", 0, "Concurrent child measurements (0 = one per CPU)")
	flags.String("walker", string(probe.WalkerStack), "Directory walker: stack|fast")
	flags.Bool("xdev", false, "Don't cross filesystem boundaries")
	flags.StringSliceP("exclude", "e", nil, "Regex patterns to exclude (can be repeated)")
	flags.IntP("top", "n", 0, "Show only the N largest entries (0 = all)")
	flags.StringP("output", "o", OutputTable, "Output format: table|json")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("save", false, "Save the report to the history database")
	flags.String("db", defaultDBPath(), "History database path")
	flags.Int("retention", 20, "Saved scans to keep per directory (0 = unlimited)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("log-file", "", "Write logs to a file instead of stderr")
}

// Load merges all configuration sources for flags, which must
// have been registered with RegisterFlags.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	path := v.GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	cfg := Config{
		Workers:   v.GetInt("workers"),
		Xdev:      v.GetBool("xdev"),
		Exclude:   v.GetStringSlice("exclude"),
		Top:       v.GetInt("top"),
		Output:    strings.ToLower(v.GetString("output")),
		NoColor:   v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Save:      v.GetBool("save"),
		DBPath:    v.GetString("db"),
		Retention: v.GetInt("retention"),
		Verbose:   v.GetBool("verbose"),
		LogFile:   v.GetString("log-file"),
	}

	walker, err := probe.ParseWalker(v.GetString("walker"))
	if err != nil {
		return Config{}, err
	}
	cfg.Walker = walker

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be honored.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", c.Top)
	}
	if c.Retention < 0 {
		return fmt.Errorf("retention must not be negative, got %d", c.Retention)
	}
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("invalid output %q (expected table|json)", c.Output)
	}
	if c.Save && c.DBPath == "" {
		return errors.New("save requires a database path")
	}
	return nil
}

// ScanOptions builds scanner options from the configuration.
func (c Config) ScanOptions(log logr.Logger) (*scan.ScanOptions, error) {
	popts := probe.DefaultOptions().
		WithWalker(c.Walker).
		WithXdev(c.Xdev)
	for _, pattern := range c.Exclude {
		if err := popts.AddExcludePattern(pattern); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	return scan.DefaultOptions().
		WithWorkers(c.Workers).
		WithProbe(popts).
		WithLogger(log), nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dutop", "config.yaml")
}

func defaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dutop", "history.db")
}
