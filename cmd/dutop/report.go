package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/dutop/internal/config"
	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/report"
	"github.com/michaelscutari/dutop/internal/scan"
	"github.com/michaelscutari/dutop/internal/snapshot"
)

var reportTUI bool

func runReport(cmd *cobra.Command, args []string) error {
	if reportTUI {
		return runBrowse(cmd, args)
	}

	cfg, logger, flush, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer flush()

	root := rootArg(args)
	opts, err := cfg.ScanOptions(logger)
	if err != nil {
		return err
	}

	showProgress := cfg.Output == config.OutputTable &&
		!cfg.Verbose &&
		isatty.IsTerminal(os.Stderr.Fd())

	var bar *progressbar.ProgressBar
	if showProgress {
		var once sync.Once
		opts.WithProgress(func(name string, done, total int) {
			once.Do(func() { bar = newProgressBar(total) })
			bar.Describe(name)
			_ = bar.Add(1)
		})
	}

	start := time.Now()
	inv := scan.NewScanner(opts).Scan(root)
	elapsed := time.Since(start)
	if bar != nil {
		_ = bar.Finish()
	}
	logger.V(1).Info("report ready", "root", root, "entries", inv.Len(), "elapsed", elapsed)

	if err := render(cfg, report.Report{Root: root, Inventory: inv}); err != nil {
		return err
	}

	if cfg.Save {
		mgr := snapshot.NewManager(cfg.DBPath, cfg.Retention)
		mgr.SetLogger(logger)
		meta := entry.ScanMeta{RootPath: root, ScannedAt: start, Duration: elapsed}
		id, err := mgr.Save(cmd.Context(), meta, inv)
		if err != nil {
			return fmt.Errorf("failed to save scan: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved scan #%d to %s\n", id, mgr.Path())
	}

	return nil
}

func render(cfg config.Config, r report.Report) error {
	if cfg.Output == config.OutputJSON {
		return report.PrintJSON(os.Stdout, r)
	}
	return report.PrintTable(os.Stdout, r, report.Options{Top: cfg.Top, NoColor: cfg.NoColor})
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
