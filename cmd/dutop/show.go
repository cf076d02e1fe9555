package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelscutari/dutop/internal/config"
	"github.com/michaelscutari/dutop/internal/db"
	"github.com/michaelscutari/dutop/internal/report"
	"github.com/michaelscutari/dutop/internal/snapshot"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved scan",
	Long:  `Render a scan saved with --save as a report, using the current output settings.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scan id %q: %w", args[0], err)
	}

	cfg, _, flush, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer flush()

	database, err := snapshot.NewManager(cfg.DBPath, cfg.Retention).Open()
	if err != nil {
		return err
	}
	defer database.Close()

	meta, inv, err := db.LoadScan(cmd.Context(), database, id)
	if err != nil {
		return err
	}

	if cfg.Output == config.OutputTable {
		fmt.Printf("Scan #%d taken %s (%s)\n\n",
			meta.ID,
			meta.ScannedAt.Format(time.RFC3339),
			meta.Duration.Round(time.Millisecond),
		)
	}
	return render(cfg, report.Report{Root: meta.RootPath, Inventory: inv})
}
