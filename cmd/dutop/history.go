package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/dutop/internal/db"
	"github.com/michaelscutari/dutop/internal/snapshot"
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "List saved scans",
	Long:  `List scans saved with --save, newest first, optionally only those of one directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scans to list (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	root := ""
	if len(args) > 0 {
		root = rootArg(args)
	}

	scans, err := db.ListScans(cmd.Context(), database, root, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}
	if len(scans) == 0 {
		fmt.Println("No saved scans.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSCANNED\tDURATION\tTOTAL\tITEMS\tROOT\n")
	for _, s := range scans {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			humanize.Time(s.ScannedAt),
			s.Duration.Round(time.Millisecond),
			humanize.Bytes(s.TotalSize),
			humanize.Comma(int64(s.EntryCount)),
			s.RootPath,
		)
	}
	return w.Flush()
}
