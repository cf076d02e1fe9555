package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/dutop/internal/config"
	"github.com/michaelscutari/dutop/internal/log"
	"github.com/michaelscutari/dutop/internal/pathutil"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dutop [path]",
	Short: "Show what is taking up space in a directory",
	Long: heredoc.Doc(`
		dutop measures every immediate child of a directory, recursively and
		in parallel, and prints them largest first with their share of the
		total. Symbolic links are never followed and count as zero bytes.

		Settings come from flags, DUTOP_* environment variables (for example
		DUTOP_WORKERS=4) and an optional YAML config file, in that order.
	`),
	Example: heredoc.Doc(`
		dutop
		dutop --top 10 /var
		dutop --output json ~/src
		dutop --tui /home
	`),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func init() {
	rootCmd.Version = version
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().BoolVar(&reportTUI, "tui", false, "Browse interactively instead of printing a report")
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

// setup resolves configuration and builds the logger. The browser owns the
// terminal, so its logs are dropped unless a log file is configured.
func setup(cmd *cobra.Command, browsing bool) (config.Config, logr.Logger, func(), error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, logr.Discard(), func() {}, err
	}

	logger, flush, err := log.New(log.Options{
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
		Discard: browsing,
	})
	if err != nil {
		return config.Config{}, logr.Discard(), func() {}, err
	}
	return cfg, logger, flush, nil
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return pathutil.Absolute(".")
	}
	return pathutil.Absolute(args[0])
}
