package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/dutop/internal/scan"
	"github.com/michaelscutari/dutop/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Browse disk usage interactively",
	Long: heredoc.Doc(`
		Open an interactive browser starting at path. Entering a directory
		or going up rescans it from scratch; r rescans the current one.
		Press ? for all key bindings.
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, logger, flush, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer flush()

	opts, err := cfg.ScanOptions(logger)
	if err != nil {
		return err
	}

	model := tui.NewModel(scan.NewScanner(opts), rootArg(args), logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
