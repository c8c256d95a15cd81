package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and export reports interactively",
	Long: `Launch the interactive terminal interface.

The TUI lists stored reports, shows each report's photo groups in the
order they will be printed, and exports a report to the configured
export directory.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open report / edit setting
  e        - Export to PDF
  s        - Settings
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app from the configured services.
func newTUIApp() (*tui.App, error) {
	ports := tui.NewPorts(reportService, exportService, settingsService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return err
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
