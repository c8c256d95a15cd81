package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

var (
	watchOutput string
	watchMeta   metadataFlags
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Re-export a folder whenever its photos change",
	Long: `Export a folder to PDF, then keep watching it and export again after
photos are added, changed or removed. Bursts of changes are combined into
one export. Press Ctrl+C to stop.

Example:
  photoreport watch ./inbox --title "Daily log" -o daily.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file (default <title>_<date>.pdf in export.directory)")
	watchMeta.register(watchCmd)
	addOverrideFlags(watchCmd, layoutOverrides)
	addOverrideFlags(watchCmd, imageOverrides)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}
	if err := applyOverrides(cmd, layoutOverrides); err != nil {
		return err
	}
	if err := applyOverrides(cmd, imageOverrides); err != nil {
		return err
	}

	dir := args[0]
	report, err := watchMeta.report()
	if err != nil {
		return err
	}
	if report.Title == "" {
		report.Title = defaultTitle(args)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	err = watchService.Watch(cmd.Context(), dir, report, watchOutput, func(result *domain.ExportResult, err error) {
		if err != nil {
			cmd.PrintErrf("Export failed: %v\n", err)
			return
		}
		printExportResult(cmd, result)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
