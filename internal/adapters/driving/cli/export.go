package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

var (
	exportOutput string
	exportMeta   metadataFlags
)

var exportCmd = &cobra.Command{
	Use:   "export <path>...",
	Short: "Export photos straight to a PDF",
	Long: `Build a PDF report from image files and folders without storing a report.

Folders are scanned recursively for .jpg, .jpeg, .png, .gif and .webp
files; hidden files are skipped. Use "-o -" to write the PDF to stdout.

The default file name is <title>_<date>.pdf in export.directory.

Examples:
  photoreport export ./site-visit --title "Site visit" --project CR-5681
  photoreport export a.jpg b.jpg --columns 3 -o grid.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout")
	exportMeta.register(exportCmd)
	addOverrideFlags(exportCmd, layoutOverrides)
	addOverrideFlags(exportCmd, imageOverrides)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}
	if err := applyOverrides(cmd, layoutOverrides); err != nil {
		return err
	}
	if err := applyOverrides(cmd, imageOverrides); err != nil {
		return err
	}

	report, err := exportMeta.report()
	if err != nil {
		return err
	}
	if report.Title == "" {
		report.Title = defaultTitle(args)
	}

	var result *domain.ExportResult
	if exportOutput == "-" {
		result, err = exportService.ExportPaths(cmd.Context(), report, args, cmd.OutOrStdout())
	} else {
		result, err = exportService.ExportPathsToFile(cmd.Context(), report, args, exportOutput)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if result.Path != "" {
		printExportResult(cmd, result)
	}
	return nil
}

func printExportResult(cmd *cobra.Command, result *domain.ExportResult) {
	cmd.Printf("Exported %d photo(s) in %d group(s) on %d page(s) to %s\n",
		result.PhotoCount, result.GroupCount, result.PageCount, result.Path)
}

// defaultTitle names an ad-hoc report after the folder it was built from.
func defaultTitle(paths []string) string {
	if len(paths) == 1 {
		if base := filepath.Base(filepath.Clean(paths[0])); base != "." && base != string(filepath.Separator) {
			return base
		}
	}
	return "Photo Report"
}
