package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

var (
	reportMeta       metadataFlags
	reportEditMeta   metadataFlags
	reportListJSON   bool
	reportExportPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage stored reports",
	Long: `Create reports, add photos to them and export them as PDF.

Reports and their (compressed) photos are kept in the local database, so
a report can be edited and exported again later.`,
}

var reportCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty report",
	Args:  cobra.NoArgs,
	RunE:  runReportCreate,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show a report's details and photo groups",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

var reportEditCmd = &cobra.Command{
	Use:   "edit <report-id>",
	Short: "Change a report's cover-page fields",
	Long:  `Change the fields given as flags; the others are left as they are.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReportEdit,
}

var reportAddCmd = &cobra.Command{
	Use:   "add <report-id> <path>...",
	Short: "Add image files or folders to a report",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReportAdd,
}

var reportRemovePhotoCmd = &cobra.Command{
	Use:   "remove-photo <report-id> <photo-id>",
	Short: "Remove a photo from a report",
	Args:  cobra.ExactArgs(2),
	RunE:  runReportRemovePhoto,
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Delete a report and its photos",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

var reportExportCmd = &cobra.Command{
	Use:   "export <report-id>",
	Short: "Export a stored report as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportExport,
}

func init() {
	reportMeta.register(reportCreateCmd)
	reportEditMeta.register(reportEditCmd)
	reportListCmd.Flags().BoolVar(&reportListJSON, "json", false, "output reports as JSON")
	reportExportCmd.Flags().StringVarP(&reportExportPath, "output", "o", "", "output file, - for stdout")
	addOverrideFlags(reportExportCmd, layoutOverrides)
	addOverrideFlags(reportAddCmd, imageOverrides)

	reportCmd.AddCommand(reportCreateCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportEditCmd)
	reportCmd.AddCommand(reportAddCmd)
	reportCmd.AddCommand(reportRemovePhotoCmd)
	reportCmd.AddCommand(reportDeleteCmd)
	reportCmd.AddCommand(reportExportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportCreate(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	report, err := reportMeta.report()
	if err != nil {
		return err
	}
	created, err := reportService.Create(cmd.Context(), report)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	cmd.Printf("Created report %q\n", created.Title)
	cmd.Printf("ID: %s\n", created.ID)
	return nil
}

func runReportList(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	reports, err := reportService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if reportListJSON {
		type reportJSON struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Project string `json:"project,omitempty"`
			Photos  int    `json:"photos"`
			Updated string `json:"updated"`
		}
		out := make([]reportJSON, len(reports))
		for i, r := range reports {
			out[i] = reportJSON{
				ID:      r.ID,
				Title:   r.Title,
				Project: r.Project,
				Photos:  r.PhotoCount,
				Updated: r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}
		return printJSON(cmd, out)
	}

	if len(reports) == 0 {
		cmd.Println("No reports yet. Create one with: photoreport report create --title <title>")
		return nil
	}

	heading(cmd, "Reports")
	for _, r := range reports {
		cmd.Printf("  %s  %-30s %4d photo(s)  %s\n",
			r.ID, r.Title, r.PhotoCount, muted(cmd, r.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	ctx := cmd.Context()

	report, err := reportService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	groups, err := reportService.Groups(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to group photos: %w", err)
	}

	heading(cmd, report.Title)
	cmd.Printf("  ID:       %s\n", report.ID)
	cmd.Printf("  Project:  %s\n", orDash(report.Project))
	cmd.Printf("  Location: %s\n", orDash(report.Location))
	cmd.Printf("  Author:   %s\n", orDash(report.Author))
	cmd.Printf("  Date:     %s\n", formatDate(report.ReportDate))
	if report.Notes != "" {
		cmd.Printf("  Notes:    %s\n", report.Notes)
	}
	cmd.Printf("  Photos:   %d in %d group(s)\n", len(report.Photos), len(groups))

	photos := report.PhotoIndex()
	for _, g := range groups {
		cmd.Println()
		cmd.Printf("  [%s] %d photo(s)\n", groupLabel(g.Key), len(g.Items))
		for _, item := range g.Items {
			detail := item.ID
			if p := photos[item.ID]; p != nil && p.Width > 0 {
				detail = fmt.Sprintf("%s %dx%d", item.ID, p.Width, p.Height)
			}
			cmd.Printf("    %-32s %s\n", item.DisplayName, muted(cmd, detail))
		}
	}
	return nil
}

func runReportEdit(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	meta, err := reportEditMeta.metadata(cmd)
	if err != nil {
		return err
	}
	if meta == (domain.ReportMetadata{}) {
		return errors.New("nothing to change: pass at least one of --title, --project, --location, --author, --notes, --date")
	}

	report, err := reportService.Update(cmd.Context(), args[0], meta)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	cmd.Printf("Updated report %q\n", report.Title)
	return nil
}

func runReportAdd(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	if err := applyOverrides(cmd, imageOverrides); err != nil {
		return err
	}

	photos, err := reportService.AddPhotos(cmd.Context(), args[0], args[1:])
	if err != nil {
		return fmt.Errorf("failed to add photos: %w", err)
	}
	cmd.Printf("Added %d photo(s)\n", len(photos))
	for i := range photos {
		cmd.Printf("  %s  %s\n", photos[i].ID, photos[i].DisplayName)
	}
	return nil
}

func runReportRemovePhoto(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	if err := reportService.RemovePhoto(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	cmd.Printf("Removed photo %s\n", args[1])
	return nil
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	if err := reportService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	cmd.Printf("Deleted report %s\n", args[0])
	return nil
}

func runReportExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}
	if err := applyOverrides(cmd, layoutOverrides); err != nil {
		return err
	}

	var (
		result *domain.ExportResult
		err    error
	)
	if reportExportPath == "-" {
		result, err = exportService.Export(cmd.Context(), args[0], cmd.OutOrStdout())
	} else {
		result, err = exportService.ExportToFile(cmd.Context(), args[0], reportExportPath)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if result.Path != "" {
		printExportResult(cmd, result)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
