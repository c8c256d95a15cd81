package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ExportService groups, paginates and renders reports.
type ExportService interface {
	// Plan groups and paginates items using the current settings.
	Plan(items []domain.Item) (*domain.ExportPlan, error)

	// PlanReport plans a stored report.
	PlanReport(ctx context.Context, id string) (*domain.ExportPlan, error)

	// Export renders a stored report as PDF to w.
	Export(ctx context.Context, id string, w io.Writer) (*domain.ExportResult, error)

	// ExportToFile renders a stored report to path. An empty path writes
	// DefaultFileName into the configured export directory.
	ExportToFile(ctx context.Context, id, path string) (*domain.ExportResult, error)

	// ExportPaths ingests image files without storing them and renders
	// them under the given cover-page metadata.
	ExportPaths(ctx context.Context, report domain.Report, paths []string, w io.Writer) (*domain.ExportResult, error)

	// ExportPathsToFile is ExportPaths writing to path. An empty path
	// writes DefaultFileName into the configured export directory.
	ExportPathsToFile(ctx context.Context, report domain.Report, paths []string, path string) (*domain.ExportResult, error)

	// DefaultFileName derives a file name from the report title and date.
	DefaultFileName(report *domain.Report) string
}
