package driving

import (
	"context"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ReportService manages persisted reports and their photos.
type ReportService interface {
	// Create stores a new report. An ID is generated when empty and the
	// default author applies when Author is empty.
	Create(ctx context.Context, report domain.Report) (*domain.Report, error)

	// Get retrieves a report by ID.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// List returns report summaries, most recently updated first.
	List(ctx context.Context) ([]domain.ReportSummary, error)

	// Update changes the cover-page fields set in meta.
	Update(ctx context.Context, id string, meta domain.ReportMetadata) (*domain.Report, error)

	// Delete removes a report and its photos.
	Delete(ctx context.Context, id string) error

	// AddPhotos ingests image files into a report. Directories are scanned
	// for images. Returns the photos that were added.
	AddPhotos(ctx context.Context, id string, paths []string) ([]domain.Photo, error)

	// RemovePhoto removes one photo from a report.
	RemovePhoto(ctx context.Context, id, photoID string) error

	// Groups returns the report's photos grouped by filename prefix.
	Groups(ctx context.Context, id string) ([]domain.Group, error)
}
