package driven

import (
	"context"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ReportStore persists reports together with their photos.
type ReportStore interface {
	// Save stores or updates a report. The stored photo set is replaced
	// by report.Photos.
	Save(ctx context.Context, report *domain.Report) error

	// Get retrieves a report and its photos by ID.
	// Returns domain.ErrNotFound if the report does not exist.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// List returns report summaries, most recently updated first.
	List(ctx context.Context) ([]domain.ReportSummary, error)

	// Delete removes a report and its photos.
	// Returns domain.ErrNotFound if the report does not exist.
	Delete(ctx context.Context, id string) error
}
