package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ReportRenderer draws a report as a document.
type ReportRenderer interface {
	// Render writes the cover page followed by one page per plan page.
	// Page footers are drawn only after every page exists, because the
	// total page count is not known until then.
	Render(ctx context.Context, w io.Writer, report *domain.Report, plan *domain.ExportPlan) error
}
