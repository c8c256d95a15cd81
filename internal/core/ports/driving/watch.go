package driving

import (
	"context"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ExportCallback receives the outcome of each export performed by Watch.
type ExportCallback func(result *domain.ExportResult, err error)

// WatchService re-exports a directory of photos whenever it changes.
type WatchService interface {
	// Watch exports dir to output once, then again after every burst of
	// image changes, until ctx is cancelled.
	Watch(ctx context.Context, dir string, report domain.Report, output string, onExport ExportCallback) error
}
