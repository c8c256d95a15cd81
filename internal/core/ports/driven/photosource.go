package driven

import (
	"context"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// PhotoSource finds and reads image files.
type PhotoSource interface {
	// Scan returns the image files under root in path order.
	// Hidden files and directories are skipped. A root that is itself
	// an image file is returned on its own.
	Scan(ctx context.Context, root string) ([]domain.PhotoFile, error)

	// Read returns the contents of an image file.
	Read(ctx context.Context, path string) ([]byte, error)

	// Watch reports changes to image files under root until ctx is done.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context, root string) (<-chan domain.PhotoChange, error)
}

