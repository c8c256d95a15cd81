package driven

import (
	"io"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ImageProcessor decodes and re-encodes photos.
type ImageProcessor interface {
	// Inspect reads the image header and returns its dimensions and format.
	// Returns domain.ErrUnsupportedFormat for undecodable input.
	Inspect(r io.Reader) (domain.ImageInfo, error)

	// Compress decodes the image, scales it so its longest side is at most
	// opts.MaxDimension and re-encodes it as JPEG. The returned info
	// describes the output image.
	Compress(r io.Reader, opts domain.CompressOptions) ([]byte, domain.ImageInfo, error)
}
