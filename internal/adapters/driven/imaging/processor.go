package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.ImageProcessor = (*Processor)(nil)

// Processor decodes JPEG, PNG, GIF and WebP images and re-encodes them as JPEG.
type Processor struct{}

// NewProcessor creates a new image processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Inspect reads the image header and returns its dimensions and format.
func (p *Processor) Inspect(r io.Reader) (domain.ImageInfo, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.ImageInfo{}, fmt.Errorf("reading image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		webpCfg, webpErr := webp.DecodeConfig(bytes.NewReader(raw))
		if webpErr != nil {
			return domain.ImageInfo{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
		}
		cfg, format = webpCfg, "webp"
	}

	return domain.ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Compress decodes the image, scales it so its longest side is at most
// opts.MaxDimension and encodes it as JPEG at opts.Quality.
// Transparent areas are flattened onto white.
func (p *Processor) Compress(r io.Reader, opts domain.CompressOptions) ([]byte, domain.ImageInfo, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.ImageInfo{}, fmt.Errorf("reading image: %w", err)
	}

	img, err := decode(raw)
	if err != nil {
		return nil, domain.ImageInfo{}, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, domain.ImageInfo{}, fmt.Errorf("%w: empty image", domain.ErrUnsupportedFormat)
	}

	w, h := FitWithin(b.Dx(), b.Dy(), opts.MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Over)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	}

	quality := opts.Quality
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, domain.ImageInfo{}, fmt.Errorf("encoding jpeg: %w", err)
	}

	return out.Bytes(), domain.ImageInfo{Width: w, Height: h, Format: "jpeg"}, nil
}

// FitWithin scales width and height down, preserving aspect ratio, so
// neither exceeds maxDim. Sizes already within bounds, or a maxDim <= 0,
// are returned unchanged. Neither side is scaled below 1.
func FitWithin(width, height, maxDim int) (int, int) {
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return width, height
	}
	if width >= height {
		h := height * maxDim / width
		return maxDim, max(h, 1)
	}
	w := width * maxDim / height
	return max(w, 1), maxDim
}

func decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if decoded, webpErr := webp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
}
