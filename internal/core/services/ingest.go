package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/grouping"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// ingester turns image files into photos.
type ingester struct {
	source   driven.PhotoSource
	images   driven.ImageProcessor
	settings driving.SettingsService
	now      func() time.Time
}

func newIngester(source driven.PhotoSource, images driven.ImageProcessor, settings driving.SettingsService) *ingester {
	return &ingester{
		source:   source,
		images:   images,
		settings: settings,
		now:      time.Now,
	}
}

// resolve expands directories into the image files they contain.
func (in *ingester) resolve(ctx context.Context, paths []string) ([]domain.PhotoFile, error) {
	var files []domain.PhotoFile
	seen := make(map[string]bool)
	for _, p := range paths {
		found, err := in.source.Scan(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		for _, f := range found {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			files = append(files, f)
		}
	}
	logger.Debug("Resolved %d path(s) to %d image file(s)", len(paths), len(files))
	return files, nil
}

// ingest reads, measures and optionally compresses every image under paths.
// Files that cannot be decoded are skipped with a warning.
func (in *ingester) ingest(ctx context.Context, paths []string) ([]domain.Photo, error) {
	if in.source == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Ingest")
	files, err := in.resolve(ctx, paths)
	if err != nil {
		return nil, err
	}

	opts := in.imageSettings()
	photos := make([]domain.Photo, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		photo, err := in.load(ctx, f, opts)
		if errors.Is(err, domain.ErrUnsupportedFormat) || errors.Is(err, domain.ErrInvalidInput) {
			logger.Warn("Skipping %s: %v", f.Path, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	logger.Info("Ingested %d of %d file(s)", len(photos), len(files))
	return photos, nil
}

func (in *ingester) load(ctx context.Context, f domain.PhotoFile, opts domain.ImageSettings) (domain.Photo, error) {
	data, err := in.source.Read(ctx, f.Path)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("read %s: %w", f.Path, err)
	}

	name := f.Name
	if name == "" {
		name = filepath.Base(f.Path)
	}

	var info domain.ImageInfo
	mime := ""
	switch {
	case in.images == nil:
		info = domain.ImageInfo{}
	case opts.Compress:
		before := len(data)
		data, info, err = in.images.Compress(bytes.NewReader(data), opts.Options())
		if err != nil {
			return domain.Photo{}, err
		}
		mime = "image/jpeg"
		logger.Debug("Compressed %s: %d -> %d bytes (%dx%d)", name, before, len(data), info.Width, info.Height)
	default:
		info, err = in.images.Inspect(bytes.NewReader(data))
		if err != nil {
			return domain.Photo{}, err
		}
		mime = "image/" + info.Format
	}

	item, err := grouping.NewItem(uuid.New().String(), name, info.AspectRatio())
	if err != nil {
		return domain.Photo{}, err
	}

	return domain.Photo{
		Item:       item,
		SourcePath: f.Path,
		MIMEType:   mime,
		Data:       data,
		Width:      info.Width,
		Height:     info.Height,
		AddedAt:    in.now(),
	}, nil
}

func (in *ingester) imageSettings() domain.ImageSettings {
	if in.settings == nil {
		return domain.DefaultAppSettings().Image
	}
	s, err := in.settings.Get()
	if err != nil {
		logger.Warn("Falling back to default image settings: %v", err)
		return domain.DefaultAppSettings().Image
	}
	return s.Image
}
