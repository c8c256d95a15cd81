package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchConfig controls how often a watched directory is re-exported.
type WatchConfig struct {
	// Debounce is how long the directory must be quiet before exporting.
	// Copying a batch of photos produces many events; one export covers them.
	Debounce time.Duration

	// MinInterval is the minimum time between two exports.
	MinInterval time.Duration
}

// DefaultWatchConfig returns the intervals used by the watch command.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Debounce:    750 * time.Millisecond,
		MinInterval: 5 * time.Second,
	}
}

// WatchService re-exports a directory whenever its images change.
type WatchService struct {
	photoSource driven.PhotoSource
	exporter    driving.ExportService
	cfg         WatchConfig
}

// NewWatchService creates a new watch service.
func NewWatchService(photoSource driven.PhotoSource, exporter driving.ExportService, cfg WatchConfig) *WatchService {
	return &WatchService{
		photoSource: photoSource,
		exporter:    exporter,
		cfg:         cfg,
	}
}

// Watch exports dir to output once, then after every burst of changes,
// until ctx is cancelled. Export failures are passed to onExport and do
// not stop watching.
func (s *WatchService) Watch(
	ctx context.Context,
	dir string,
	report domain.Report,
	output string,
	onExport driving.ExportCallback,
) error {
	if s.photoSource == nil || s.exporter == nil {
		return domain.ErrNotImplemented
	}
	if onExport == nil {
		onExport = func(*domain.ExportResult, error) {}
	}

	changes, err := s.photoSource.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	limiter := rate.NewLimiter(rate.Every(s.cfg.MinInterval), 1)
	export := func() {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		logger.Section("Re-export")
		result, err := s.exporter.ExportPathsToFile(ctx, report, []string{dir}, output)
		if err != nil {
			logger.Warn("Export of %s failed: %v", dir, err)
		}
		onExport(result, err)
	}

	export()

	debounce := time.NewTimer(s.cfg.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil
		case change, ok := <-changes:
			if !ok {
				debounce.Stop()
				return nil
			}
			logger.Debug("%s %s", change.Type, change.Path)
			debounce.Reset(s.cfg.Debounce)
		case <-debounce.C:
			export()
		}
	}
}
