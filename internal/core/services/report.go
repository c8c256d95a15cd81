package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/grouping"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService manages persisted reports.
type ReportService struct {
	reportStore driven.ReportStore
	settings    driving.SettingsService
	ingest      *ingester
	now         func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(
	reportStore driven.ReportStore,
	photoSource driven.PhotoSource,
	images driven.ImageProcessor,
	settings driving.SettingsService,
) *ReportService {
	return &ReportService{
		reportStore: reportStore,
		settings:    settings,
		ingest:      newIngester(photoSource, images, settings),
		now:         time.Now,
	}
}

// Create stores a new report.
func (s *ReportService) Create(ctx context.Context, report domain.Report) (*domain.Report, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	report.Title = strings.TrimSpace(report.Title)
	if report.Title == "" {
		return nil, fmt.Errorf("%w: report title is required", domain.ErrInvalidInput)
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	} else if _, err := s.reportStore.Get(ctx, report.ID); err == nil {
		return nil, domain.ErrAlreadyExists
	}
	if report.Author == "" {
		report.Author = defaultAuthor(s.settings)
	}

	now := s.now()
	if report.ReportDate.IsZero() {
		report.ReportDate = now
	}
	report.CreatedAt = now
	report.UpdatedAt = now

	if err := s.reportStore.Save(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	logger.Debug("Created report %s (%q)", report.ID, report.Title)
	return &report, nil
}

// Get retrieves a report by ID.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.reportStore.Get(ctx, id)
}

// List returns report summaries, most recently updated first.
func (s *ReportService) List(ctx context.Context) ([]domain.ReportSummary, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.reportStore.List(ctx)
}

// Update changes the cover-page fields set in meta.
func (s *ReportService) Update(ctx context.Context, id string, meta domain.ReportMetadata) (*domain.Report, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if meta.Title != nil && strings.TrimSpace(*meta.Title) == "" {
		return nil, fmt.Errorf("%w: report title is required", domain.ErrInvalidInput)
	}

	report, err := s.reportStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	meta.Apply(report)
	report.Title = strings.TrimSpace(report.Title)

	if err := s.save(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a report and its photos.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if s.reportStore == nil {
		return domain.ErrNotImplemented
	}
	return s.reportStore.Delete(ctx, id)
}

// AddPhotos ingests image files into a report.
func (s *ReportService) AddPhotos(ctx context.Context, id string, paths []string) ([]domain.Photo, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}

	report, err := s.reportStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	photos, err := s.ingest.ingest(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest photos: %w", err)
	}
	if len(photos) == 0 {
		return nil, domain.ErrNoPhotos
	}

	report.Photos = append(report.Photos, photos...)
	if err := s.save(ctx, report); err != nil {
		return nil, err
	}
	logger.Info("Added %d photo(s) to report %s", len(photos), id)
	return photos, nil
}

// RemovePhoto removes one photo from a report.
func (s *ReportService) RemovePhoto(ctx context.Context, id, photoID string) error {
	if s.reportStore == nil {
		return domain.ErrNotImplemented
	}

	report, err := s.reportStore.Get(ctx, id)
	if err != nil {
		return err
	}

	kept := report.Photos[:0]
	removed := false
	for _, p := range report.Photos {
		if p.ID == photoID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return fmt.Errorf("photo %s: %w", photoID, domain.ErrNotFound)
	}
	report.Photos = kept

	return s.save(ctx, report)
}

// Groups returns the report's photos grouped by filename prefix.
func (s *ReportService) Groups(ctx context.Context, id string) ([]domain.Group, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	report, err := s.reportStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return grouping.Group(report.Items()), nil
}

func (s *ReportService) save(ctx context.Context, report *domain.Report) error {
	report.UpdatedAt = s.now()
	if err := s.reportStore.Save(ctx, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func defaultAuthor(settings driving.SettingsService) string {
	if settings == nil {
		return ""
	}
	s, err := settings.Get()
	if err != nil {
		return ""
	}
	return s.Export.Author
}
