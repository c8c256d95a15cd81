package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/grouping"
	"github.com/custodia-labs/photoreport-cli/internal/core/pagination"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// defaultBaseName is used when a report title has no usable characters.
const defaultBaseName = "photo-report"

// ExportService groups, paginates and renders reports.
type ExportService struct {
	reportStore driven.ReportStore
	renderer    driven.ReportRenderer
	settings    driving.SettingsService
	ingest      *ingester
	now         func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(
	reportStore driven.ReportStore,
	renderer driven.ReportRenderer,
	photoSource driven.PhotoSource,
	images driven.ImageProcessor,
	settings driving.SettingsService,
) *ExportService {
	return &ExportService{
		reportStore: reportStore,
		renderer:    renderer,
		settings:    settings,
		ingest:      newIngester(photoSource, images, settings),
		now:         time.Now,
	}
}

// Plan groups and paginates items using the current settings.
func (s *ExportService) Plan(items []domain.Item) (*domain.ExportPlan, error) {
	settings, err := s.currentSettings()
	if err != nil {
		return nil, err
	}
	return s.plan(items, settings)
}

func (s *ExportService) plan(items []domain.Item, settings *domain.AppSettings) (*domain.ExportPlan, error) {
	logger.Section("Layout")

	p, err := pagination.New(settings.Page.Config(), settings.Grid)
	if err != nil {
		return nil, err
	}
	p.OnTransition = func(from, to pagination.State, pageIndex int) {
		logger.Debug("page %d: %s -> %s", pageIndex, from, to)
	}

	groups := grouping.Group(items)
	pages := p.Layout(groups)
	m := p.Metrics()
	logger.Info("%d item(s) in %d group(s) on %d page(s), cell %.1fx%.1f",
		len(items), len(groups), len(pages), m.CellWidth, m.CellHeight)

	return &domain.ExportPlan{
		Groups: groups,
		Pages:  pages,
		Page:   settings.Page.Config(),
		Grid:   settings.Grid,
	}, nil
}

// PlanReport plans a stored report.
func (s *ExportService) PlanReport(ctx context.Context, id string) (*domain.ExportPlan, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	report, err := s.reportStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Plan(report.Items())
}

// Export renders a stored report as PDF to w.
func (s *ExportService) Export(ctx context.Context, id string, w io.Writer) (*domain.ExportResult, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, report, w)
}

// ExportToFile renders a stored report to path.
func (s *ExportService) ExportToFile(ctx context.Context, id, path string) (*domain.ExportResult, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderToFile(ctx, report, path)
}

// ExportPaths ingests image files without storing them and renders them.
func (s *ExportService) ExportPaths(
	ctx context.Context,
	report domain.Report,
	paths []string,
	w io.Writer,
) (*domain.ExportResult, error) {
	r, err := s.adHocReport(ctx, report, paths)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, r, w)
}

// ExportPathsToFile is ExportPaths writing to path.
func (s *ExportService) ExportPathsToFile(
	ctx context.Context,
	report domain.Report,
	paths []string,
	path string,
) (*domain.ExportResult, error) {
	r, err := s.adHocReport(ctx, report, paths)
	if err != nil {
		return nil, err
	}
	return s.renderToFile(ctx, r, path)
}

// DefaultFileName derives "<title>_<yyyy-mm-dd>.pdf" from the report.
// Runs of characters other than letters and digits become a single '-'.
func (s *ExportService) DefaultFileName(report *domain.Report) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(report.Title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}

	name := b.String()
	if name == "" {
		name = defaultBaseName
	}

	date := report.ReportDate
	if date.IsZero() {
		date = s.now()
	}
	return name + "_" + date.Format("2006-01-02") + ".pdf"
}

func (s *ExportService) getReport(ctx context.Context, id string) (*domain.Report, error) {
	if s.reportStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.reportStore.Get(ctx, id)
}

func (s *ExportService) adHocReport(ctx context.Context, report domain.Report, paths []string) (*domain.Report, error) {
	photos, err := s.ingest.ingest(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest photos: %w", err)
	}
	report.Photos = photos
	if report.Author == "" {
		report.Author = defaultAuthor(s.settings)
	}
	if report.ReportDate.IsZero() {
		report.ReportDate = s.now()
	}
	return &report, nil
}

func (s *ExportService) render(ctx context.Context, report *domain.Report, w io.Writer) (*domain.ExportResult, error) {
	if s.renderer == nil {
		return nil, domain.ErrNotImplemented
	}
	if len(report.Photos) == 0 {
		return nil, domain.ErrNoPhotos
	}

	settings, err := s.currentSettings()
	if err != nil {
		return nil, err
	}
	plan, err := s.plan(report.Items(), settings)
	if err != nil {
		return nil, err
	}

	logger.Section("Render")
	done := logger.Timed("render")
	err = s.renderer.Render(ctx, w, report, plan)
	done()
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return &domain.ExportResult{
		PhotoCount: len(report.Photos),
		GroupCount: len(plan.Groups),
		PageCount:  plan.PageCount(),
	}, nil
}

// renderToFile writes through a temporary file in the target directory so
// a failed render never leaves a truncated PDF behind.
func (s *ExportService) renderToFile(ctx context.Context, report *domain.Report, path string) (*domain.ExportResult, error) {
	if path == "" {
		dir := ""
		if settings, err := s.currentSettings(); err == nil {
			dir = settings.Export.Directory
		}
		path = filepath.Join(dir, s.DefaultFileName(report))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".photoreport-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	result, err := s.render(ctx, report, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write output file: %w", cerr)
	}
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	result.Path = path
	logger.Info("Wrote %s", path)
	return result, nil
}

func (s *ExportService) currentSettings() (*domain.AppSettings, error) {
	if s.settings == nil {
		d := domain.DefaultAppSettings()
		return &d, nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}
