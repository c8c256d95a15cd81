package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	plan       *domain.ExportPlan
	planItems  []domain.Item
	result     *domain.ExportResult
	exportedID string
	exportPath string
	err        error
}

func (m *mockExportService) Plan(items []domain.Item) (*domain.ExportPlan, error) {
	m.planItems = items
	return m.plan, m.err
}

func (m *mockExportService) PlanReport(_ context.Context, _ string) (*domain.ExportPlan, error) {
	return m.plan, m.err
}

func (m *mockExportService) Export(_ context.Context, _ string, _ io.Writer) (*domain.ExportResult, error) {
	return m.result, m.err
}

func (m *mockExportService) ExportToFile(_ context.Context, id, path string) (*domain.ExportResult, error) {
	m.exportedID = id
	m.exportPath = path
	return m.result, m.err
}

func (m *mockExportService) ExportPaths(
	_ context.Context,
	_ domain.Report,
	_ []string,
	_ io.Writer,
) (*domain.ExportResult, error) {
	return m.result, m.err
}

func (m *mockExportService) ExportPathsToFile(
	_ context.Context,
	_ domain.Report,
	_ []string,
	_ string,
) (*domain.ExportResult, error) {
	return m.result, m.err
}

func (m *mockExportService) DefaultFileName(_ *domain.Report) string {
	return "report.pdf"
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	reports []domain.ReportSummary
	report  *domain.Report
	groups  []domain.Group
	err     error
}

func (m *mockReportService) Create(_ context.Context, r domain.Report) (*domain.Report, error) {
	return &r, m.err
}

func (m *mockReportService) Get(_ context.Context, _ string) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) List(_ context.Context) ([]domain.ReportSummary, error) {
	return m.reports, m.err
}

func (m *mockReportService) Update(_ context.Context, _ string, _ domain.ReportMetadata) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockReportService) AddPhotos(_ context.Context, _ string, _ []string) ([]domain.Photo, error) {
	return nil, m.err
}

func (m *mockReportService) RemovePhoto(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockReportService) Groups(_ context.Context, _ string) ([]domain.Group, error) {
	return m.groups, m.err
}
