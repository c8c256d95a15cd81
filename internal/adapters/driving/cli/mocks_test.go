package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
)

// mockReportService implements driving.ReportService for testing.
type mockReportService struct {
	reports  map[string]*domain.Report
	groups   []domain.Group
	err      error
	created  []domain.Report
	updated  []domain.ReportMetadata
	added    []string
	removed  []string
	deleted  []string
	addResp  []domain.Photo
	listResp []domain.ReportSummary
}

func newMockReportService() *mockReportService {
	return &mockReportService{reports: make(map[string]*domain.Report)}
}

func (m *mockReportService) Create(_ context.Context, report domain.Report) (*domain.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, report)
	if report.ID == "" {
		report.ID = "new-id"
	}
	return &report, nil
}

func (m *mockReportService) Get(_ context.Context, id string) (*domain.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockReportService) List(_ context.Context) ([]domain.ReportSummary, error) {
	return m.listResp, m.err
}

func (m *mockReportService) Update(_ context.Context, id string, meta domain.ReportMetadata) (*domain.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updated = append(m.updated, meta)
	r := &domain.Report{ID: id}
	meta.Apply(r)
	return r, nil
}

func (m *mockReportService) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockReportService) AddPhotos(_ context.Context, id string, paths []string) ([]domain.Photo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.added = append(m.added, id)
	m.added = append(m.added, paths...)
	return m.addResp, nil
}

func (m *mockReportService) RemovePhoto(_ context.Context, id, photoID string) error {
	m.removed = append(m.removed, id+"/"+photoID)
	return m.err
}

func (m *mockReportService) Groups(_ context.Context, _ string) ([]domain.Group, error) {
	return m.groups, m.err
}

// mockExportService implements driving.ExportService for testing.
type mockExportService struct {
	plan       *domain.ExportPlan
	result     *domain.ExportResult
	err        error
	planned    []domain.Item
	reportID   string
	report     domain.Report
	paths      []string
	outputPath string
	streamed   bool
}

func (m *mockExportService) Plan(items []domain.Item) (*domain.ExportPlan, error) {
	m.planned = items
	if m.err != nil {
		return nil, m.err
	}
	if m.plan != nil {
		return m.plan, nil
	}
	return &domain.ExportPlan{}, nil
}

func (m *mockExportService) PlanReport(_ context.Context, id string) (*domain.ExportPlan, error) {
	m.reportID = id
	return m.plan, m.err
}

func (m *mockExportService) Export(_ context.Context, id string, w io.Writer) (*domain.ExportResult, error) {
	m.reportID = id
	m.streamed = true
	if m.err != nil {
		return nil, m.err
	}
	_, _ = io.WriteString(w, "%PDF-mock")
	return &domain.ExportResult{PageCount: 1}, nil
}

func (m *mockExportService) ExportToFile(_ context.Context, id, path string) (*domain.ExportResult, error) {
	m.reportID = id
	m.outputPath = path
	return m.fileResult(path)
}

func (m *mockExportService) ExportPaths(
	_ context.Context, report domain.Report, paths []string, w io.Writer,
) (*domain.ExportResult, error) {
	m.report = report
	m.paths = paths
	m.streamed = true
	if m.err != nil {
		return nil, m.err
	}
	_, _ = io.WriteString(w, "%PDF-mock")
	return &domain.ExportResult{PageCount: 1}, nil
}

func (m *mockExportService) ExportPathsToFile(
	_ context.Context, report domain.Report, paths []string, path string,
) (*domain.ExportResult, error) {
	m.report = report
	m.paths = paths
	m.outputPath = path
	return m.fileResult(path)
}

func (m *mockExportService) fileResult(path string) (*domain.ExportResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	if path == "" {
		path = "/exports/default.pdf"
	}
	return &domain.ExportResult{Path: path, PhotoCount: 3, GroupCount: 2, PageCount: 1}, nil
}

func (m *mockExportService) DefaultFileName(report *domain.Report) string {
	return report.Title + ".pdf"
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings    domain.AppSettings
	list        []domain.Setting
	err         error
	validateErr error
	set         map[string]string
	overrides   map[string]string
	reset       []string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings:  domain.DefaultAppSettings(),
		set:       make(map[string]string),
		overrides: make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Override(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.overrides[key] = value
	return nil
}

func (m *mockSettingsService) Reset(key string) error {
	m.reset = append(m.reset, key)
	return m.err
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) List() ([]domain.Setting, error) {
	return m.list, m.err
}

// mockWatchService implements driving.WatchService for testing.
type mockWatchService struct {
	dir     string
	report  domain.Report
	output  string
	results []*domain.ExportResult
	errs    []error
	err     error
}

func (m *mockWatchService) Watch(
	_ context.Context, dir string, report domain.Report, output string, onExport driving.ExportCallback,
) error {
	m.dir = dir
	m.report = report
	m.output = output
	for _, r := range m.results {
		onExport(r, nil)
	}
	for _, e := range m.errs {
		onExport(nil, e)
	}
	return m.err
}

var (
	_ driving.ReportService   = (*mockReportService)(nil)
	_ driving.ExportService   = (*mockExportService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
	_ driving.WatchService    = (*mockWatchService)(nil)
)

// resetFlags restores every flag in the command tree to its default so
// values and Changed state do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCommand executes the root command with the given services, stdin and
// arguments and returns everything written to stdout and stderr.
func runCommand(t *testing.T, services *Services, stdin string, args ...string) (string, error) {
	t.Helper()

	SetServices(services)
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		SetServices(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
