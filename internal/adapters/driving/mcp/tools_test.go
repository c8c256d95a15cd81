package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

func TestServer_handleGroupPhotos(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Export: &mockExportService{}})
	require.NoError(t, err)

	t.Run("groups by prefix in key order", func(t *testing.T) {
		input := FileNamesInput{FileNames: []string{"G10-1.jpg", "cr5681-1.png", "g2_b.jpg", "CR5681.jpg", "G2-a.jpg"}}
		_, output, err := server.handleGroupPhotos(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
		require.Len(t, output.Groups, 3)
		assert.Equal(t, "G2", output.Groups[0].Key)
		assert.Equal(t, []string{"G2-a.jpg", "g2_b.jpg"}, output.Groups[0].FileNames)
		assert.Equal(t, "G10", output.Groups[1].Key)
		assert.Equal(t, "CR5681", output.Groups[2].Key)
		assert.Equal(t, []string{"cr5681-1.png", "CR5681.jpg"}, output.Groups[2].FileNames)
	})

	t.Run("empty input gives no groups", func(t *testing.T) {
		_, output, err := server.handleGroupPhotos(ctx, nil, FileNamesInput{})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		assert.Empty(t, output.Groups)
	})

	t.Run("empty file name is rejected", func(t *testing.T) {
		_, _, err := server.handleGroupPhotos(ctx, nil, FileNamesInput{FileNames: []string{"a.jpg", ""}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handlePlanLayout(t *testing.T) {
	ctx := context.Background()

	t.Run("maps placements back to file names", func(t *testing.T) {
		mockExport := &mockExportService{
			plan: &domain.ExportPlan{
				Pages: []domain.PageLayout{{
					PageIndex: 1,
					Headers:   []domain.HeaderPlacement{{GroupKey: "A1", ItemCount: 2}},
					Placements: []domain.Placement{
						{ItemID: "2", X: 15, Y: 25, Width: 86, Height: 64.5},
						{ItemID: "1", X: 109, Y: 25, Width: 86, Height: 64.5},
					},
				}},
			},
		}
		server, err := NewServer(&Ports{Export: mockExport})
		require.NoError(t, err)

		_, output, err := server.handlePlanLayout(ctx, nil, FileNamesInput{FileNames: []string{"a1-2.jpg", "a1-1.jpg"}})

		require.NoError(t, err)
		assert.Len(t, mockExport.planItems, 2)
		assert.Equal(t, 1, output.PageCount)
		require.Len(t, output.Pages, 1)
		assert.Equal(t, []string{"A1"}, output.Pages[0].Groups)
		require.Len(t, output.Pages[0].Photos, 2)
		assert.Equal(t, "a1-1.jpg", output.Pages[0].Photos[0].FileName)
		assert.Equal(t, 25.0, output.Pages[0].Photos[0].Y)
		assert.Equal(t, "a1-2.jpg", output.Pages[0].Photos[1].FileName)
	})

	t.Run("returns error on plan failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Export: &mockExportService{err: domain.ErrInvalidConfig}})
		require.NoError(t, err)

		_, _, err = server.handlePlanLayout(ctx, nil, FileNamesInput{FileNames: []string{"a.jpg"}})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestServer_handleListReports(t *testing.T) {
	ctx := context.Background()
	updated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("nil report service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Export: &mockExportService{}})
		require.NoError(t, err)

		_, output, err := server.handleListReports(ctx, nil, ListReportsInput{})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		assert.NotNil(t, output.Reports)
	})

	t.Run("returns reports with limit", func(t *testing.T) {
		mockReport := &mockReportService{
			reports: []domain.ReportSummary{
				{ID: "r1", Title: "First", Project: "P1", PhotoCount: 3, UpdatedAt: updated},
				{ID: "r2", Title: "Second", PhotoCount: 1, UpdatedAt: updated},
			},
		}
		server, err := NewServer(&Ports{Export: &mockExportService{}, Report: mockReport})
		require.NoError(t, err)

		_, output, err := server.handleListReports(ctx, nil, ListReportsInput{Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "r1", output.Reports[0].ID)
		assert.Equal(t, "P1", output.Reports[0].Project)
		assert.Equal(t, 3, output.Reports[0].PhotoCount)
		assert.Equal(t, "2024-03-01T09:30:00Z", output.Reports[0].UpdatedAt)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockReport := &mockReportService{err: errors.New("db locked")}
		server, err := NewServer(&Ports{Export: &mockExportService{}, Report: mockReport})
		require.NoError(t, err)

		_, _, err = server.handleListReports(ctx, nil, ListReportsInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db locked")
	})
}

func TestServer_handleExportReport(t *testing.T) {
	ctx := context.Background()

	t.Run("exports to the given path", func(t *testing.T) {
		mockExport := &mockExportService{
			result: &domain.ExportResult{Path: "/tmp/out.pdf", PhotoCount: 4, GroupCount: 2, PageCount: 1},
		}
		server, err := NewServer(&Ports{Export: mockExport})
		require.NoError(t, err)

		_, output, err := server.handleExportReport(ctx, nil, ExportReportInput{ReportID: "r1", Path: "/tmp/out.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "r1", mockExport.exportedID)
		assert.Equal(t, "/tmp/out.pdf", mockExport.exportPath)
		assert.Equal(t, ExportReportOutput{Path: "/tmp/out.pdf", PhotoCount: 4, GroupCount: 2, PageCount: 1}, output)
	})

	t.Run("requires a report id", func(t *testing.T) {
		server, err := NewServer(&Ports{Export: &mockExportService{}})
		require.NoError(t, err)

		_, _, err = server.handleExportReport(ctx, nil, ExportReportInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on export failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Export: &mockExportService{err: domain.ErrNoPhotos}})
		require.NoError(t, err)

		_, _, err = server.handleExportReport(ctx, nil, ExportReportInput{ReportID: "r1"})
		assert.ErrorIs(t, err, domain.ErrNoPhotos)
	})
}
