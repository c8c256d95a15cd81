package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/grouping"
)

// FileNamesInput is the input schema for the group_photos and plan_layout tools.
type FileNamesInput struct {
	FileNames []string `json:"file_names" jsonschema:"photo file names, for example CR5681-1.jpg"`
}

// GroupOutput is the output schema for the group_photos tool.
type GroupOutput struct {
	Groups []GroupResult `json:"groups"`
	Count  int           `json:"count"`
}

// GroupResult is one group of file names.
type GroupResult struct {
	Key       string   `json:"key"`
	FileNames []string `json:"file_names"`
}

// LayoutOutput is the output schema for the plan_layout tool.
type LayoutOutput struct {
	PageCount int          `json:"page_count"`
	Pages     []PageResult `json:"pages"`
}

// PageResult describes one laid-out page.
type PageResult struct {
	Page   int               `json:"page"`
	Groups []string          `json:"groups"`
	Photos []PlacementResult `json:"photos"`
}

// PlacementResult is a photo box on a page, in millimetres.
type PlacementResult struct {
	FileName string  `json:"file_name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// ListReportsInput is the input schema for the list_reports tool.
type ListReportsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of reports to return (default 20)"`
}

// ListReportsOutput is the output schema for the list_reports tool.
type ListReportsOutput struct {
	Reports []ReportResult `json:"reports"`
	Count   int            `json:"count"`
}

// ReportResult summarises a stored report.
type ReportResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Project    string `json:"project,omitempty"`
	PhotoCount int    `json:"photo_count"`
	UpdatedAt  string `json:"updated_at"`
}

// ExportReportInput is the input schema for the export_report tool.
type ExportReportInput struct {
	ReportID string `json:"report_id" jsonschema:"ID of the stored report"`
	Path     string `json:"path,omitempty" jsonschema:"output PDF path (default title_date.pdf in the export directory)"`
}

// ExportReportOutput is the output schema for the export_report tool.
type ExportReportOutput struct {
	Path       string `json:"path"`
	PhotoCount int    `json:"photo_count"`
	GroupCount int    `json:"group_count"`
	PageCount  int    `json:"page_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "group_photos",
		Description: "Group photo file names by their filename prefix, in report order",
	}, s.handleGroupPhotos)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_layout",
		Description: "Paginate photo file names into PDF pages using the current page and grid settings",
	}, s.handlePlanLayout)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reports",
		Description: "List stored photo reports, most recently updated first",
	}, s.handleListReports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_report",
		Description: "Export a stored photo report as a PDF file",
	}, s.handleExportReport)
}

// handleGroupPhotos handles the group_photos tool invocation.
func (s *Server) handleGroupPhotos(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FileNamesInput,
) (*mcp.CallToolResult, GroupOutput, error) {
	items, err := itemsFromNames(input.FileNames)
	if err != nil {
		return nil, GroupOutput{}, err
	}

	groups := grouping.Group(items)
	output := GroupOutput{
		Groups: make([]GroupResult, len(groups)),
		Count:  len(groups),
	}
	for i, g := range groups {
		names := make([]string, len(g.Items))
		for j, item := range g.Items {
			names[j] = item.DisplayName
		}
		output.Groups[i] = GroupResult{Key: g.Key, FileNames: names}
	}
	return nil, output, nil
}

// handlePlanLayout handles the plan_layout tool invocation.
func (s *Server) handlePlanLayout(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FileNamesInput,
) (*mcp.CallToolResult, LayoutOutput, error) {
	items, err := itemsFromNames(input.FileNames)
	if err != nil {
		return nil, LayoutOutput{}, err
	}

	plan, err := s.ports.Export.Plan(items)
	if err != nil {
		return nil, LayoutOutput{}, fmt.Errorf("planning layout: %w", err)
	}

	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.DisplayName
	}

	output := LayoutOutput{
		PageCount: plan.PageCount(),
		Pages:     make([]PageResult, len(plan.Pages)),
	}
	for i, page := range plan.Pages {
		pr := PageResult{
			Page:   page.PageIndex,
			Groups: make([]string, len(page.Headers)),
			Photos: make([]PlacementResult, len(page.Placements)),
		}
		for j, h := range page.Headers {
			pr.Groups[j] = h.GroupKey
		}
		for j, p := range page.Placements {
			pr.Photos[j] = PlacementResult{
				FileName: names[p.ItemID],
				X:        p.X,
				Y:        p.Y,
				Width:    p.Width,
				Height:   p.Height,
			}
		}
		output.Pages[i] = pr
	}
	return nil, output, nil
}

// handleListReports handles the list_reports tool invocation.
func (s *Server) handleListReports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListReportsInput,
) (*mcp.CallToolResult, ListReportsOutput, error) {
	output := ListReportsOutput{Reports: []ReportResult{}}
	if s.ports.Report == nil {
		return nil, output, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	reports, err := s.ports.Report.List(ctx)
	if err != nil {
		return nil, ListReportsOutput{}, fmt.Errorf("listing reports: %w", err)
	}
	if len(reports) > limit {
		reports = reports[:limit]
	}

	output.Reports = make([]ReportResult, len(reports))
	for i, r := range reports {
		output.Reports[i] = reportResult(r)
	}
	output.Count = len(reports)
	return nil, output, nil
}

// handleExportReport handles the export_report tool invocation.
func (s *Server) handleExportReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportReportInput,
) (*mcp.CallToolResult, ExportReportOutput, error) {
	if input.ReportID == "" {
		return nil, ExportReportOutput{}, fmt.Errorf("%w: report_id is required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Export.ExportToFile(ctx, input.ReportID, input.Path)
	if err != nil {
		return nil, ExportReportOutput{}, fmt.Errorf("exporting report: %w", err)
	}

	return nil, ExportReportOutput{
		Path:       result.Path,
		PhotoCount: result.PhotoCount,
		GroupCount: result.GroupCount,
		PageCount:  result.PageCount,
	}, nil
}

func itemsFromNames(names []string) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(names))
	for i, name := range names {
		item, err := grouping.NewItem(strconv.Itoa(i+1), name, domain.DefaultAspectRatio)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func reportResult(r domain.ReportSummary) ReportResult {
	return ReportResult{
		ID:         r.ID,
		Title:      r.Title,
		Project:    r.Project,
		PhotoCount: r.PhotoCount,
		UpdatedAt:  r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
