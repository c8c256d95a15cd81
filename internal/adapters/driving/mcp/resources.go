package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for photoreport resources.
	uriScheme = "photoreport://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing reports.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "List of all stored photo reports",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	// Template for a single report with its photo groups.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{reportId}",
		Name:        "report",
		Description: "Cover-page details and photo groups of a stored report",
		MIMEType:    "application/json",
	}, s.handleReportResource)
}

// handleReportsResource returns a list of all stored reports.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Report == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	reports, err := s.ports.Report.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	infos := make([]ReportResult, len(reports))
	for i, r := range reports {
		infos[i] = reportResult(r)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling reports: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleReportResource returns one report and its groups.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Report == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract reportId from URI: photoreport://reports/{reportId}
	reportID := extractReportID(req.Params.URI)
	if reportID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report, err := s.ports.Report.Get(ctx, reportID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}
	groups, err := s.ports.Report.Groups(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("grouping report: %w", err)
	}

	type reportInfo struct {
		ID       string        `json:"id"`
		Title    string        `json:"title"`
		Project  string        `json:"project,omitempty"`
		Location string        `json:"location,omitempty"`
		Author   string        `json:"author,omitempty"`
		Date     string        `json:"date,omitempty"`
		Notes    string        `json:"notes,omitempty"`
		Groups   []GroupResult `json:"groups"`
	}

	info := reportInfo{
		ID:       report.ID,
		Title:    report.Title,
		Project:  report.Project,
		Location: report.Location,
		Author:   report.Author,
		Notes:    report.Notes,
		Groups:   make([]GroupResult, len(groups)),
	}
	if !report.ReportDate.IsZero() {
		info.Date = report.ReportDate.Format("2006-01-02")
	}
	for i, g := range groups {
		names := make([]string, len(g.Items))
		for j, item := range g.Items {
			names[j] = item.DisplayName
		}
		info.Groups[i] = GroupResult{Key: g.Key, FileNames: names}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractReportID extracts the report ID from a URI like photoreport://reports/{reportId}.
func extractReportID(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
