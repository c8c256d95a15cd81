package mcp

import (
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Export plans layouts and writes PDFs.
	Export driving.ExportService

	// Report reads stored reports. Optional; without it the report
	// tool and resources return empty results.
	Report driving.ReportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
