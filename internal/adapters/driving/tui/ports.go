// Package tui provides an interactive terminal user interface for browsing
// and exporting photo reports.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Report manages stored reports.
	Report driving.ReportService

	// Export renders reports to PDF.
	Export driving.ExportService

	// Settings exposes the effective settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	report driving.ReportService,
	export driving.ExportService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Report:   report,
		Export:   export,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Report == nil {
		return ErrMissingReportService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
