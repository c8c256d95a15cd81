package tui

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("tui: report service is required")

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("tui: export service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
