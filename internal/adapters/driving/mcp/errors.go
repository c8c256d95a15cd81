// Package mcp provides an MCP (Model Context Protocol) server adapter for photoreport.
// It lets AI assistants group photo names, preview layouts and read stored reports.
package mcp

import "errors"

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("mcp: export service is required")
