// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewReports is the list of stored reports.
	ViewReports ViewType = iota
	// ViewReport shows one report and its photo groups.
	ViewReport
	// ViewSettings lists the current settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewReports:
		return "reports"
	case ViewReport:
		return "report"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ReportsLoaded carries the list of reports from the service.
type ReportsLoaded struct {
	Reports []domain.ReportSummary
	Err     error
}

// ReportSelected signals a report was chosen from the list.
type ReportSelected struct {
	ID string
}

// ReportLoaded carries a report and its photo groups.
type ReportLoaded struct {
	Report *domain.Report
	Groups []domain.Group
	Err    error
}

// ReportDeleted signals a report was deleted.
type ReportDeleted struct {
	ID  string
	Err error
}

// ExportRequested asks the app to export a report to its default file.
type ExportRequested struct {
	ReportID string
}

// ExportCompleted carries the outcome of an export.
type ExportCompleted struct {
	ReportID string
	Result   *domain.ExportResult
	Err      error
}

// SettingsLoaded carries the current settings.
type SettingsLoaded struct {
	Settings []domain.Setting
	Err      error
}

// SettingsSaved signals a setting was stored or reset.
type SettingsSaved struct {
	Key string
	Err error
}
