// Package reports provides the report list view for the TUI.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
)

var errNoReportService = errors.New("report service not available")

// View lists stored reports.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	reportService driving.ReportService

	reports  []domain.ReportSummary
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new report list view.
func NewView(s *styles.Styles, reportService driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		keymap:        keymap.DefaultKeyMap(),
		reportService: reportService,
		reports:       []domain.ReportSummary{},
	}
}

// Init loads the reports.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadReports()
}

// loadReports returns a command that lists reports from the service.
func (v *View) loadReports() tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportsLoaded{Err: errNoReportService}
		}
		reports, err := v.reportService.List(context.Background())
		return messages.ReportsLoaded{Reports: reports, Err: err}
	}
}

// deleteReport returns a command that deletes a report.
func (v *View) deleteReport(id string) tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportDeleted{ID: id, Err: errNoReportService}
		}
		err := v.reportService.Delete(context.Background(), id)
		return messages.ReportDeleted{ID: id, Err: err}
	}
}

// Update handles messages for the report list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReportsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.reports = msg.Reports
		v.err = nil
		if v.selected >= len(v.reports) {
			v.selected = max(len(v.reports)-1, 0)
		}
		return v, nil

	case messages.ReportDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadReports()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.reports)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if r, ok := v.current(); ok {
			return v, func() tea.Msg {
				return messages.ReportSelected{ID: r.ID}
			}
		}
	case keymap.Matches(k, v.keymap.Export):
		if r, ok := v.current(); ok {
			return v, func() tea.Msg {
				return messages.ExportRequested{ReportID: r.ID}
			}
		}
	case keymap.Matches(k, v.keymap.Delete):
		if r, ok := v.current(); ok {
			return v, v.deleteReport(r.ID)
		}
	case keymap.Matches(k, v.keymap.Reload):
		v.loading = true
		return v, v.loadReports()
	case keymap.Matches(k, v.keymap.Settings):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSettings}
		}
	}

	return v, nil
}

func (v *View) current() (domain.ReportSummary, bool) {
	if v.selected < 0 || v.selected >= len(v.reports) {
		return domain.ReportSummary{}, false
	}
	return v.reports[v.selected], true
}

// View renders the report list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Reports"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading reports..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.reports) == 0:
		b.WriteString(v.styles.Muted.Render("No reports yet. Create one with: photoreport report create"))
	default:
		for i := range v.reports {
			b.WriteString(v.renderReport(i, &v.reports[i]))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderReport renders a single report line.
func (v *View) renderReport(index int, r *domain.ReportSummary) string {
	title := r.Title
	if title == "" {
		title = r.ID
	}
	maxTitle := v.width - 40
	if maxTitle < 20 {
		maxTitle = 20
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	photos := fmt.Sprintf("%3d photos", r.PhotoCount)
	updated := ""
	if !r.UpdatedAt.IsZero() {
		updated = r.UpdatedAt.Local().Format("2006-01-02 15:04")
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-*s %s  %s", maxTitle, title, photos, updated))
	}
	return v.styles.Normal.Render(fmt.Sprintf("  %-*s ", maxTitle, title)) +
		v.styles.Subtitle.Render(photos) +
		v.styles.Muted.Render("  "+updated)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reports returns the loaded reports.
func (v *View) Reports() []domain.ReportSummary {
	return v.reports
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Loading reports whether a reload is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
