// Package report provides the single report view for the TUI.
// It shows the cover-page fields followed by the photo groups in the order
// they will appear in the PDF.
package report

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

// chrome is the number of lines reserved for the title and status bar.
const chrome = 4

// View shows one report.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	reportService driving.ReportService

	reportID string
	report   *domain.Report
	groups   []domain.Group
	offset   int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new report view.
func NewView(s *styles.Styles, reportService driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		keymap:        keymap.DefaultKeyMap(),
		reportService: reportService,
	}
}

// SetReport switches the view to a report and returns the load command.
func (v *View) SetReport(id string) tea.Cmd {
	v.reportID = id
	v.report = nil
	v.groups = nil
	v.offset = 0
	v.err = nil
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	id := v.reportID
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportLoaded{Err: errNoReportService}
		}
		ctx := context.Background()
		report, err := v.reportService.Get(ctx, id)
		if err != nil {
			return messages.ReportLoaded{Err: err}
		}
		groups, err := v.reportService.Groups(ctx, id)
		if err != nil {
			return messages.ReportLoaded{Report: report, Err: err}
		}
		return messages.ReportLoaded{Report: report, Groups: groups}
	}
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportLoaded:
		v.loading = false
		if msg.Report != nil && msg.Report.ID != v.reportID {
			return v, nil
		}
		v.report = msg.Report
		v.groups = msg.Groups
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.offset > 0 {
			v.offset--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.offset < v.maxOffset() {
			v.offset++
		}
	case keymap.Matches(k, v.keymap.Export):
		if v.reportID != "" {
			id := v.reportID
			return v, func() tea.Msg {
				return messages.ExportRequested{ReportID: id}
			}
		}
	case keymap.Matches(k, v.keymap.Reload):
		if v.reportID != "" {
			return v, v.SetReport(v.reportID)
		}
	}
	return v, nil
}

// lines renders the scrollable body.
func (v *View) lines() []string {
	r := v.report
	if r == nil {
		return nil
	}

	var out []string
	field := func(label, value string) {
		if value == "" {
			return
		}
		out = append(out, v.styles.Muted.Render(fmt.Sprintf("%-9s", label))+" "+v.styles.Normal.Render(value))
	}
	field("Project", r.Project)
	field("Location", r.Location)
	field("Author", r.Author)
	if !r.ReportDate.IsZero() {
		field("Date", r.ReportDate.Format("2006-01-02"))
	}
	field("Notes", r.Notes)
	out = append(out, "", v.styles.Muted.Render(
		fmt.Sprintf("%d photos in %d groups", len(r.Photos), len(v.groups)),
	), "")

	for _, g := range v.groups {
		key := g.Key
		if key == "" {
			key = "(ungrouped)"
		}
		out = append(out, v.styles.GroupHeader.Render(fmt.Sprintf("%s  (%d)", key, len(g.Items))))
		for _, item := range g.Items {
			out = append(out, "  "+v.styles.Normal.Render(item.DisplayName))
		}
	}
	return out
}

func (v *View) visibleLines() int {
	n := v.height - chrome - 2
	if n < 1 {
		n = 1
	}
	return n
}

func (v *View) maxOffset() int {
	n := len(v.lines()) - v.visibleLines()
	if n < 0 {
		return 0
	}
	return n
}

// View renders the report.
func (v *View) View() string {
	var b strings.Builder

	title := "Report"
	if v.report != nil && v.report.Title != "" {
		title = v.report.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading report..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		return b.String()
	}

	lines := v.lines()
	end := v.offset + v.visibleLines()
	if end > len(lines) {
		end = len(lines)
	}
	start := v.offset
	if start > end {
		start = end
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	if len(v.groups) == 0 && v.report != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("No photos. Add some with: photoreport report add " + v.report.ID + " <path>"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// ReportID returns the ID of the report being shown.
func (v *View) ReportID() string {
	return v.reportID
}

// Report returns the loaded report.
func (v *View) Report() *domain.Report {
	return v.report
}

// Groups returns the loaded photo groups.
func (v *View) Groups() []domain.Group {
	return v.groups
}

// Offset returns the scroll offset.
func (v *View) Offset() int {
	return v.offset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
