package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/views/reports"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	reportsView  *reports.View
	reportView   *report.View
	settingsView *settings.View
	statusBar    *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where help returns to.
	previousView messages.ViewType

	// lastExport is the most recent successful export.
	lastExport *domain.ExportResult

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.ReportsHelp())

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		reportsView:  reports.NewView(s, ports.Report),
		reportView:   report.NewView(s, ports.Report),
		settingsView: settings.NewView(s, ports.Settings),
		statusBar:    bar,
		currentView:  messages.ViewReports,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.SetWindowTitle("photoreport"),
		a.reportsView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ReportsLoaded:
		a.reportsView, cmd = a.reportsView.Update(msg)
		a.settle(msg.Err)
		return a, cmd

	case messages.ReportDeleted:
		a.reportsView, cmd = a.reportsView.Update(msg)
		if msg.Err == nil {
			a.statusBar.SetState(status.StateLoading)
		} else {
			a.settle(msg.Err)
		}
		return a, cmd

	case messages.ReportSelected:
		a.statusBar.SetState(status.StateLoading)
		a.setView(messages.ViewReport)
		return a, a.reportView.SetReport(msg.ID)

	case messages.ReportLoaded:
		a.reportView, cmd = a.reportView.Update(msg)
		a.settle(msg.Err)
		return a, cmd

	case messages.ExportRequested:
		a.statusBar.SetState(status.StateExporting)
		a.statusBar.SetMessage("")
		return a, a.export(msg.ReportID)

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.settle(msg.Err)
			return a, nil
		}
		a.lastExport = msg.Result
		a.statusBar.SetState(status.StateExported)
		a.statusBar.SetMessage(fmt.Sprintf("Wrote %s (%d pages)", msg.Result.Path, msg.Result.PageCount))
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.settle(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Anything else goes to the active view (cursor blink and the like).
	switch a.currentView {
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	if k == "ctrl+c" {
		return a, tea.Quit
	}
	if a.currentView == messages.ViewSettings && a.settingsView.Editing() {
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		if a.currentView != messages.ViewHelp {
			a.previousView = a.currentView
			a.setView(messages.ViewHelp)
		}
		return a, nil
	case keymap.Matches(k, a.keymap.Back):
		switch a.currentView {
		case messages.ViewHelp:
			a.setView(a.previousView)
		case messages.ViewReport, messages.ViewSettings:
			a.setView(messages.ViewReports)
		case messages.ViewReports:
		}
		return a, nil
	}

	switch a.currentView {
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// switchTo changes view and runs its initial command.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.setView(view)
	switch view {
	case messages.ViewReports:
		return a.reportsView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewReport, messages.ViewHelp:
	}
	return nil
}

func (a *App) setView(view messages.ViewType) {
	a.currentView = view
	switch view {
	case messages.ViewReports:
		a.statusBar.SetHints(a.keymap.ReportsHelp())
	case messages.ViewReport:
		a.statusBar.SetHints(a.keymap.ReportHelp())
	case messages.ViewSettings, messages.ViewHelp:
		a.statusBar.SetHints([]key.Binding{a.keymap.Back, a.keymap.Quit})
	}
}

// settle moves the status bar out of a loading state.
func (a *App) settle(err error) {
	if err != nil {
		a.err = err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
		return
	}
	if a.statusBar.State() == status.StateLoading {
		a.statusBar.Clear()
	}
}

// export returns a command that writes the report to its default file.
func (a *App) export(id string) tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Export
	return func() tea.Msg {
		result, err := svc.ExportToFile(ctx, id, "")
		return messages.ExportCompleted{ReportID: id, Result: result, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewReport:
		body = a.reportView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.reportsView.View()
	}

	gap := a.height - strings.Count(body, "\n") - 2
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("Exports are written to the configured export directory."))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// LastExport returns the most recent successful export, or nil.
func (a *App) LastExport() *domain.ExportResult {
	return a.lastExport
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.reportsView.SetDimensions(width, height)
	a.reportView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
