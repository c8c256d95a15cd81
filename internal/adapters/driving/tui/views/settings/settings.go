// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driving"
)

var errNoSettingsService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyReset = "x"
)

// View lists settings and edits one at a time.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	settings []domain.Setting
	selected int
	editing  bool
	input    textinput.Model
	notice   string
	err      error

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 256
	input.Prompt = "> "

	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		settingsService: settingsService,
		input:           input,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := v.settingsService.List()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) resetSetting(key string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Reset(key)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		if v.selected >= len(v.settings) {
			v.selected = max(len(v.settings)-1, 0)
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Saved %s", msg.Key)
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.settings)-1 {
			v.selected++
		}
	case k == keyEnter:
		if s, ok := v.current(); ok {
			v.editing = true
			v.err = nil
			v.notice = ""
			v.input.SetValue(s.Value)
			v.input.CursorEnd()
			return v, v.input.Focus()
		}
	case k == keyReset:
		if s, ok := v.current(); ok {
			return v, v.resetSetting(s.Key)
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.loadSettings()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case keyEnter:
		s, ok := v.current()
		v.editing = false
		v.input.Blur()
		if !ok {
			return v, nil
		}
		return v, v.saveSetting(s.Key, strings.TrimSpace(v.input.Value()))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) current() (domain.Setting, bool) {
	if v.selected < 0 || v.selected >= len(v.settings) {
		return domain.Setting{}, false
	}
	return v.settings[v.selected], true
}

// View renders the settings.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if len(v.settings) == 0 {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	width := 0
	for _, s := range v.settings {
		width = max(width, len(s.Key))
	}

	section := ""
	for i, s := range v.settings {
		if head, _, ok := strings.Cut(s.Key, "."); ok && head != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = head
			b.WriteString(v.styles.Subtitle.Render(head))
			b.WriteString("\n")
		}
		b.WriteString(v.renderSetting(i, s, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.editing:
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	default:
		b.WriteString(v.styles.Help.Render("[enter] edit  [x] reset to default  [r] reload"))
	}
	return b.String()
}

func (v *View) renderSetting(index int, s domain.Setting, width int) string {
	value := s.Value
	if value == "" {
		value = "(empty)"
	}
	line := fmt.Sprintf("  %-*s  %s", width, s.Key, value)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	if !s.IsDefault() {
		return v.styles.Normal.Render(line) + v.styles.Muted.Render(fmt.Sprintf("  (default %s)", s.Default))
	}
	return v.styles.Normal.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = width - 4
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.editing = false
	v.input.Blur()
	v.notice = ""
	v.err = nil
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Settings returns the loaded settings.
func (v *View) Settings() []domain.Setting {
	return v.settings
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
