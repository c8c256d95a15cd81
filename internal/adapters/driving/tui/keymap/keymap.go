// Package keymap defines keybindings for the TUI.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings used across views. Up, Down and Select work
// in lists; Export and Delete act on the highlighted or open report.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Export   key.Binding
	Delete   key.Binding
	Reload   key.Binding
	Settings key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
	}
}

// ShortHelp is shown in the status bar when a view sets no hints.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ReportsHelp returns keybindings for the reports list.
func (k *KeyMap) ReportsHelp() []key.Binding {
	return []key.Binding{k.Select, k.Export, k.Delete, k.Settings, k.Quit}
}

// ReportHelp returns keybindings for an open report.
func (k *KeyMap) ReportHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Export, k.Back}
}

// FullHelp lists every binding, in columns, for the help screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Export, k.Delete, k.Reload},
		{k.Settings, k.Back, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of the binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
