package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dropdown's keyboard shortcuts.
// Up/Down share help text since they appear as a single hint.
type KeyMap struct {
	// Trigger
	Open key.Binding
	Copy key.Binding

	// Overlay
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the default dropdown keybindings. Overlay bindings
// avoid printable keys because typing goes to the search box.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " ", "space", "down"),
			key.WithHelp("⏎", "Open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("^Y", "Copy value"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑↓", "Navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↑↓", "Navigate"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "First"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "Last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
	}
}
