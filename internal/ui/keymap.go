package ui

import "github.com/charmbracelet/bubbles/key"

// HelpContext selects the bindings shown in the help bar.
type HelpContext int

const (
	ContextSwap HelpContext = iota
	ContextSelectToken
	ContextAlert
)

// KeyMap defines keyboard shortcuts for the application. Printable keys
// belong to the text inputs, so commands use control chords.
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Swap screen
	SelectToken key.Binding
	Flip        key.Binding
	Settings    key.Binding
	Swap        key.Binding

	// Alert
	Dismiss key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global navigation
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),

		// Swap screen
		SelectToken: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "select token"),
		),
		Flip: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "flip pair"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "settings"),
		),
		Swap: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "swap"),
		),

		// Alert
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "ok"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SelectToken, k.Quit}
}

// ContextualHelp returns help text for ctx
func (k KeyMap) ContextualHelp(ctx HelpContext) []key.Binding {
	switch ctx {
	case ContextSwap:
		return []key.Binding{k.Tab, k.SelectToken, k.Flip, k.Swap, k.Settings, k.Quit}
	case ContextSelectToken:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Quit}
	case ContextAlert:
		return []key.Binding{k.Dismiss, k.Quit}
	default:
		return k.ShortHelp()
	}
}
