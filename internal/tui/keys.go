package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Expand key.Binding
	Toggle key.Binding
	Next   key.Binding
	Pick   key.Binding
	Drop   key.Binding
	Before key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "show/hide"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		Pick: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move well"),
		),
		Drop: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drop"),
		),
		Before: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "drop before"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// footerBindings returns the hints shown for view v, with drop keys only
// while a well is picked up.
func footerBindings(km KeyMap, v View, picking bool) []key.Binding {
	switch {
	case v != ViewOilfield:
		return []key.Binding{km.Up, km.Down, km.Expand, km.Toggle, km.Next, km.Quit}
	case picking:
		return []key.Binding{km.Up, km.Down, km.Expand, km.Drop, km.Before, km.Cancel, km.Quit}
	default:
		return []key.Binding{km.Up, km.Down, km.Expand, km.Pick, km.Next, km.Quit}
	}
}
