package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	FlingUp    key.Binding
	FlingDown  key.Binding
	FlingLeft  key.Binding
	FlingRight key.Binding
	Collapse   key.Binding
	Expand     key.Binding
	HeaderUp   key.Binding
	HeaderDown key.Binding
	Open       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Jump       key.Binding
	YankURL    key.Binding
	Pin        key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll list up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll list down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "scroll strip back"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "scroll strip forward"),
		),
		FlingUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "fling list up"),
		),
		FlingDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "fling list down"),
		),
		FlingLeft: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "fling strip back"),
		),
		FlingRight: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "fling strip forward"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse header"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand header"),
		),
		HeaderUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "drag header up"),
		),
		HeaderDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drag header down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open tab"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "first tab"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last tab"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to tab"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank URL"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
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
