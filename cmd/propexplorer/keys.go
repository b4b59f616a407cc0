package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the explorer's bindings. Object pane and inspector share the
// navigation keys; what Enter and the arrows do depends on the focused pane.
type KeyMap struct {
	Up, Down, Left, Right key.Binding
	PageUp, PageDown      key.Binding
	Home, End             key.Binding

	Enter, Tab, Esc key.Binding
	Mark            key.Binding

	Undo, Redo          key.Binding
	Detail              key.Binding
	CopyValue, CopyPath key.Binding
	Help, Quit          key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns vi-flavored bindings next to the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("↑/k", "move up", "up", "k"),
		Down:     bind("↓/j", "move down", "down", "j"),
		Left:     bind("←/h", "previous choice", "left", "h"),
		Right:    bind("→/l", "next choice", "right", "l"),
		PageUp:   bind("pgup", "page up", "pgup"),
		PageDown: bind("pgdn", "page down", "pgdown"),
		Home:     bind("g", "go to top", "home", "g"),
		End:      bind("G", "go to bottom", "end", "G"),

		Enter: bind("enter", "inspect/edit/toggle", "enter"),
		Tab:   bind("tab", "switch pane", "tab"),
		Esc:   bind("esc", "cancel", "esc"),
		// bubbletea reports the space bar as " "; "space" covers newer releases.
		Mark: bind("space/x", "mark object", " ", "space", "x"),

		Undo:      bind("ctrl+z/u", "undo", "ctrl+z", "u"),
		Redo:      bind("ctrl+y/U", "redo", "ctrl+y", "U"),
		Detail:    bind("i", "field details", "i"),
		CopyValue: bind("y", "copy value", "y"),
		CopyPath:  bind("c", "copy path", "c"),
		Help:      bind("?", "help", "?"),
		Quit:      bind("q", "quit", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap, one column per group.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Tab, k.Mark, k.Enter, k.Esc},
		{k.Undo, k.Redo, k.Detail, k.CopyValue, k.CopyPath, k.Help, k.Quit},
	}
}
