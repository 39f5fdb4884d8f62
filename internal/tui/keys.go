package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Select      key.Binding
	Execute     key.Binding
	Delete      key.Binding
	Favorite    key.Binding
	ToggleView  key.Binding
	ToggleRegex key.Binding
	ToggleCase  key.Binding
	Copy        key.Binding
	Backspace   key.Binding
	Quit        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Execute, k.Select, k.Delete, k.Quit, k.Favorite}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Execute, k.Select, k.Copy},
		{k.Delete, k.Favorite},
		{k.ToggleView, k.ToggleRegex, k.ToggleCase},
		{k.Backspace, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "next page"),
	),
	Select: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "select"),
	),
	Execute: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "remove"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("C-f", "add/rm fav"),
	),
	ToggleView: key.NewBinding(
		key.WithKeys("ctrl+_", "ctrl+/"),
		key.WithHelp("C-/", "view"),
	),
	ToggleRegex: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "regex"),
	),
	ToggleCase: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "case"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("bksp", "erase"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}
