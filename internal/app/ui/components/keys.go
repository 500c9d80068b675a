package components

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the viewer
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchPane key.Binding
	Toggle     key.Binding
	Mark       key.Binding
	ClearMarks key.Binding
	Copy       key.Binding
	Autoscroll key.Binding
	LevelTrace key.Binding
	LevelDebug key.Binding
	LevelInfo  key.Binding
	LevelWarn  key.Binding
	LevelError key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default key bindings
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
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle module"),
		),
		Mark: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "mark line"),
		),
		ClearMarks: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear marks"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy marked"),
		),
		Autoscroll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "autoscroll"),
		),
		LevelTrace: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-5", "toggle levels"),
		),
		LevelDebug: key.NewBinding(
			key.WithKeys("2"),
		),
		LevelInfo: key.NewBinding(
			key.WithKeys("3"),
		),
		LevelWarn: key.NewBinding(
			key.WithKeys("4"),
		),
		LevelError: key.NewBinding(
			key.WithKeys("5"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchPane, k.Toggle, k.Mark, k.Copy, k.Autoscroll, k.LevelTrace, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane, k.Toggle},
		{k.Mark, k.ClearMarks, k.Copy, k.Autoscroll},
		{k.LevelTrace, k.Quit, k.ForceQuit},
	}
}
