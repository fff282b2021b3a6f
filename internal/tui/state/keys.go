package state

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings plus the per-tab action keys shown in help
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Help     key.Binding
	CheckIn  key.Binding
	Clear    key.Binding
	Write    key.Binding
	Add      key.Binding
	Achieve  key.Binding
	Drop     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		CheckIn: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check in"),
		),
		Clear: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "clear check"),
		),
		Write: key.NewBinding(
			key.WithKeys("e", "w"),
			key.WithHelp("e", "write reflection"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		Achieve: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark achieved"),
		),
		Drop: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drop goal"),
		),
	}
}
