package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/discipline"
	"github.com/steadhq/stead/internal/storage"
	"github.com/steadhq/stead/internal/tui/state"
)

// Model wraps the shared TUI state; update and view logic live in the
// handlers package and the per-tab components
type Model struct {
	state.Model
}

func NewModel(store storage.Provider, disciplines *discipline.Service) Model {
	return Model{Model: state.New(store, disciplines)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateToday:
		keys = append(keys, m.Keys.CheckIn, m.Keys.Clear)
	case constants.StateJournal:
		keys = append(keys, m.Keys.Write)
	case constants.StateGoals:
		keys = append(keys, m.Keys.Add, m.Keys.Achieve, m.Keys.Drop)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Enter}

	var actions []key.Binding
	switch m.State {
	case constants.StateToday:
		actions = []key.Binding{m.Keys.CheckIn, m.Keys.Clear}
	case constants.StateJournal:
		actions = []key.Binding{m.Keys.Write}
	case constants.StateGoals:
		actions = []key.Binding{m.Keys.Add, m.Keys.Achieve, m.Keys.Drop}
	}

	return [][]key.Binding{global, navigation, actions}
}
