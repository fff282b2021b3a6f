package goals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
)

type AddGoalMsg struct{}

type AchieveGoalMsg struct {
	ID string
}

type DropGoalMsg struct {
	ID string
}

type Item struct {
	Goal models.Goal
}

func (i Item) Title() string {
	return "○ " + i.Goal.Title
}

func (i Item) Description() string {
	if i.Goal.Horizon == constants.HorizonLife {
		return "life"
	}
	return fmt.Sprintf("%s (%s)", i.Goal.Horizon, i.Goal.PeriodKey)
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	Add     key.Binding
	Achieve key.Binding
	Drop    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Achieve: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark achieved"),
		),
		Drop: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drop"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(goals []models.Goal, width, height int) Model {
	l := list.New(toItems(goals), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Achieve, keys.Drop}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Achieve, keys.Drop}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toItems(goals []models.Goal) []list.Item {
	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = Item{Goal: g}
	}
	return items
}

func (m *Model) SetGoals(goals []models.Goal) {
	m.list.SetItems(toItems(goals))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddGoalMsg{} }
		case key.Matches(msg, m.keys.Achieve):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AchieveGoalMsg{ID: i.Goal.ID} }
			}
		case key.Matches(msg, m.keys.Drop):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DropGoalMsg{ID: i.Goal.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No open goals for the current periods.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
