package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/discipline"
)

type CheckInMsg struct {
	ID string
}

type ClearCheckMsg struct {
	ID string
}

type Item struct {
	Entry discipline.TodayEntry
}

func (i Item) Title() string {
	title := i.Entry.Discipline.Name
	if i.Entry.TodayCheck != nil {
		switch i.Entry.TodayCheck.Rating {
		case constants.RatingNailedIt:
			title = "✓ " + title
		case constants.RatingClose:
			title = "~ " + title
		case constants.RatingMissed:
			title = "✗ " + title
		}
	} else if i.Entry.ApplicableToday {
		title = "○ " + title
	} else {
		title = "· " + title
	}
	return title
}

func (i Item) Description() string {
	if !i.Entry.ApplicableToday {
		if i.Entry.NextApplicableDay != "" {
			return fmt.Sprintf("not due today, next %s", i.Entry.NextApplicableDay)
		}
		return "not due today"
	}
	desc := "not recorded today"
	if i.Entry.TodayCheck != nil {
		switch i.Entry.TodayCheck.Rating {
		case constants.RatingNailedIt:
			desc = "nailed it today"
		case constants.RatingClose:
			desc = "close today"
		case constants.RatingMissed:
			desc = "missed today"
		}
	}
	if i.Entry.Streak > 0 {
		desc = fmt.Sprintf("%s (streak: %d)", desc, i.Entry.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Discipline.Name }

type KeyMap struct {
	CheckIn key.Binding
	Clear   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		CheckIn: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check in"),
		),
		Clear: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "clear check"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []discipline.TodayEntry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.CheckIn, keys.Clear}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.CheckIn, keys.Clear}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toItems(entries []discipline.TodayEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

func (m *Model) SetEntries(entries []discipline.TodayEntry) {
	m.list.SetItems(toItems(entries))
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
		case key.Matches(msg, m.keys.CheckIn):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CheckInMsg{ID: i.Entry.Discipline.ID} }
			}
		case key.Matches(msg, m.keys.Clear):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Entry.TodayCheck != nil {
					return m, func() tea.Msg { return ClearCheckMsg{ID: i.Entry.Discipline.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No active disciplines.\n  Add one with 'stead discipline add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
