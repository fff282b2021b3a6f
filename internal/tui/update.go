package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Form states capture all input until they resolve
	switch m.State {
	case constants.StateCheckInForm:
		return m, handlers.HandleCheckInFormState(&m.Model, msg)
	case constants.StateJournalForm:
		return m, handlers.HandleJournalFormState(&m.Model, msg)
	case constants.StateGoalForm:
		return m, handlers.HandleGoalFormState(&m.Model, msg)
	case constants.StateConfirmation:
		return m, handlers.HandleConfirmationState(&m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		// Adjust height for tabs and help
		listHeight := msg.Height - 4

		h, v := docStyle.GetFrameSize()
		m.TodayModel.SetSize(msg.Width-h, listHeight-v)
		m.JournalModel.SetSize(msg.Width-h, listHeight-v)
		m.GoalsModel.SetSize(msg.Width-h, listHeight-v)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		}
	}

	if handled, cmd := handlers.HandleTodayMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleJournalMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleGoalMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleConfirmationMessages(&m.Model, msg); handled {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateToday:
		m.TodayModel, cmd = m.TodayModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateJournal:
		m.JournalModel, cmd = m.JournalModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateGoals:
		m.GoalsModel, cmd = m.GoalsModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
