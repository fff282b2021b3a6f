package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/steadhq/stead/internal/constants"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateToday:
		content = docStyle.Render(m.TodayModel.View())
	case constants.StateJournal:
		content = m.JournalModel.View()
	case constants.StateGoals:
		content = docStyle.Render(m.GoalsModel.View())
	case constants.StateCheckInForm, constants.StateJournalForm, constants.StateGoalForm:
		content = docStyle.Render(m.Form.View())
	case constants.StateConfirmation:
		content = lipgloss.Place(m.Width, m.Height-4,
			lipgloss.Center, lipgloss.Center,
			m.Form.View(),
		)
	}

	var banner string
	if m.FormError != "" {
		banner = dangerStyle.Render(m.FormError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := []struct {
		title string
		state constants.SessionState
	}{
		{"Today", constants.StateToday},
		{"Journal", constants.StateJournal},
		{"Goals", constants.StateGoals},
	}

	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if m.State == tab.state {
			rendered = append(rendered, activeTabStyle.Render(tab.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
