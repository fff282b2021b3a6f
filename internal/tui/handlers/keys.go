package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/tui/state"
)

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return true, tea.Quit
	case "tab":
		// Cycle through main views
		switch m.State {
		case constants.StateToday:
			m.State = constants.StateJournal
		case constants.StateJournal:
			m.State = constants.StateGoals
		case constants.StateGoals:
			m.State = constants.StateToday
		}
		return true, nil
	case "shift+tab":
		// Cycle backwards through main views
		switch m.State {
		case constants.StateToday:
			m.State = constants.StateGoals
		case constants.StateJournal:
			m.State = constants.StateToday
		case constants.StateGoals:
			m.State = constants.StateJournal
		}
		return true, nil
	}
	return false, nil
}
