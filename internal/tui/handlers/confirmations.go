package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/tui/state"
)

// HandleConfirmationState handles the generic confirmation state
func HandleConfirmationState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.PendingAction = nil
		m.FormError = ""
		m.State = m.PreviousState
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if m.ConfirmationForm.Confirmed && m.PendingAction != nil {
			cmds = append(cmds, m.PendingAction())
		}
		m.PendingAction = nil
		m.FormError = ""
		m.State = m.PreviousState
	case huh.StateAborted:
		m.PendingAction = nil
		m.FormError = ""
		m.State = m.PreviousState
	}
	return tea.Batch(cmds...)
}

// HandleConfirmationMessages routes confirmation requests into the dialog state
func HandleConfirmationMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.ConfirmationForm = &state.ConfirmationFormModel{
			Message: msg.Message,
		}
		m.PendingAction = msg.Action
		m.Form = NewConfirmationForm(m.ConfirmationForm)
		m.PreviousState = m.State
		m.State = constants.StateConfirmation
		return true, m.Form.Init()
	}
	return false, nil
}
