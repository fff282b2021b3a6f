package handlers

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/tui/components/goals"
	"github.com/steadhq/stead/internal/tui/state"
)

// HandleGoalFormState handles the goal creation form
func HandleGoalFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateGoals
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		now := time.Now()
		periodKey, err := period.KeyFor(m.GoalForm.Horizon, now)
		if err != nil {
			m.FormError = fmt.Sprintf("Invalid horizon: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		goal := models.Goal{
			ID:        uuid.New().String(),
			Title:     strings.TrimSpace(m.GoalForm.Title),
			Horizon:   m.GoalForm.Horizon,
			PeriodKey: periodKey,
			Status:    constants.GoalOpen,
			CreatedAt: now,
		}
		if err := goal.Validate(); err != nil {
			m.FormError = fmt.Sprintf("Invalid goal: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		if err := m.Store.AddGoal(goal); err != nil {
			// Store error and stay in form state to allow retry
			m.FormError = fmt.Sprintf("Failed to create goal: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		m.RefreshGoals()
		m.FormError = ""
		m.State = constants.StateGoals
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateGoals
	}
	return tea.Batch(cmds...)
}

// HandleGoalMessages handles messages emitted by the goals tab
func HandleGoalMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case goals.AddGoalMsg:
		m.FormError = ""
		m.GoalForm = &state.GoalFormModel{
			Horizon: constants.HorizonWeek,
		}
		m.Form = NewGoalForm(m.GoalForm)
		m.State = constants.StateGoalForm
		return true, m.Form.Init()

	case goals.AchieveGoalMsg:
		goal, err := m.Store.GetGoal(msg.ID)
		if err != nil {
			return true, nil
		}
		now := time.Now()
		goal.Status = constants.GoalAchieved
		goal.ClosedAt = &now
		if err := m.Store.UpdateGoal(goal); err == nil {
			m.RefreshGoals()
		}
		return true, nil

	case goals.DropGoalMsg:
		goal, err := m.Store.GetGoal(msg.ID)
		if err != nil {
			return true, nil
		}
		return true, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: fmt.Sprintf("Drop goal %q?", goal.Title),
				Action: func() tea.Cmd {
					now := time.Now()
					goal.Status = constants.GoalDropped
					goal.ClosedAt = &now
					if err := m.Store.UpdateGoal(goal); err == nil {
						m.RefreshGoals()
					}
					return nil
				},
			}
		}
	}
	return false, nil
}
