package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/tui/components/today"
	"github.com/steadhq/stead/internal/tui/state"
)

// HandleCheckInFormState handles the discipline check-in form
func HandleCheckInFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateToday
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		day := period.Day(time.Now())

		minutes := 0
		if s := strings.TrimSpace(m.CheckInForm.Minutes); s != "" {
			parsed, err := strconv.Atoi(s)
			if err != nil {
				m.FormError = fmt.Sprintf("Invalid minutes: %v", err)
				m.Form.State = huh.StateNormal
				return tea.Batch(cmds...)
			}
			minutes = parsed
		}

		_, err := m.Disciplines.CheckIn(m.CheckInForm.DisciplineID, day, m.CheckInForm.Rating, minutes, strings.TrimSpace(m.CheckInForm.Note))
		if err != nil {
			// Store error and stay in form state to allow retry
			m.FormError = fmt.Sprintf("Failed to record check-in: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		m.RefreshToday()
		m.FormError = ""
		m.State = constants.StateToday
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateToday
	}
	return tea.Batch(cmds...)
}

// HandleTodayMessages handles messages emitted by the today tab
func HandleTodayMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case today.CheckInMsg:
		d, err := m.Store.GetDiscipline(msg.ID)
		if err != nil {
			m.FormError = fmt.Sprintf("Error loading discipline: %v", err)
			return true, nil
		}

		fm := &state.CheckInFormModel{
			DisciplineID:   d.ID,
			DisciplineName: d.Name,
			Rating:         constants.RatingNailedIt,
		}
		if check, err := m.Store.GetCheck(d.ID, period.Day(time.Now())); err == nil {
			fm.Rating = check.Rating
			if check.ActualMinutes > 0 {
				fm.Minutes = strconv.Itoa(check.ActualMinutes)
			}
			fm.Note = check.Note
		}

		m.FormError = ""
		m.CheckInForm = fm
		m.Form = NewCheckInForm(fm)
		m.State = constants.StateCheckInForm
		return true, m.Form.Init()

	case today.ClearCheckMsg:
		day := period.Day(time.Now())
		if check, err := m.Store.GetCheck(msg.ID, day); err == nil {
			if err := m.Store.DeleteCheck(check.ID); err == nil {
				m.RefreshToday()
			}
		}
		return true, nil
	}
	return false, nil
}
