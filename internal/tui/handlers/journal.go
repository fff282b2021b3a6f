package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
	"github.com/steadhq/stead/internal/tui/components/journal"
	"github.com/steadhq/stead/internal/tui/state"
)

// HandleJournalFormState handles the daily reflection form
func HandleJournalFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateJournal
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		went := strings.TrimSpace(m.JournalForm.Went)
		learned := strings.TrimSpace(m.JournalForm.Learned)
		gratitude := strings.TrimSpace(m.JournalForm.Gratitude)
		moodRaw := strings.TrimSpace(m.JournalForm.Mood)

		if went == "" && learned == "" && gratitude == "" && moodRaw == "" {
			m.FormError = ""
			m.State = constants.StateJournal
			return tea.Batch(cmds...)
		}

		mood := 0
		if moodRaw != "" {
			parsed, err := strconv.Atoi(moodRaw)
			if err != nil {
				m.FormError = fmt.Sprintf("Invalid mood: %v", err)
				m.Form.State = huh.StateNormal
				return tea.Batch(cmds...)
			}
			mood = parsed
		}

		now := time.Now()
		day := period.Day(now)

		reflection, err := m.Store.GetReflection(day)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				m.FormError = fmt.Sprintf("Failed to load reflection: %v", err)
				m.Form.State = huh.StateNormal
				return tea.Batch(cmds...)
			}
			reflection = models.Reflection{
				ID:        uuid.New().String(),
				Day:       day,
				CreatedAt: now,
			}
		}

		reflection.Went = went
		reflection.Learned = learned
		reflection.Gratitude = gratitude
		reflection.Mood = mood
		reflection.UpdatedAt = now

		if err := reflection.Validate(); err != nil {
			m.FormError = fmt.Sprintf("Invalid reflection: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		if _, err := m.Store.UpsertReflection(reflection); err != nil {
			// Store error and stay in form state to allow retry
			m.FormError = fmt.Sprintf("Failed to save reflection: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		m.RefreshJournal()
		m.FormError = ""
		m.State = constants.StateJournal
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateJournal
	}
	return tea.Batch(cmds...)
}

// HandleJournalMessages handles messages emitted by the journal tab
func HandleJournalMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case journal.EditReflectionMsg:
		day := period.Day(time.Now())
		existing, err := m.Store.GetReflection(day)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				existing = models.Reflection{}
			} else {
				// Show the error but still allow writing with an empty form
				m.FormError = fmt.Sprintf("Error loading reflection: %v", err)
				existing = models.Reflection{}
			}
		} else {
			m.FormError = ""
		}

		fm := &state.JournalFormModel{
			Went:      existing.Went,
			Learned:   existing.Learned,
			Gratitude: existing.Gratitude,
		}
		if existing.Mood > 0 {
			fm.Mood = strconv.Itoa(existing.Mood)
		}

		m.JournalForm = fm
		m.Form = NewJournalForm(fm)
		m.State = constants.StateJournalForm
		return true, m.Form.Init()
	}
	return false, nil
}
