package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/discipline"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
	"github.com/steadhq/stead/internal/tui/components/goals"
	"github.com/steadhq/stead/internal/tui/components/journal"
	"github.com/steadhq/stead/internal/tui/components/today"
)

// CheckInFormModel represents the form model for a discipline check-in
type CheckInFormModel struct {
	DisciplineID   string
	DisciplineName string
	Rating         constants.Rating
	Minutes        string
	Note           string
}

// JournalFormModel represents the form model for the daily reflection
type JournalFormModel struct {
	Went      string
	Learned   string
	Gratitude string
	Mood      string
}

// GoalFormModel represents the form model for goal creation
type GoalFormModel struct {
	Title   string
	Horizon constants.Horizon
}

// ConfirmationFormModel represents the form model for confirmation dialogs
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Model represents the shared state for the TUI
type Model struct {
	Store            storage.Provider
	Disciplines      *discipline.Service
	State            constants.SessionState
	PreviousState    constants.SessionState
	Keys             KeyMap
	Help             help.Model
	TodayModel       today.Model
	JournalModel     journal.Model
	GoalsModel       goals.Model
	Form             *huh.Form
	CheckInForm      *CheckInFormModel
	JournalForm      *JournalFormModel
	GoalForm         *GoalFormModel
	ConfirmationForm *ConfirmationFormModel
	PendingAction    func() tea.Cmd
	Quitting         bool
	Width            int
	Height           int
	FormError        string // Error message to display for form operations
}

// New creates a new state Model
func New(store storage.Provider, disciplines *discipline.Service) Model {
	now := time.Now()

	entries, _ := disciplines.Today(now)
	tm := today.New(entries, 0, 0)

	jm := journal.New(nil, 0, 0)
	if reflection, err := store.GetReflection(period.Day(now)); err == nil {
		jm = journal.New(&reflection, 0, 0)
	}

	gm := goals.New(openGoals(store, now), 0, 0)

	return Model{
		Store:        store,
		Disciplines:  disciplines,
		State:        constants.StateToday,
		Keys:         DefaultKeyMap(),
		Help:         help.New(),
		TodayModel:   tm,
		JournalModel: jm,
		GoalsModel:   gm,
	}
}
