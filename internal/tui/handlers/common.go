package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/tui/state"
)

// NewCheckInForm creates the check-in form for a discipline
func NewCheckInForm(fm *state.CheckInFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[constants.Rating]().
				Title(fmt.Sprintf("How did %q go?", fm.DisciplineName)).
				Options(
					huh.NewOption("Nailed it", constants.RatingNailedIt),
					huh.NewOption("Close", constants.RatingClose),
					huh.NewOption("Missed", constants.RatingMissed),
				).
				Value(&fm.Rating),
			huh.NewInput().
				Title("Minutes spent").
				Description("Leave empty to skip").
				Value(&fm.Minutes).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 0 {
						return fmt.Errorf("minutes cannot be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Note (optional)").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewJournalForm creates the daily reflection form
func NewJournalForm(fm *state.JournalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What went well?").
				Value(&fm.Went),
			huh.NewText().
				Title("What did you learn?").
				Value(&fm.Learned),
			huh.NewText().
				Title("What are you grateful for?").
				Value(&fm.Gratitude),
			huh.NewInput().
				Title("Mood (1-5)").
				Description("Leave empty to skip").
				Value(&fm.Mood).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 || i > 5 {
						return fmt.Errorf("mood must be 1-5")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewGoalForm creates the goal creation form
func NewGoalForm(fm *state.GoalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("goal title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[constants.Horizon]().
				Title("Horizon").
				Options(
					huh.NewOption("This week", constants.HorizonWeek),
					huh.NewOption("This month", constants.HorizonMonth),
					huh.NewOption("This quarter", constants.HorizonQuarter),
					huh.NewOption("Life", constants.HorizonLife),
				).
				Value(&fm.Horizon),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a yes/no confirmation form
func NewConfirmationForm(fm *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
