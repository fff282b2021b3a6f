package state

import (
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
)

// RefreshToday reloads the today tab from the store
func (m *Model) RefreshToday() {
	entries, _ := m.Disciplines.Today(time.Now())
	m.TodayModel.SetEntries(entries)
}

// RefreshJournal reloads today's reflection from the store
func (m *Model) RefreshJournal() {
	reflection, err := m.Store.GetReflection(period.Day(time.Now()))
	if err != nil {
		m.JournalModel.SetReflection(nil)
		return
	}
	m.JournalModel.SetReflection(&reflection)
}

// RefreshGoals reloads the open goals for the current periods
func (m *Model) RefreshGoals() {
	m.GoalsModel.SetGoals(openGoals(m.Store, time.Now()))
}

// openGoals collects open goals across every horizon's current period
func openGoals(store storage.Provider, now time.Time) []models.Goal {
	horizons := []constants.Horizon{
		constants.HorizonWeek,
		constants.HorizonMonth,
		constants.HorizonQuarter,
		constants.HorizonLife,
	}

	var open []models.Goal
	for _, horizon := range horizons {
		key, err := period.KeyFor(horizon, now)
		if err != nil {
			continue
		}
		goalsForPeriod, err := store.GetGoalsByPeriod(string(horizon), key)
		if err != nil {
			continue
		}
		for _, g := range goalsForPeriod {
			if g.Open() {
				open = append(open, g)
			}
		}
	}
	return open
}
