package summary

import (
	"sort"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
)

// HorizonGoals holds the goal counts for one horizon's current period
type HorizonGoals struct {
	Horizon   constants.Horizon
	PeriodKey string
	Open      int
	Achieved  int
	Dropped   int
}

// AreaMinutes holds the session minutes logged against one focus area
type AreaMinutes struct {
	AreaID   string
	AreaName string
	Minutes  int
}

// Overview is the aggregated stats view rendered by `stead stats`
type Overview struct {
	Goals           []HorizonGoals // week, month, quarter, life in that order
	AreaMinutes     []AreaMinutes  // trailing 7 days, most minutes first
	ReflectionCount int            // reflections written this month
	ReflectionMonth string         // YYYY-MM
}

// Service aggregates goal, session, and reflection stats from the store
type Service struct {
	store storage.Provider
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store}
}

// Overview builds the full stats view for the periods containing today
func (s *Service) Overview(today time.Time) (Overview, error) {
	var o Overview

	for _, horizon := range []constants.Horizon{
		constants.HorizonWeek,
		constants.HorizonMonth,
		constants.HorizonQuarter,
		constants.HorizonLife,
	} {
		key, err := period.KeyFor(horizon, today)
		if err != nil {
			return Overview{}, err
		}

		goals, err := s.store.GetGoalsByPeriod(string(horizon), key)
		if err != nil {
			return Overview{}, err
		}

		counts := HorizonGoals{Horizon: horizon, PeriodKey: key}
		for _, g := range goals {
			switch g.Status {
			case constants.GoalOpen:
				counts.Open++
			case constants.GoalAchieved:
				counts.Achieved++
			case constants.GoalDropped:
				counts.Dropped++
			}
		}
		o.Goals = append(o.Goals, counts)
	}

	areaMinutes, err := s.trailingWeekMinutes(today)
	if err != nil {
		return Overview{}, err
	}
	o.AreaMinutes = areaMinutes

	o.ReflectionMonth = period.MonthKey(today)
	monthStart, monthEnd, err := period.MonthRange(o.ReflectionMonth)
	if err != nil {
		return Overview{}, err
	}
	reflections, err := s.store.GetReflections(period.Day(monthStart), period.Day(monthEnd))
	if err != nil {
		return Overview{}, err
	}
	o.ReflectionCount = len(reflections)

	return o, nil
}

// trailingWeekMinutes sums completed session minutes per focus area over
// the last 7 days including today
func (s *Service) trailingWeekMinutes(today time.Time) ([]AreaMinutes, error) {
	startKey := period.Day(today.AddDate(0, 0, -6))
	endKey := period.Day(today)

	sessions, err := s.store.GetSessionsInRange(startKey, endKey)
	if err != nil {
		return nil, err
	}

	minutesByArea := make(map[string]int)
	for _, sess := range sessions {
		minutesByArea[sess.AreaID] += sess.Minutes()
	}
	if len(minutesByArea) == 0 {
		return nil, nil
	}

	areas, err := s.store.GetAllAreas(true, true)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(areas))
	for _, a := range areas {
		nameByID[a.ID] = a.Name
	}

	out := make([]AreaMinutes, 0, len(minutesByArea))
	for id, minutes := range minutesByArea {
		name := nameByID[id]
		if name == "" {
			name = "(unknown)"
		}
		out = append(out, AreaMinutes{AreaID: id, AreaName: name, Minutes: minutes})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].AreaName < out[j].AreaName
	})

	return out, nil
}
