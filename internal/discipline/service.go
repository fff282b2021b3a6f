package discipline

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
)

// Stats aggregates a discipline's full check history
type Stats struct {
	Streak             int
	QuarterConsistency int
	TotalChecks        int
	NailedItCount      int
	CloseCount         int
	MissedCount        int
}

// TodayEntry is one row of the today view
type TodayEntry struct {
	Discipline        models.Discipline
	ApplicableToday   bool
	TodayCheck        *models.DisciplineCheck
	Streak            int
	NextApplicableDay string // day key, empty when applicable today or never due
}

// Service computes discipline statistics over check history loaded from the store
type Service struct {
	store storage.Provider
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store}
}

// Stats loads the discipline's full check history and aggregates rating
// counts, the current streak, and, when a quarter key is given, the quarter
// consistency score.
func (s *Service) Stats(disciplineID, quarterKey string, today time.Time) (Stats, error) {
	d, err := s.store.GetDiscipline(disciplineID)
	if err != nil {
		return Stats{}, err
	}

	checks, err := s.store.GetChecksForDiscipline(disciplineID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalChecks: len(checks)}
	for _, c := range checks {
		switch c.Rating {
		case constants.RatingNailedIt:
			stats.NailedItCount++
		case constants.RatingClose:
			stats.CloseCount++
		case constants.RatingMissed:
			stats.MissedCount++
		}
	}

	stats.Streak = Streak(d, checks, today)
	if quarterKey != "" {
		stats.QuarterConsistency = QuarterConsistency(d, checks, quarterKey, today)
	}

	return stats, nil
}

// Today resolves the today view for every active discipline: applicability,
// today's check if one exists, the streak over a bounded recent window, and
// the next applicable day for disciplines not due today. Disciplines due
// today always sort before the rest; creation order breaks ties.
func (s *Service) Today(today time.Time) ([]TodayEntry, error) {
	disciplines, err := s.store.GetActiveDisciplines()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(disciplines, func(i, j int) bool {
		return disciplines[i].CreatedAt.Before(disciplines[j].CreatedAt)
	})

	todayKey := period.Day(today)
	sinceKey := period.Day(today.AddDate(0, 0, -constants.RecentCheckWindowDays))

	entries := make([]TodayEntry, 0, len(disciplines))
	for _, d := range disciplines {
		checks, err := s.store.GetChecksForDisciplineRange(d.ID, sinceKey, todayKey)
		if err != nil {
			return nil, err
		}

		entry := TodayEntry{
			Discipline:      d,
			ApplicableToday: IsApplicableOn(d, today),
			Streak:          Streak(d, checks, today),
		}

		for i := range checks {
			if checks[i].Day == todayKey {
				entry.TodayCheck = &checks[i]
				break
			}
		}

		if !entry.ApplicableToday {
			if next, ok := NextApplicableDay(d, today); ok {
				entry.NextApplicableDay = period.Day(next)
			}
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ApplicableToday && !entries[j].ApplicableToday
	})

	return entries, nil
}

// CheckIn upserts the check for a discipline on the given day. Writing a day
// that already has a check overwrites its rating, minutes, and note; the
// stored row is returned either way.
func (s *Service) CheckIn(disciplineID, day string, rating constants.Rating, actualMinutes int, note string) (models.DisciplineCheck, error) {
	if _, err := s.store.GetDiscipline(disciplineID); err != nil {
		return models.DisciplineCheck{}, fmt.Errorf("discipline lookup failed: %w", err)
	}

	now := time.Now()
	check := models.DisciplineCheck{
		ID:            uuid.New().String(),
		DisciplineID:  disciplineID,
		Day:           day,
		Rating:        rating,
		ActualMinutes: actualMinutes,
		Note:          note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := check.Validate(); err != nil {
		return models.DisciplineCheck{}, err
	}

	return s.store.UpsertCheck(check)
}
