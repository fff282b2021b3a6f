package discipline

import (
	"math"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/period"
)

// IsApplicableOn determines if a discipline's schedule includes the given date
// based on its frequency pattern. This logic is shared between the streak walk,
// the quarter consistency count, and the today view to ensure consistency.
func IsApplicableOn(d models.Discipline, date time.Time) bool {
	switch d.Frequency {
	case constants.FrequencyDaily, constants.FrequencyAlways:
		return true
	case constants.FrequencyWeekdays:
		wd := date.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case constants.FrequencyWeekends:
		wd := date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case constants.FrequencySpecificDays:
		if len(d.Days) == 0 {
			// A specific_days discipline with no day set is due on no date.
			return false
		}
		for _, wd := range d.Days {
			if date.Weekday() == wd {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// NextApplicableDay returns from itself when the discipline applies on it,
// otherwise the first applicable date scanning forward. The scan is bounded to
// a single week: every non-empty pattern repeats within 7 days, so the second
// return value is false only for a discipline that is due on no date at all.
func NextApplicableDay(d models.Discipline, from time.Time) (time.Time, bool) {
	cur := period.DateOnly(from)
	for i := 0; i < constants.NextApplicableScanDays; i++ {
		if IsApplicableOn(d, cur) {
			return cur, true
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// Streak counts consecutive applicable days with a successful (non-missed)
// check, walking backward from the most recent successful check on or before
// today. Inapplicable days are skipped and never break the run; a missing
// check on an applicable day stops it. An applicable today without a check
// does not zero the streak: the walk anchors at the latest resolved day, so
// the result is "streak so far", not "streak as of this instant".
func Streak(d models.Discipline, checks []models.DisciplineCheck, today time.Time) int {
	todayKey := period.Day(today)

	successByDay := make(map[string]bool)
	var anchorKey string
	for _, c := range checks {
		if !c.Successful() {
			continue
		}
		if c.Day > todayKey {
			// Future-dated checks never contribute to or break a streak.
			continue
		}
		successByDay[c.Day] = true
		if c.Day > anchorKey {
			anchorKey = c.Day
		}
	}
	if anchorKey == "" {
		return 0
	}

	anchor, err := period.ParseDay(anchorKey)
	if err != nil {
		return 0
	}
	startKey := period.Day(d.StartedAt)

	streak := 0
	for cur := anchor; period.Day(cur) >= startKey; cur = cur.AddDate(0, 0, -1) {
		if !IsApplicableOn(d, cur) {
			continue
		}
		if !successByDay[period.Day(cur)] {
			break
		}
		streak++
	}
	return streak
}

// ApplicableDaysInQuarter counts the days in a quarter on which the discipline
// applies. The range is clipped at both ends: it starts at the later of the
// quarter start and the discipline's start date, and ends at the earlier of
// the quarter end and today. An inverted range or malformed key counts zero.
func ApplicableDaysInQuarter(d models.Discipline, quarterKey string, today time.Time) int {
	qStart, qEnd, err := period.QuarterRange(quarterKey)
	if err != nil {
		return 0
	}

	lowerKey := period.Day(qStart)
	if k := period.Day(d.StartedAt); k > lowerKey {
		lowerKey = k
	}
	upperKey := period.Day(qEnd)
	if k := period.Day(today); k < upperKey {
		upperKey = k
	}
	if lowerKey > upperKey {
		return 0
	}

	lower, err := period.ParseDay(lowerKey)
	if err != nil {
		return 0
	}

	count := 0
	for cur := lower; period.Day(cur) <= upperKey; cur = cur.AddDate(0, 0, 1) {
		if IsApplicableOn(d, cur) {
			count++
		}
	}
	return count
}

// QuarterConsistency scores a quarter as round(100 * successful checks in the
// quarter / applicable days in the quarter). The numerator filters by date
// range only, not by applicability; check-ins are normally only created on
// applicable days. Returns 0 when no days are applicable yet.
func QuarterConsistency(d models.Discipline, checks []models.DisciplineCheck, quarterKey string, today time.Time) int {
	applicable := ApplicableDaysInQuarter(d, quarterKey, today)
	if applicable == 0 {
		return 0
	}

	qStart, qEnd, err := period.QuarterRange(quarterKey)
	if err != nil {
		return 0
	}
	startKey := period.Day(qStart)
	endKey := period.Day(qEnd)

	successful := 0
	for _, c := range checks {
		if !c.Successful() {
			continue
		}
		if c.Day >= startKey && c.Day <= endKey {
			successful++
		}
	}

	return int(math.Round(100 * float64(successful) / float64(applicable)))
}
