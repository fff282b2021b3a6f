package accountability

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/discipline"
	"github.com/steadhq/stead/internal/period"
	"github.com/steadhq/stead/internal/storage"
)

// Reporter builds partner-facing accountability views from the store
type Reporter struct {
	store storage.Provider
}

func NewReporter(store storage.Provider) *Reporter {
	return &Reporter{store: store}
}

// Streak counts consecutive calendar days with a partner check-in, walking
// back from the most recent check-in on or before today. Every calendar day
// counts; a day without a check-in ends the run. Today itself being
// unchecked does not zero the streak, the walk simply anchors on the last
// recorded day.
func (r *Reporter) Streak(today time.Time) (int, error) {
	todayKey := period.Day(today)
	sinceKey := period.Day(today.AddDate(0, 0, -constants.RecentCheckWindowDays))

	checkIns, err := r.store.GetPartnerCheckIns(sinceKey, todayKey)
	if err != nil {
		return 0, err
	}
	if len(checkIns) == 0 {
		return 0, nil
	}

	days := make(map[string]bool, len(checkIns))
	for _, c := range checkIns {
		days[c.Day] = true
	}

	// Rows come back newest first, so the first one anchors the streak
	anchor, err := period.ParseDay(checkIns[0].Day)
	if err != nil {
		return 0, err
	}

	streak := 0
	for d := anchor; days[period.Day(d)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

// Digest renders a short shareable text block: today's discipline results,
// the current partner streak, and the open goal count for this week.
func (r *Reporter) Digest(today time.Time) (string, error) {
	todayKey := period.Day(today)

	disciplines, err := r.store.GetActiveDisciplines()
	if err != nil {
		return "", err
	}

	checks, err := r.store.GetChecksForDay(todayKey)
	if err != nil {
		return "", err
	}
	checkByDiscipline := make(map[string]constants.Rating, len(checks))
	for _, c := range checks {
		checkByDiscipline[c.DisciplineID] = c.Rating
	}

	streak, err := r.Streak(today)
	if err != nil {
		return "", err
	}

	weekGoals, err := r.store.GetGoalsByPeriod(string(constants.HorizonWeek), period.WeekKey(today))
	if err != nil {
		return "", err
	}
	openGoals := 0
	for _, g := range weekGoals {
		if g.Status == constants.GoalOpen {
			openGoals++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Check-in for %s\n", today.Format("Monday, Jan 2"))

	listed := 0
	for _, d := range disciplines {
		rating, checked := checkByDiscipline[d.ID]
		applicable := discipline.IsApplicableOn(d, today)
		if !checked && !applicable {
			continue
		}

		if checked {
			fmt.Fprintf(&b, "%s %s: %s\n", ratingMarker(rating), d.Name, ratingLabel(rating))
		} else {
			fmt.Fprintf(&b, "[ ] %s\n", d.Name)
		}
		listed++
	}
	if listed == 0 {
		b.WriteString("No disciplines due today.\n")
	}

	fmt.Fprintf(&b, "Partner streak: %s\n", english.Plural(streak, "day", ""))
	fmt.Fprintf(&b, "Open goals this week: %d\n", openGoals)

	return b.String(), nil
}

func ratingMarker(r constants.Rating) string {
	switch r {
	case constants.RatingNailedIt:
		return "[x]"
	case constants.RatingClose:
		return "[~]"
	case constants.RatingMissed:
		return "[!]"
	default:
		return "[?]"
	}
}

func ratingLabel(r constants.Rating) string {
	switch r {
	case constants.RatingNailedIt:
		return "nailed it"
	case constants.RatingClose:
		return "close"
	case constants.RatingMissed:
		return "missed"
	default:
		return string(r)
	}
}
