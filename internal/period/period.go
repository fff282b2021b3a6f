package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

// ErrUnbounded is returned by RangeFor for the life horizon, which has no
// calendar bounds.
var ErrUnbounded = errors.New("life horizon has no bounded range")

// LifeKey is the fixed period key used by life-horizon goals.
const LifeKey = "life"

// Day formats t as a day key (YYYY-MM-DD).
func Day(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a day key back into a date (midnight UTC).
func ParseDay(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// DateOnly strips the clock from t, keeping the calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// QuarterKey returns the fiscal quarter key (YYYY-Qn) containing t.
func QuarterKey(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

// QuarterRange returns the inclusive calendar bounds of a YYYY-Qn key.
func QuarterRange(key string) (time.Time, time.Time, error) {
	var year, q int
	if n, err := fmt.Sscanf(key, "%d-Q%d", &year, &q); n != 2 || err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid quarter key %q (expected YYYY-Qn)", key)
	}
	if q < 1 || q > 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid quarter key %q (quarter must be 1-4)", key)
	}
	start := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0).AddDate(0, 0, -1)
	return start, end, nil
}

// MonthKey returns the month key (YYYY-MM) containing t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthRange returns the inclusive calendar bounds of a YYYY-MM key.
func MonthRange(key string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", key)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month key %q (expected YYYY-MM)", key)
	}
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end, nil
}

// WeekKey returns the ISO week key (YYYY-Wnn) containing t.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekRange returns the inclusive Monday-Sunday bounds of a YYYY-Wnn key.
func WeekRange(key string) (time.Time, time.Time, error) {
	var year, week int
	if n, err := fmt.Sscanf(key, "%d-W%d", &year, &week); n != 2 || err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week key %q (expected YYYY-Wnn)", key)
	}
	if week < 1 || week > 53 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week key %q (week must be 1-53)", key)
	}

	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-offset)

	start := week1Monday.AddDate(0, 0, (week-1)*7)
	if _, w := start.ISOWeek(); w != week {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week key %q (year has no week %d)", key, week)
	}
	end := start.AddDate(0, 0, 6)
	return start, end, nil
}

// KeyFor returns the period key for the given horizon containing t.
func KeyFor(horizon constants.Horizon, t time.Time) (string, error) {
	switch horizon {
	case constants.HorizonWeek:
		return WeekKey(t), nil
	case constants.HorizonMonth:
		return MonthKey(t), nil
	case constants.HorizonQuarter:
		return QuarterKey(t), nil
	case constants.HorizonLife:
		return LifeKey, nil
	default:
		return "", fmt.Errorf("unknown horizon %q", horizon)
	}
}

// RangeFor returns the inclusive calendar bounds of a period key for the given
// horizon. The life horizon returns ErrUnbounded.
func RangeFor(horizon constants.Horizon, key string) (time.Time, time.Time, error) {
	switch horizon {
	case constants.HorizonWeek:
		return WeekRange(key)
	case constants.HorizonMonth:
		return MonthRange(key)
	case constants.HorizonQuarter:
		return QuarterRange(key)
	case constants.HorizonLife:
		return time.Time{}, time.Time{}, ErrUnbounded
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown horizon %q", horizon)
	}
}

// ValidateKey checks that a period key has the right shape for its horizon.
func ValidateKey(horizon constants.Horizon, key string) error {
	if horizon == constants.HorizonLife {
		if key != LifeKey {
			return fmt.Errorf("life horizon requires period key %q, got %q", LifeKey, key)
		}
		return nil
	}
	_, _, err := RangeFor(horizon, key)
	return err
}
