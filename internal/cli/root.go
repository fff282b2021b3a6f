package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/steadhq/stead/internal/accountability"
	"github.com/steadhq/stead/internal/backup"
	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/discipline"
	"github.com/steadhq/stead/internal/logger"
	"github.com/steadhq/stead/internal/storage"
	"github.com/steadhq/stead/internal/summary"
	"github.com/steadhq/stead/internal/utils"
)

type Context struct {
	Store       storage.Provider
	Disciplines *discipline.Service
	Reporter    *accountability.Reporter
	Summary     *summary.Service
}

// Now returns the current time in the user's configured timezone.
// Falls back to the system clock when settings are unavailable.
func (c *Context) Now() time.Time {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Now()
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using system clock", "timezone", settings.Timezone)
		return time.Now()
	}
	return now
}

// Today returns today's date string (YYYY-MM-DD) in the user's configured timezone.
func (c *Context) Today() string {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Now().Format(constants.DateFormat)
	}
	day, err := utils.GetTodayFromSettings(settings)
	if err != nil {
		return time.Now().Format(constants.DateFormat)
	}
	return day
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	dbPath := c.Store.GetConfigPath()
	if dbPath == "postgresql" {
		// File-level backups only apply to SQLite storage
		return
	}

	mgr := backup.NewManager(dbPath)
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// ParseFrequency parses a frequency flag into its stored form
func ParseFrequency(s string) (constants.Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return constants.FrequencyDaily, nil
	case "weekdays":
		return constants.FrequencyWeekdays, nil
	case "weekends":
		return constants.FrequencyWeekends, nil
	case "specific", "specific-days", "specific_days":
		return constants.FrequencySpecificDays, nil
	case "always":
		return constants.FrequencyAlways, nil
	default:
		return "", fmt.Errorf("invalid frequency: %s (expected daily, weekdays, weekends, specific-days, or always)", s)
	}
}

// ParseRating parses a rating flag into its stored form
func ParseRating(s string) (constants.Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nailed", "nailed-it", "nailed_it":
		return constants.RatingNailedIt, nil
	case "close":
		return constants.RatingClose, nil
	case "missed":
		return constants.RatingMissed, nil
	default:
		return "", fmt.Errorf("invalid rating: %s (expected nailed, close, or missed)", s)
	}
}

// RatingMarker returns the list marker for a check-in rating
func RatingMarker(r constants.Rating) string {
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
