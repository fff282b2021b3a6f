package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

// Discipline represents a recurring commitment tracked via self-rated check-ins
type Discipline struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	TargetMinutes int                        `json:"target_minutes,omitempty"` // 0 for untimed disciplines
	Frequency     constants.Frequency        `json:"frequency"`
	Days          []time.Weekday             `json:"days,omitempty"` // meaningful only for specific_days
	StartedAt     time.Time                  `json:"started_at"`
	Status        constants.DisciplineStatus `json:"status"`
	EvolvedInto   *string                    `json:"evolved_into,omitempty"` // successor discipline ID
	CreatedAt     time.Time                  `json:"created_at"`
	DeletedAt     *time.Time                 `json:"deleted_at,omitempty"`
}

func (d *Discipline) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("discipline name cannot be empty")
	}

	if d.TargetMinutes < 0 {
		return fmt.Errorf("target minutes cannot be negative")
	}

	switch d.Frequency {
	case constants.FrequencyDaily, constants.FrequencyWeekdays, constants.FrequencyWeekends, constants.FrequencyAlways:
	case constants.FrequencySpecificDays:
		if len(d.Days) == 0 {
			return fmt.Errorf("weekdays must be specified for specific_days frequency")
		}
		for _, wd := range d.Days {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday %d", wd)
			}
		}
	default:
		return fmt.Errorf("invalid frequency %q", d.Frequency)
	}

	if d.StartedAt.IsZero() {
		return fmt.Errorf("discipline start date cannot be zero")
	}

	switch d.Status {
	case constants.DisciplineActive, constants.DisciplineIngrained, constants.DisciplineRetired, constants.DisciplineEvolved:
	default:
		return fmt.Errorf("invalid discipline status %q", d.Status)
	}

	return nil
}

// Active returns true while the discipline is being practiced
func (d *Discipline) Active() bool {
	return d.Status == constants.DisciplineActive
}

// FormatFrequency returns a human-readable description of the schedule
func (d *Discipline) FormatFrequency() string {
	switch d.Frequency {
	case constants.FrequencyDaily:
		return "Daily"
	case constants.FrequencyWeekdays:
		return "Weekdays"
	case constants.FrequencyWeekends:
		return "Weekends"
	case constants.FrequencyAlways:
		return "Always"
	case constants.FrequencySpecificDays:
		days := make([]string, len(d.Days))
		for i, wd := range d.Days {
			days[i] = wd.String()[:3]
		}
		return strings.Join(days, ", ")
	default:
		return string(d.Frequency)
	}
}
