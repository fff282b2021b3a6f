package models

import (
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

// DisciplineCheck represents a single day's self-assessed outcome for a
// discipline. At most one check exists per (discipline, day); writing an
// existing day overwrites it. A missing check is "no data", never a rating.
type DisciplineCheck struct {
	ID            string           `json:"id"`
	DisciplineID  string           `json:"discipline_id"`
	Day           string           `json:"day"` // YYYY-MM-DD format
	Rating        constants.Rating `json:"rating"`
	ActualMinutes int              `json:"actual_minutes,omitempty"`
	Note          string           `json:"note,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (c *DisciplineCheck) Validate() error {
	if c.DisciplineID == "" {
		return fmt.Errorf("check must reference a discipline")
	}

	if c.Day == "" {
		return fmt.Errorf("check day cannot be empty")
	}

	if _, err := time.Parse(constants.DateFormat, c.Day); err != nil {
		return fmt.Errorf("invalid day format (expected YYYY-MM-DD): %w", err)
	}

	switch c.Rating {
	case constants.RatingNailedIt, constants.RatingClose, constants.RatingMissed:
	default:
		return fmt.Errorf("invalid rating %q", c.Rating)
	}

	if c.ActualMinutes < 0 {
		return fmt.Errorf("actual minutes cannot be negative")
	}

	return nil
}

// Successful returns true for any rating other than missed
func (c *DisciplineCheck) Successful() bool {
	return c.Rating != constants.RatingMissed
}
