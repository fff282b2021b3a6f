package models

import (
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

// Reflection represents a single day's journal entry
type Reflection struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Went      string    `json:"went,omitempty"`
	Learned   string    `json:"learned,omitempty"`
	Gratitude string    `json:"gratitude,omitempty"`
	Mood      int       `json:"mood,omitempty"` // 1-5, 0 when unset
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reflection) Validate() error {
	if r.Day == "" {
		return fmt.Errorf("reflection day cannot be empty")
	}

	if _, err := time.Parse(constants.DateFormat, r.Day); err != nil {
		return fmt.Errorf("invalid day format (expected YYYY-MM-DD): %w", err)
	}

	if r.Mood < 0 || r.Mood > 5 {
		return fmt.Errorf("mood must be between 1 and 5")
	}

	return nil
}
