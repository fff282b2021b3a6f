package models

import (
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

// PartnerCheckIn represents one accountability-partner touch point per day
type PartnerCheckIn struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PartnerCheckIn) Validate() error {
	if p.Day == "" {
		return fmt.Errorf("check-in day cannot be empty")
	}

	if _, err := time.Parse(constants.DateFormat, p.Day); err != nil {
		return fmt.Errorf("invalid day format (expected YYYY-MM-DD): %w", err)
	}

	return nil
}
