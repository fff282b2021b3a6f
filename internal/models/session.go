package models

import (
	"fmt"
	"math"
	"time"
)

// Session represents a timed work block logged against a focus area
type Session struct {
	ID        string     `json:"id"`
	AreaID    string     `json:"area_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"` // nil while the session is running
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (s *Session) Validate() error {
	if s.AreaID == "" {
		return fmt.Errorf("session must reference a focus area")
	}

	if s.StartedAt.IsZero() {
		return fmt.Errorf("session start time cannot be zero")
	}

	if s.EndedAt != nil && !s.EndedAt.After(s.StartedAt) {
		return fmt.Errorf("session end must be after its start")
	}

	return nil
}

// Running returns true while the session has no end time
func (s *Session) Running() bool {
	return s.EndedAt == nil
}

// Minutes returns the session's duration in whole minutes, 0 while running
func (s *Session) Minutes() int {
	if s.EndedAt == nil {
		return 0
	}
	return int(math.Round(s.EndedAt.Sub(s.StartedAt).Minutes()))
}
