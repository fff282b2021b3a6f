package models

import (
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/period"
)

// Goal represents an intention bound to a period horizon
type Goal struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	AreaID    *string              `json:"area_id,omitempty"`
	Horizon   constants.Horizon    `json:"horizon"`
	PeriodKey string               `json:"period_key"` // e.g. 2026-W03, 2026-01, 2026-Q1, life
	Status    constants.GoalStatus `json:"status"`
	Outcome   string               `json:"outcome,omitempty"` // filled when the goal is closed
	CreatedAt time.Time            `json:"created_at"`
	ClosedAt  *time.Time           `json:"closed_at,omitempty"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
}

func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("goal title cannot be empty")
	}

	switch g.Horizon {
	case constants.HorizonWeek, constants.HorizonMonth, constants.HorizonQuarter, constants.HorizonLife:
	default:
		return fmt.Errorf("invalid horizon %q", g.Horizon)
	}

	if err := period.ValidateKey(g.Horizon, g.PeriodKey); err != nil {
		return fmt.Errorf("invalid period key: %w", err)
	}

	switch g.Status {
	case constants.GoalOpen, constants.GoalAchieved, constants.GoalDropped:
	default:
		return fmt.Errorf("invalid goal status %q", g.Status)
	}

	return nil
}

// Open returns true while the goal has not been closed
func (g *Goal) Open() bool {
	return g.Status == constants.GoalOpen
}
