package models

import (
	"fmt"
	"time"
)

// FocusArea represents a user-defined category that sessions and goals attach to
type FocusArea struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ParentID   *string    `json:"parent_id,omitempty"` // optional parent area (lineage only)
	Color      string     `json:"color,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func (a *FocusArea) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("focus area name cannot be empty")
	}

	if a.ParentID != nil && *a.ParentID == a.ID {
		return fmt.Errorf("focus area cannot be its own parent")
	}

	return nil
}

// IsArchived returns true if the area has been archived
func (a *FocusArea) IsArchived() bool {
	return a.ArchivedAt != nil
}
