package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

func (s *Store) AddArea(area models.FocusArea) error {
	return s.UpdateArea(area)
}

func (s *Store) GetArea(id string) (models.FocusArea, error) {
	row := s.db.QueryRow(`
		SELECT id, name, parent_id, color, created_at, archived_at, deleted_at
		FROM focus_areas WHERE id = $1 AND deleted_at IS NULL`, id)

	a, err := scanArea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FocusArea{}, fmt.Errorf("focus area %q: %w", id, storage.ErrNotFound)
	}
	return a, err
}

func (s *Store) GetAreaByName(name string) (models.FocusArea, error) {
	row := s.db.QueryRow(`
		SELECT id, name, parent_id, color, created_at, archived_at, deleted_at
		FROM focus_areas WHERE name = $1 AND deleted_at IS NULL`, name)

	a, err := scanArea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FocusArea{}, fmt.Errorf("focus area %q: %w", name, storage.ErrNotFound)
	}
	return a, err
}

func (s *Store) GetAllAreas(includeArchived, includeDeleted bool) ([]models.FocusArea, error) {
	query := "SELECT id, name, parent_id, color, created_at, archived_at, deleted_at FROM focus_areas WHERE 1=1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []models.FocusArea
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}

	return areas, rows.Err()
}

func (s *Store) UpdateArea(area models.FocusArea) error {
	var parentID, archivedAt, deletedAt sql.NullString
	if area.ParentID != nil {
		parentID = sql.NullString{String: *area.ParentID, Valid: true}
	}
	if area.ArchivedAt != nil {
		archivedAt = sql.NullString{String: area.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	if area.DeletedAt != nil {
		deletedAt = sql.NullString{String: area.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO focus_areas (id, name, parent_id, color, created_at, archived_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			parent_id = EXCLUDED.parent_id,
			color = EXCLUDED.color,
			archived_at = EXCLUDED.archived_at,
			deleted_at = EXCLUDED.deleted_at`,
		area.ID, area.Name, parentID, area.Color, area.CreatedAt.Format(time.RFC3339), archivedAt, deletedAt)

	return err
}

func (s *Store) ArchiveArea(id string) error {
	result, err := s.db.Exec(`
		UPDATE focus_areas SET archived_at = $1 WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("focus area not found or already archived/deleted")
	}

	return nil
}

func (s *Store) UnarchiveArea(id string) error {
	result, err := s.db.Exec(`
		UPDATE focus_areas SET archived_at = NULL WHERE id = $1 AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("focus area not found or not archived")
	}

	return nil
}

func (s *Store) DeleteArea(id string) error {
	result, err := s.db.Exec(`
		UPDATE focus_areas SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("focus area not found or already deleted")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArea(row rowScanner) (models.FocusArea, error) {
	var a models.FocusArea
	var createdAt string
	var parentID, archivedAt, deletedAt sql.NullString

	err := row.Scan(&a.ID, &a.Name, &parentID, &a.Color, &createdAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.FocusArea{}, err
	}

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.FocusArea{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if parentID.Valid {
		a.ParentID = &parentID.String
	}
	if archivedAt.Valid {
		t, err := time.Parse(time.RFC3339, archivedAt.String)
		if err != nil {
			return models.FocusArea{}, fmt.Errorf("failed to parse archived_at: %w", err)
		}
		a.ArchivedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.FocusArea{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		a.DeletedAt = &t
	}

	return a, nil
}
