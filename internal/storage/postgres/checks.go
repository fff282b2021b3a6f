package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

// UpsertCheck writes at most one check per (discipline, day) and returns the
// stored row. On conflict the original id and created_at survive while the
// rating, minutes, and note take the new values.
func (s *Store) UpsertCheck(c models.DisciplineCheck) (models.DisciplineCheck, error) {
	_, err := s.db.Exec(`
		INSERT INTO discipline_checks (id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (discipline_id, day) DO UPDATE SET
			rating = EXCLUDED.rating,
			actual_minutes = EXCLUDED.actual_minutes,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.DisciplineID, c.Day, string(c.Rating), c.ActualMinutes, c.Note,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return models.DisciplineCheck{}, err
	}

	return s.GetCheck(c.DisciplineID, c.Day)
}

func (s *Store) GetCheck(disciplineID, day string) (models.DisciplineCheck, error) {
	row := s.db.QueryRow(`
		SELECT id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at
		FROM discipline_checks WHERE discipline_id = $1 AND day = $2`, disciplineID, day)

	c, err := scanCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DisciplineCheck{}, fmt.Errorf("check for %s on %s: %w", disciplineID, day, storage.ErrNotFound)
	}
	return c, err
}

func (s *Store) GetChecksForDiscipline(disciplineID string) ([]models.DisciplineCheck, error) {
	rows, err := s.db.Query(`
		SELECT id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at
		FROM discipline_checks WHERE discipline_id = $1
		ORDER BY day DESC`, disciplineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChecks(rows)
}

func (s *Store) GetChecksForDisciplineRange(disciplineID, startDay, endDay string) ([]models.DisciplineCheck, error) {
	rows, err := s.db.Query(`
		SELECT id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at
		FROM discipline_checks
		WHERE discipline_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day DESC`, disciplineID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChecks(rows)
}

func (s *Store) GetChecksForDay(day string) ([]models.DisciplineCheck, error) {
	rows, err := s.db.Query(`
		SELECT id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at
		FROM discipline_checks WHERE day = $1
		ORDER BY created_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChecks(rows)
}

func (s *Store) GetAllChecks() ([]models.DisciplineCheck, error) {
	rows, err := s.db.Query(`
		SELECT id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at
		FROM discipline_checks ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChecks(rows)
}

func (s *Store) DeleteCheck(id string) error {
	result, err := s.db.Exec(`DELETE FROM discipline_checks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("check %q: %w", id, storage.ErrNotFound)
	}

	return nil
}

func scanCheck(row rowScanner) (models.DisciplineCheck, error) {
	var c models.DisciplineCheck
	var rating, createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.DisciplineID, &c.Day, &rating, &c.ActualMinutes, &c.Note, &createdAt, &updatedAt)
	if err != nil {
		return models.DisciplineCheck{}, err
	}

	c.Rating = constants.Rating(rating)

	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DisciplineCheck{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.DisciplineCheck{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return c, nil
}

func scanChecks(rows *sql.Rows) ([]models.DisciplineCheck, error) {
	var checks []models.DisciplineCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
