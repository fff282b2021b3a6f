package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

// UpsertReflection writes at most one reflection per day and returns the
// stored row. On conflict the original id and created_at survive.
func (s *Store) UpsertReflection(r models.Reflection) (models.Reflection, error) {
	_, err := s.db.Exec(`
		INSERT INTO reflections (id, day, went, learned, gratitude, mood, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (day) DO UPDATE SET
			went = EXCLUDED.went,
			learned = EXCLUDED.learned,
			gratitude = EXCLUDED.gratitude,
			mood = EXCLUDED.mood,
			updated_at = EXCLUDED.updated_at`,
		r.ID, r.Day, r.Went, r.Learned, r.Gratitude, r.Mood,
		r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return models.Reflection{}, err
	}

	return s.GetReflection(r.Day)
}

func (s *Store) GetReflection(day string) (models.Reflection, error) {
	row := s.db.QueryRow(`
		SELECT id, day, went, learned, gratitude, mood, created_at, updated_at
		FROM reflections WHERE day = $1`, day)

	r, err := scanReflection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reflection{}, fmt.Errorf("reflection for %s: %w", day, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetReflections(startDay, endDay string) ([]models.Reflection, error) {
	rows, err := s.db.Query(`
		SELECT id, day, went, learned, gratitude, mood, created_at, updated_at
		FROM reflections WHERE day >= $1 AND day <= $2
		ORDER BY day DESC`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReflections(rows)
}

func (s *Store) GetAllReflections() ([]models.Reflection, error) {
	rows, err := s.db.Query(`
		SELECT id, day, went, learned, gratitude, mood, created_at, updated_at
		FROM reflections ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReflections(rows)
}

func (s *Store) DeleteReflection(day string) error {
	result, err := s.db.Exec(`DELETE FROM reflections WHERE day = $1`, day)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("reflection for %s: %w", day, storage.ErrNotFound)
	}

	return nil
}

func scanReflection(row rowScanner) (models.Reflection, error) {
	var r models.Reflection
	var createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.Day, &r.Went, &r.Learned, &r.Gratitude, &r.Mood, &createdAt, &updatedAt)
	if err != nil {
		return models.Reflection{}, err
	}

	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Reflection{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	r.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Reflection{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return r, nil
}

func scanReflections(rows *sql.Rows) ([]models.Reflection, error) {
	var reflections []models.Reflection
	for rows.Next() {
		r, err := scanReflection(rows)
		if err != nil {
			return nil, err
		}
		reflections = append(reflections, r)
	}
	return reflections, rows.Err()
}
