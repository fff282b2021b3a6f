package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

func (s *Store) AddDiscipline(d models.Discipline) error {
	return s.UpdateDiscipline(d)
}

func (s *Store) GetDiscipline(id string) (models.Discipline, error) {
	row := s.db.QueryRow(`
		SELECT id, name, target_minutes, frequency, days, started_at, status, evolved_into, created_at, deleted_at
		FROM disciplines WHERE id = $1 AND deleted_at IS NULL`, id)

	d, err := scanDiscipline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Discipline{}, fmt.Errorf("discipline %q: %w", id, storage.ErrNotFound)
	}
	return d, err
}

func (s *Store) GetDisciplineByName(name string) (models.Discipline, error) {
	row := s.db.QueryRow(`
		SELECT id, name, target_minutes, frequency, days, started_at, status, evolved_into, created_at, deleted_at
		FROM disciplines WHERE name = $1 AND deleted_at IS NULL`, name)

	d, err := scanDiscipline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Discipline{}, fmt.Errorf("discipline %q: %w", name, storage.ErrNotFound)
	}
	return d, err
}

func (s *Store) GetAllDisciplines(includeDeleted bool) ([]models.Discipline, error) {
	query := `SELECT id, name, target_minutes, frequency, days, started_at, status, evolved_into, created_at, deleted_at FROM disciplines`
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDisciplines(rows)
}

func (s *Store) GetActiveDisciplines() ([]models.Discipline, error) {
	rows, err := s.db.Query(`
		SELECT id, name, target_minutes, frequency, days, started_at, status, evolved_into, created_at, deleted_at
		FROM disciplines WHERE status = $1 AND deleted_at IS NULL
		ORDER BY created_at`, string(constants.DisciplineActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDisciplines(rows)
}

func (s *Store) UpdateDiscipline(d models.Discipline) error {
	daysJSON, err := json.Marshal(d.Days)
	if err != nil {
		return fmt.Errorf("failed to marshal weekdays: %w", err)
	}

	var startedAt string
	if !d.StartedAt.IsZero() {
		startedAt = d.StartedAt.Format(time.RFC3339)
	}

	var evolvedInto, deletedAt sql.NullString
	if d.EvolvedInto != nil {
		evolvedInto = sql.NullString{String: *d.EvolvedInto, Valid: true}
	}
	if d.DeletedAt != nil {
		deletedAt = sql.NullString{String: d.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO disciplines (id, name, target_minutes, frequency, days, started_at, status, evolved_into, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			target_minutes = EXCLUDED.target_minutes,
			frequency = EXCLUDED.frequency,
			days = EXCLUDED.days,
			started_at = EXCLUDED.started_at,
			status = EXCLUDED.status,
			evolved_into = EXCLUDED.evolved_into,
			deleted_at = EXCLUDED.deleted_at`,
		d.ID, d.Name, d.TargetMinutes, string(d.Frequency), string(daysJSON),
		startedAt, string(d.Status), evolvedInto, d.CreatedAt.Format(time.RFC3339), deletedAt)

	return err
}

func (s *Store) DeleteDiscipline(id string) error {
	result, err := s.db.Exec(`
		UPDATE disciplines SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("discipline not found or already deleted")
	}

	return nil
}

func scanDiscipline(row rowScanner) (models.Discipline, error) {
	var d models.Discipline
	var frequency, status, days, startedAt, createdAt string
	var evolvedInto, deletedAt sql.NullString

	err := row.Scan(&d.ID, &d.Name, &d.TargetMinutes, &frequency, &days, &startedAt, &status, &evolvedInto, &createdAt, &deletedAt)
	if err != nil {
		return models.Discipline{}, err
	}

	d.Frequency = constants.Frequency(frequency)
	d.Status = constants.DisciplineStatus(status)

	d.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return models.Discipline{}, fmt.Errorf("failed to parse started_at: %w", err)
	}
	d.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Discipline{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if evolvedInto.Valid {
		d.EvolvedInto = &evolvedInto.String
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Discipline{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		d.DeletedAt = &t
	}

	if days != "" {
		var weekdays []int
		if err := json.Unmarshal([]byte(days), &weekdays); err == nil {
			for _, w := range weekdays {
				d.Days = append(d.Days, time.Weekday(w))
			}
		}
	}

	return d, nil
}

func scanDisciplines(rows *sql.Rows) ([]models.Discipline, error) {
	var disciplines []models.Discipline
	for rows.Next() {
		d, err := scanDiscipline(rows)
		if err != nil {
			return nil, err
		}
		disciplines = append(disciplines, d)
	}
	return disciplines, rows.Err()
}
