package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

// UpsertPartnerCheckIn writes at most one partner check-in per day and
// returns the stored row. On conflict the original id and created_at survive.
func (s *Store) UpsertPartnerCheckIn(p models.PartnerCheckIn) (models.PartnerCheckIn, error) {
	_, err := s.db.Exec(`
		INSERT INTO partner_checkins (id, day, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			note = excluded.note,
			updated_at = excluded.updated_at`,
		p.ID, p.Day, p.Note, p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return models.PartnerCheckIn{}, err
	}

	return s.GetPartnerCheckIn(p.Day)
}

func (s *Store) GetPartnerCheckIn(day string) (models.PartnerCheckIn, error) {
	row := s.db.QueryRow(`
		SELECT id, day, note, created_at, updated_at
		FROM partner_checkins WHERE day = ?`, day)

	var p models.PartnerCheckIn
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Day, &p.Note, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PartnerCheckIn{}, fmt.Errorf("partner check-in for %s: %w", day, storage.ErrNotFound)
	}
	if err != nil {
		return models.PartnerCheckIn{}, err
	}

	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.PartnerCheckIn{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.PartnerCheckIn{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return p, nil
}

func (s *Store) GetPartnerCheckIns(startDay, endDay string) ([]models.PartnerCheckIn, error) {
	rows, err := s.db.Query(`
		SELECT id, day, note, created_at, updated_at
		FROM partner_checkins WHERE day >= ? AND day <= ?
		ORDER BY day DESC`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPartnerCheckInRows(rows)
}

func (s *Store) GetAllPartnerCheckIns() ([]models.PartnerCheckIn, error) {
	rows, err := s.db.Query(`
		SELECT id, day, note, created_at, updated_at
		FROM partner_checkins ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPartnerCheckInRows(rows)
}

func scanPartnerCheckInRows(rows *sql.Rows) ([]models.PartnerCheckIn, error) {
	var checkIns []models.PartnerCheckIn
	for rows.Next() {
		var p models.PartnerCheckIn
		var createdAt, updatedAt string

		err := rows.Scan(&p.ID, &p.Day, &p.Note, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for check-in %s: %w", p.ID, err)
		}
		p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for check-in %s: %w", p.ID, err)
		}

		checkIns = append(checkIns, p)
	}

	return checkIns, rows.Err()
}
