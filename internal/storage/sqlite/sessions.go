package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

func (s *Store) AddSession(session models.Session) error {
	return s.UpdateSession(session)
}

func (s *Store) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, area_id, started_at, ended_at, note, created_at, deleted_at
		FROM sessions WHERE id = ? AND deleted_at IS NULL`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session %q: %w", id, storage.ErrNotFound)
	}
	return sess, err
}

// GetRunningSession returns the most recently started session without an end
// time. At most one session should be running at a time; the CLI enforces
// this by closing the open session before starting a new one.
func (s *Store) GetRunningSession() (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, area_id, started_at, ended_at, note, created_at, deleted_at
		FROM sessions WHERE ended_at IS NULL AND deleted_at IS NULL
		ORDER BY started_at DESC LIMIT 1`)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("running session: %w", storage.ErrNotFound)
	}
	return sess, err
}

func (s *Store) GetSessionsForArea(areaID, startDay, endDay string) ([]models.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, area_id, started_at, ended_at, note, created_at, deleted_at
		FROM sessions
		WHERE area_id = ? AND substr(started_at, 1, 10) >= ? AND substr(started_at, 1, 10) <= ? AND deleted_at IS NULL
		ORDER BY started_at`, areaID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (s *Store) GetSessionsInRange(startDay, endDay string) ([]models.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, area_id, started_at, ended_at, note, created_at, deleted_at
		FROM sessions
		WHERE substr(started_at, 1, 10) >= ? AND substr(started_at, 1, 10) <= ? AND deleted_at IS NULL
		ORDER BY started_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (s *Store) GetAllSessions() ([]models.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, area_id, started_at, ended_at, note, created_at, deleted_at
		FROM sessions ORDER BY started_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (s *Store) UpdateSession(session models.Session) error {
	var endedAt, deletedAt sql.NullString
	if session.EndedAt != nil {
		endedAt = sql.NullString{String: session.EndedAt.Format(time.RFC3339), Valid: true}
	}
	if session.DeletedAt != nil {
		deletedAt = sql.NullString{String: session.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, area_id, started_at, ended_at, note, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			area_id = excluded.area_id,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			note = excluded.note,
			deleted_at = excluded.deleted_at`,
		session.ID, session.AreaID, session.StartedAt.Format(time.RFC3339), endedAt,
		session.Note, session.CreatedAt.Format(time.RFC3339), deletedAt)

	return err
}

func (s *Store) DeleteSession(id string) error {
	result, err := s.db.Exec(`
		UPDATE sessions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.Session, error) {
	var sess models.Session
	var startedAt, createdAt string
	var endedAt, deletedAt sql.NullString

	err := row.Scan(&sess.ID, &sess.AreaID, &startedAt, &endedAt, &sess.Note, &createdAt, &deletedAt)
	if err != nil {
		return models.Session{}, err
	}

	sess.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to parse started_at: %w", err)
	}
	sess.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if endedAt.Valid {
		t, err := time.Parse(time.RFC3339, endedAt.String)
		if err != nil {
			return models.Session{}, fmt.Errorf("failed to parse ended_at: %w", err)
		}
		sess.EndedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Session{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		sess.DeletedAt = &t
	}

	return sess, nil
}

func scanSessions(rows *sql.Rows) ([]models.Session, error) {
	var sessions []models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
