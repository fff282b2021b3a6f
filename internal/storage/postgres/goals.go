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

func (s *Store) AddGoal(goal models.Goal) error {
	return s.UpdateGoal(goal)
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow(`
		SELECT id, title, area_id, horizon, period_key, status, outcome, created_at, closed_at, deleted_at
		FROM goals WHERE id = $1 AND deleted_at IS NULL`, id)

	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, fmt.Errorf("goal %q: %w", id, storage.ErrNotFound)
	}
	return g, err
}

func (s *Store) GetGoalsByPeriod(horizon, periodKey string) ([]models.Goal, error) {
	rows, err := s.db.Query(`
		SELECT id, title, area_id, horizon, period_key, status, outcome, created_at, closed_at, deleted_at
		FROM goals WHERE horizon = $1 AND period_key = $2 AND deleted_at IS NULL
		ORDER BY created_at`, horizon, periodKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoals(rows)
}

func (s *Store) GetAllGoals(includeDeleted bool) ([]models.Goal, error) {
	query := `SELECT id, title, area_id, horizon, period_key, status, outcome, created_at, closed_at, deleted_at FROM goals`
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoals(rows)
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	var areaID, closedAt, deletedAt sql.NullString
	if goal.AreaID != nil {
		areaID = sql.NullString{String: *goal.AreaID, Valid: true}
	}
	if goal.ClosedAt != nil {
		closedAt = sql.NullString{String: goal.ClosedAt.Format(time.RFC3339), Valid: true}
	}
	if goal.DeletedAt != nil {
		deletedAt = sql.NullString{String: goal.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO goals (id, title, area_id, horizon, period_key, status, outcome, created_at, closed_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			area_id = EXCLUDED.area_id,
			horizon = EXCLUDED.horizon,
			period_key = EXCLUDED.period_key,
			status = EXCLUDED.status,
			outcome = EXCLUDED.outcome,
			closed_at = EXCLUDED.closed_at,
			deleted_at = EXCLUDED.deleted_at`,
		goal.ID, goal.Title, areaID, string(goal.Horizon), goal.PeriodKey, string(goal.Status),
		goal.Outcome, goal.CreatedAt.Format(time.RFC3339), closedAt, deletedAt)

	return err
}

func (s *Store) DeleteGoal(id string) error {
	result, err := s.db.Exec(`
		UPDATE goals SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("goal not found or already deleted")
	}

	return nil
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var horizon, status, createdAt string
	var areaID, closedAt, deletedAt sql.NullString

	err := row.Scan(&g.ID, &g.Title, &areaID, &horizon, &g.PeriodKey, &status, &g.Outcome, &createdAt, &closedAt, &deletedAt)
	if err != nil {
		return models.Goal{}, err
	}

	g.Horizon = constants.Horizon(horizon)
	g.Status = constants.GoalStatus(status)

	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if areaID.Valid {
		g.AreaID = &areaID.String
	}
	if closedAt.Valid {
		t, err := time.Parse(time.RFC3339, closedAt.String)
		if err != nil {
			return models.Goal{}, fmt.Errorf("failed to parse closed_at: %w", err)
		}
		g.ClosedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Goal{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		g.DeletedAt = &t
	}

	return g, nil
}

func scanGoals(rows *sql.Rows) ([]models.Goal, error) {
	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
