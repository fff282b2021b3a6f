package sqlite

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
		FROM goals WHERE id = ? AND deleted_at IS NULL`, id)

	var g models.Goal
	var horizon, status, createdAt string
	var areaID, closedAt, deletedAt sql.NullString

	err := row.Scan(&g.ID, &g.Title, &areaID, &horizon, &g.PeriodKey, &status, &g.Outcome, &createdAt, &closedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, fmt.Errorf("goal %q: %w", id, storage.ErrNotFound)
	}
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

func (s *Store) GetGoalsByPeriod(horizon, periodKey string) ([]models.Goal, error) {
	rows, err := s.db.Query(`
		SELECT id, title, area_id, horizon, period_key, status, outcome, created_at, closed_at, deleted_at
		FROM goals WHERE horizon = ? AND period_key = ? AND deleted_at IS NULL
		ORDER BY created_at`, horizon, periodKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoalRows(rows)
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

	return scanGoalRows(rows)
}

func scanGoalRows(rows *sql.Rows) ([]models.Goal, error) {
	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var horizon, status, createdAt string
		var areaID, closedAt, deletedAt sql.NullString

		err := rows.Scan(&g.ID, &g.Title, &areaID, &horizon, &g.PeriodKey, &status, &g.Outcome, &createdAt, &closedAt, &deletedAt)
		if err != nil {
			return nil, err
		}

		g.Horizon = constants.Horizon(horizon)
		g.Status = constants.GoalStatus(status)

		g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for goal %s: %w", g.ID, err)
		}
		if areaID.Valid {
			g.AreaID = &areaID.String
		}
		if closedAt.Valid {
			t, err := time.Parse(time.RFC3339, closedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse closed_at for goal %s: %w", g.ID, err)
			}
			g.ClosedAt = &t
		}
		if deletedAt.Valid {
			t, err := time.Parse(time.RFC3339, deletedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse deleted_at for goal %s: %w", g.ID, err)
			}
			g.DeletedAt = &t
		}

		goals = append(goals, g)
	}

	return goals, rows.Err()
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			area_id = excluded.area_id,
			horizon = excluded.horizon,
			period_key = excluded.period_key,
			status = excluded.status,
			outcome = excluded.outcome,
			closed_at = excluded.closed_at,
			deleted_at = excluded.deleted_at`,
		goal.ID, goal.Title, areaID, string(goal.Horizon), goal.PeriodKey, string(goal.Status),
		goal.Outcome, goal.CreatedAt.Format(time.RFC3339), closedAt, deletedAt)

	return err
}

func (s *Store) DeleteGoal(id string) error {
	result, err := s.db.Exec(`
		UPDATE goals SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
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
