package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/fbarbosa/granavoz/internal/database"
	"github.com/fbarbosa/granavoz/internal/models"
)

const goalColumns = `id, user_id, title, description, target_amount, current_amount, target_date, status, category, created_at, updated_at`

type PgGoalRepository struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) *PgGoalRepository {
	return &PgGoalRepository{db: db}
}

func (r *PgGoalRepository) Save(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO financial_goals (user_id, title, description, target_amount, current_amount, target_date, status, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		goal.UserID, goal.Title, goal.Description, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.Status, goal.Category,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal, nil
}

func (r *PgGoalRepository) FindByID(ctx context.Context, id, userID int64) (*models.Goal, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM financial_goals WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	goal, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return goal, nil
}

func (r *PgGoalRepository) ListByUser(ctx context.Context, userID int64, filter GoalFilter) ([]*models.Goal, error) {
	q := psql.Select(goalColumns).
		From("financial_goals").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("target_date DESC NULLS LAST", "created_at DESC").
		Limit(uint64(clampLimit(filter.Limit)))

	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.Category != nil {
		q = q.Where(sq.Eq{"category": *filter.Category})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build goal query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *PgGoalRepository) Update(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE financial_goals
		 SET title = $1, description = $2, target_amount = $3, current_amount = $4,
		     target_date = $5, status = $6, category = $7
		 WHERE id = $8 AND user_id = $9
		 RETURNING updated_at`,
		goal.Title, goal.Description, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.Status, goal.Category, goal.ID, goal.UserID,
	).Scan(&goal.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("goal %d: %w", goal.ID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (r *PgGoalRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgGoalRepository) Count(ctx context.Context, userID int64, status *models.GoalStatus) (int, error) {
	q := psql.Select("COUNT(*)").
		From("financial_goals").
		Where(sq.Eq{"user_id": userID})
	if status != nil {
		q = q.Where(sq.Eq{"status": *status})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build goal count query: %w", err)
	}

	var count int
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}
	return count, nil
}

func (r *PgGoalRepository) AverageCompletion(ctx context.Context, userID int64) (float64, error) {
	var avg float64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(LEAST(current_amount / target_amount, 1))::float8, 0)
		 FROM financial_goals
		 WHERE user_id = $1 AND status = $2`,
		userID, models.GoalStatusActive,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute goal completion: %w", err)
	}
	return avg, nil
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	goal := &models.Goal{}
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.TargetAmount,
		&goal.CurrentAmount, &goal.TargetDate, &goal.Status, &goal.Category, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return goal, nil
}
