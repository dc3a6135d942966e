package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

type ActionRepository interface {
	CreateBatch(ctx context.Context, actions []domain.ActionItem) error
	GetByID(ctx context.Context, id string) (domain.ActionItem, error)
	ListByGoal(ctx context.Context, goalID string) ([]domain.ActionItem, error)
	ListDueByUser(ctx context.Context, userID string, limit int) ([]domain.ActionItem, error)
	SetStatus(ctx context.Context, id, status string) error
}

type PgActionRepository struct {
	pool *pgxpool.Pool
}

func NewPgActionRepository(pool *pgxpool.Pool) *PgActionRepository {
	return &PgActionRepository{pool: pool}
}

func (r *PgActionRepository) CreateBatch(ctx context.Context, actions []domain.ActionItem) error {
	if len(actions) == 0 {
		return nil
	}
	const query = `
		INSERT INTO action_items (id, goal_id, description, sequence_order, estimated_minutes, difficulty_level, status, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
	`
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range actions {
		if _, err := tx.Exec(ctx, query,
			a.ID,
			a.GoalID,
			a.Description,
			a.SequenceOrder,
			a.EstimatedMinutes,
			a.DifficultyLevel,
			a.Status,
			a.DueDate,
			a.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PgActionRepository) GetByID(ctx context.Context, id string) (domain.ActionItem, error) {
	const query = `
		SELECT id, goal_id, description, sequence_order, estimated_minutes, difficulty_level, status, COALESCE(due_date, ''), created_at
		FROM action_items
		WHERE id = $1
	`
	var a domain.ActionItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.GoalID, &a.Description, &a.SequenceOrder, &a.EstimatedMinutes,
		&a.DifficultyLevel, &a.Status, &a.DueDate, &a.CreatedAt,
	)
	if err != nil {
		return domain.ActionItem{}, err
	}
	return a, nil
}

func (r *PgActionRepository) ListByGoal(ctx context.Context, goalID string) ([]domain.ActionItem, error) {
	const query = `
		SELECT id, goal_id, description, sequence_order, estimated_minutes, difficulty_level, status, COALESCE(due_date, ''), created_at
		FROM action_items
		WHERE goal_id = $1
		ORDER BY sequence_order ASC
	`
	rows, err := r.pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActions(rows)
}

// ListDueByUser returns pending actions due today or overdue, easiest first.
func (r *PgActionRepository) ListDueByUser(ctx context.Context, userID string, limit int) ([]domain.ActionItem, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
		SELECT a.id, a.goal_id, a.description, a.sequence_order, a.estimated_minutes, a.difficulty_level, a.status, COALESCE(a.due_date, ''), a.created_at
		FROM action_items a
		JOIN goals g ON g.id = a.goal_id
		WHERE g.user_id = $1
		  AND a.status = 'pending'
		  AND (a.due_date IS NULL OR a.due_date <= CURRENT_DATE)
		ORDER BY a.due_date ASC NULLS LAST, a.estimated_minutes ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActions(rows)
}

func (r *PgActionRepository) SetStatus(ctx context.Context, id, status string) error {
	const query = `UPDATE action_items SET status = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}

func scanActions(rows pgx.Rows) ([]domain.ActionItem, error) {
	var actions []domain.ActionItem
	for rows.Next() {
		var a domain.ActionItem
		if err := rows.Scan(
			&a.ID, &a.GoalID, &a.Description, &a.SequenceOrder, &a.EstimatedMinutes,
			&a.DifficultyLevel, &a.Status, &a.DueDate, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
