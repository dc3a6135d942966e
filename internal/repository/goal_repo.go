package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

type GoalRepository interface {
	Create(ctx context.Context, goal domain.Goal) error
	GetByID(ctx context.Context, id string) (domain.Goal, error)
	ListActiveByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	Update(ctx context.Context, goal domain.Goal) error
	CountByStatus(ctx context.Context, userID string) (total, completed, active int, err error)
}

type PgGoalRepository struct {
	pool *pgxpool.Pool
}

func NewPgGoalRepository(pool *pgxpool.Pool) *PgGoalRepository {
	return &PgGoalRepository{pool: pool}
}

func (r *PgGoalRepository) Create(ctx context.Context, goal domain.Goal) error {
	const query = `
		INSERT INTO goals (id, user_id, raw_goal, smart_goal, category, priority, status, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
	`
	smart, err := json.Marshal(goal.Smart)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.RawGoal,
		smart,
		goal.Category,
		goal.Priority,
		goal.Status,
		goal.TargetDate,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	return err
}

func (r *PgGoalRepository) GetByID(ctx context.Context, id string) (domain.Goal, error) {
	const query = `
		SELECT id, user_id, raw_goal, smart_goal, category, priority, status, COALESCE(target_date, ''), created_at, updated_at
		FROM goals
		WHERE id = $1
	`
	var (
		g     domain.Goal
		smart []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.UserID,
		&g.RawGoal,
		&smart,
		&g.Category,
		&g.Priority,
		&g.Status,
		&g.TargetDate,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return domain.Goal{}, err
	}
	if len(smart) > 0 {
		if err := json.Unmarshal(smart, &g.Smart); err != nil {
			return domain.Goal{}, err
		}
	}
	return g, nil
}

// ListActiveByUser also aggregates per-goal action counts so the dashboard can
// show completion rates without a second round trip.
func (r *PgGoalRepository) ListActiveByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	const query = `
		SELECT g.id, g.user_id, g.raw_goal, g.smart_goal, g.category, g.priority, g.status, COALESCE(g.target_date, ''),
		       g.created_at, g.updated_at,
		       COUNT(a.id) AS total_actions,
		       COUNT(a.id) FILTER (WHERE a.status = 'completed') AS completed_actions
		FROM goals g
		LEFT JOIN action_items a ON a.goal_id = g.id
		WHERE g.user_id = $1 AND g.status = 'active'
		GROUP BY g.id
		ORDER BY g.priority DESC, g.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var (
			g     domain.Goal
			smart []byte
		)
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.RawGoal, &smart, &g.Category, &g.Priority, &g.Status, &g.TargetDate,
			&g.CreatedAt, &g.UpdatedAt, &g.TotalActions, &g.CompletedActions,
		); err != nil {
			return nil, err
		}
		if len(smart) > 0 {
			if err := json.Unmarshal(smart, &g.Smart); err != nil {
				return nil, err
			}
		}
		if g.TotalActions > 0 {
			g.CompletionRate = float64(g.CompletedActions) / float64(g.TotalActions)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *PgGoalRepository) Update(ctx context.Context, goal domain.Goal) error {
	const query = `
		UPDATE goals
		SET raw_goal = COALESCE(NULLIF($2, ''), raw_goal),
		    category = COALESCE(NULLIF($3, ''), category),
		    priority = CASE WHEN $4 > 0 THEN $4 ELSE priority END,
		    status = COALESCE(NULLIF($5, ''), status),
		    target_date = COALESCE(NULLIF($6, ''), target_date),
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		goal.ID,
		goal.RawGoal,
		goal.Category,
		goal.Priority,
		goal.Status,
		goal.TargetDate,
	)
	return err
}

func (r *PgGoalRepository) CountByStatus(ctx context.Context, userID string) (total, completed, active int, err error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'active')
		FROM goals
		WHERE user_id = $1
	`
	err = r.pool.QueryRow(ctx, query, userID).Scan(&total, &completed, &active)
	return total, completed, active, err
}
