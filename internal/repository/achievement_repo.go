package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement domain.MicroAchievement) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.MicroAchievement, error)
}

type PgAchievementRepository struct {
	pool *pgxpool.Pool
}

func NewPgAchievementRepository(pool *pgxpool.Pool) *PgAchievementRepository {
	return &PgAchievementRepository{pool: pool}
}

func (r *PgAchievementRepository) Create(ctx context.Context, achievement domain.MicroAchievement) error {
	const query = `
		INSERT INTO micro_achievements (id, user_id, title, description, action_description, raw_goal, points, category, achieved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.Title,
		achievement.Description,
		achievement.ActionDesc,
		achievement.RawGoal,
		achievement.Points,
		achievement.Category,
		achievement.AchievedAt,
	)
	return err
}

func (r *PgAchievementRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.MicroAchievement, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
		SELECT id, user_id, title, description, action_description, raw_goal, points, category, achieved_at
		FROM micro_achievements
		WHERE user_id = $1
		ORDER BY achieved_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.MicroAchievement
	for rows.Next() {
		var a domain.MicroAchievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.ActionDesc, &a.RawGoal, &a.Points, &a.Category, &a.AchievedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
