package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

type ProgressRepository interface {
	Create(ctx context.Context, record domain.ProgressRecord) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.ProgressRecord, error)
	ListCompletedDays(ctx context.Context, userID string) ([]string, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
	EmotionTrend(ctx context.Context, userID string, days int) ([]domain.EmotionTrendPoint, error)
	CategoryProgress(ctx context.Context, userID string, since time.Time) ([]domain.CategoryProgress, error)
	WeeklyStats(ctx context.Context, userID string, since time.Time) (domain.WeeklyStats, error)
	FirstCompletionDates(ctx context.Context, userID string) (map[string]time.Time, error)
}

type PgProgressRepository struct {
	pool *pgxpool.Pool
}

func NewPgProgressRepository(pool *pgxpool.Pool) *PgProgressRepository {
	return &PgProgressRepository{pool: pool}
}

func (r *PgProgressRepository) Create(ctx context.Context, record domain.ProgressRecord) error {
	const query = `
		INSERT INTO progress_records (id, user_id, goal_id, action_item_id, completed, reflection, emotional_state, recorded_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.GoalID,
		record.ActionItemID,
		record.Completed,
		record.Reflection,
		record.EmotionalState,
		record.RecordedAt,
	)
	return err
}

func (r *PgProgressRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.ProgressRecord, error) {
	const query = `
		SELECT id, user_id, COALESCE(goal_id::text, ''), COALESCE(action_item_id::text, ''), completed, COALESCE(reflection, ''), emotional_state, recorded_at
		FROM progress_records
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ProgressRecord
	for rows.Next() {
		var p domain.ProgressRecord
		if err := rows.Scan(&p.ID, &p.UserID, &p.GoalID, &p.ActionItemID, &p.Completed, &p.Reflection, &p.EmotionalState, &p.RecordedAt); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// ListCompletedDays returns the distinct days with at least one completed
// record, newest first. The service derives the streak from this list.
func (r *PgProgressRepository) ListCompletedDays(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT DISTINCT recorded_at::date::text AS day
		FROM progress_records
		WHERE user_id = $1 AND completed = TRUE
		ORDER BY day DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (r *PgProgressRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM progress_records
		WHERE user_id = $1 AND completed = TRUE
	`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *PgProgressRepository) EmotionTrend(ctx context.Context, userID string, days int) ([]domain.EmotionTrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	const query = `
		SELECT recorded_at::date::text AS day, AVG(emotional_state)
		FROM progress_records
		WHERE user_id = $1 AND recorded_at >= NOW() - $2 * INTERVAL '1 day'
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.EmotionTrendPoint
	for rows.Next() {
		var p domain.EmotionTrendPoint
		if err := rows.Scan(&p.Date, &p.AverageScore); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *PgProgressRepository) CategoryProgress(ctx context.Context, userID string, since time.Time) ([]domain.CategoryProgress, error) {
	const query = `
		SELECT g.category,
		       COUNT(*) FILTER (WHERE p.completed),
		       COALESCE(AVG(p.emotional_state), 0)
		FROM progress_records p
		JOIN goals g ON g.id = p.goal_id
		WHERE p.user_id = $1 AND p.recorded_at >= $2
		GROUP BY g.category
		ORDER BY g.category
	`
	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []domain.CategoryProgress
	for rows.Next() {
		var c domain.CategoryProgress
		if err := rows.Scan(&c.Category, &c.CompletedActions, &c.AvgSatisfaction); err != nil {
			return nil, err
		}
		progress = append(progress, c)
	}
	return progress, rows.Err()
}

func (r *PgProgressRepository) WeeklyStats(ctx context.Context, userID string, since time.Time) (domain.WeeklyStats, error) {
	const query = `
		SELECT COUNT(*) FILTER (WHERE completed),
		       COALESCE(AVG(emotional_state), 0),
		       COUNT(DISTINCT recorded_at::date)
		FROM progress_records
		WHERE user_id = $1 AND recorded_at >= $2
	`
	var stats domain.WeeklyStats
	err := r.pool.QueryRow(ctx, query, userID, since).Scan(
		&stats.TotalActions,
		&stats.AvgEmotionalState,
		&stats.ActiveDays,
	)
	return stats, err
}

// FirstCompletionDates maps each goal to its earliest completed record.
func (r *PgProgressRepository) FirstCompletionDates(ctx context.Context, userID string) (map[string]time.Time, error) {
	const query = `
		SELECT goal_id::text, MIN(recorded_at)
		FROM progress_records
		WHERE user_id = $1 AND completed = TRUE AND goal_id IS NOT NULL
		GROUP BY goal_id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make(map[string]time.Time)
	for rows.Next() {
		var (
			goalID string
			first  time.Time
		)
		if err := rows.Scan(&goalID, &first); err != nil {
			return nil, err
		}
		dates[goalID] = first
	}
	return dates, rows.Err()
}
