package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.CoachingSession) error
	GetByID(ctx context.Context, id string) (domain.CoachingSession, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.CoachingSession, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	SetStatus(ctx context.Context, id, status string) error
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.CoachingSession) error {
	const query = `
		INSERT INTO coaching_sessions (id, user_id, session_type, context_data, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	contextData, err := json.Marshal(session.ContextData)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.SessionType,
		contextData,
		session.Status,
		session.StartedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.CoachingSession, error) {
	const query = `
		SELECT id, user_id, session_type, context_data, status, started_at, ended_at
		FROM coaching_sessions
		WHERE id = $1
	`
	var (
		s           domain.CoachingSession
		contextData []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.SessionType,
		&contextData,
		&s.Status,
		&s.StartedAt,
		&s.EndedAt,
	)
	if err != nil {
		return domain.CoachingSession{}, err
	}
	if len(contextData) > 0 {
		if err := json.Unmarshal(contextData, &s.ContextData); err != nil {
			return domain.CoachingSession{}, err
		}
	}
	return s, nil
}

func (r *PgSessionRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.CoachingSession, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT id, user_id, session_type, context_data, status, started_at, ended_at
		FROM coaching_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.CoachingSession
	for rows.Next() {
		var (
			s           domain.CoachingSession
			contextData []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.SessionType, &contextData, &s.Status, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		if len(contextData) > 0 {
			if err := json.Unmarshal(contextData, &s.ContextData); err != nil {
				return nil, err
			}
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *PgSessionRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM coaching_sessions WHERE user_id = $1`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgSessionRepository) SetStatus(ctx context.Context, id, status string) error {
	const query = `
		UPDATE coaching_sessions
		SET status = $2, ended_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE ended_at END
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}
