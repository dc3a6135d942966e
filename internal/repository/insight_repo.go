package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"evolve-coach/internal/domain"
)

type InsightRepository interface {
	Create(ctx context.Context, insight domain.SessionInsight) error
	Search(ctx context.Context, userID string, queryEmbedding pgvector.Vector, k int) ([]domain.SessionInsight, error)
}

type PgInsightRepository struct {
	pool *pgxpool.Pool
}

func NewPgInsightRepository(pool *pgxpool.Pool) *PgInsightRepository {
	return &PgInsightRepository{pool: pool}
}

func (r *PgInsightRepository) Create(ctx context.Context, insight domain.SessionInsight) error {
	const query = `
		INSERT INTO session_insights (id, user_id, session_id, content, stage, phase, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		insight.ID,
		insight.UserID,
		insight.SessionID,
		insight.Content,
		string(insight.Stage),
		string(insight.Phase),
		insight.Embedding,
		insight.CreatedAt,
	)
	return err
}

func (r *PgInsightRepository) Search(ctx context.Context, userID string, queryEmbedding pgvector.Vector, k int) ([]domain.SessionInsight, error) {
	if k <= 0 {
		k = 3
	}
	const query = `
		SELECT id, user_id, session_id, content, stage, phase, embedding, created_at
		FROM session_insights
		WHERE user_id = $1
		ORDER BY embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []domain.SessionInsight
	for rows.Next() {
		var (
			i            domain.SessionInsight
			stage, phase string
		)
		if err := rows.Scan(&i.ID, &i.UserID, &i.SessionID, &i.Content, &stage, &phase, &i.Embedding, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.Stage = domain.BehaviorStage(stage)
		i.Phase = domain.GrowPhase(phase)
		insights = append(insights, i)
	}
	return insights, rows.Err()
}
