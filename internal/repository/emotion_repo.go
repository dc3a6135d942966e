package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

type EmotionRepository interface {
	Create(ctx context.Context, analysis domain.EmotionAnalysis) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.EmotionAnalysis, error)
}

type PgEmotionRepository struct {
	pool *pgxpool.Pool
}

func NewPgEmotionRepository(pool *pgxpool.Pool) *PgEmotionRepository {
	return &PgEmotionRepository{pool: pool}
}

func (r *PgEmotionRepository) Create(ctx context.Context, analysis domain.EmotionAnalysis) error {
	const query = `
		INSERT INTO emotion_analysis (id, session_id, message_id, emotion_scores, dominant_emotion, confidence_score, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	scores, err := json.Marshal(analysis.Scores)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		analysis.ID,
		analysis.SessionID,
		analysis.MessageID,
		scores,
		analysis.Dominant,
		analysis.Confidence,
		analysis.AnalyzedAt,
	)
	return err
}

func (r *PgEmotionRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.EmotionAnalysis, error) {
	const query = `
		SELECT id, session_id, message_id, emotion_scores, dominant_emotion, confidence_score, analyzed_at
		FROM emotion_analysis
		WHERE session_id = $1
		ORDER BY analyzed_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EmotionAnalysis
	for rows.Next() {
		var (
			a      domain.EmotionAnalysis
			scores []byte
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &a.MessageID, &scores, &a.Dominant, &a.Confidence, &a.AnalyzedAt); err != nil {
			return nil, err
		}
		if len(scores) > 0 {
			if err := json.Unmarshal(scores, &a.Scores); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
