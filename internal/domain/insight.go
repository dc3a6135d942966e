package domain

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// SessionInsight is a short retrievable note about one coaching turn, stored
// with an embedding so later sessions can surface related past work.
type SessionInsight struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	SessionID string          `json:"session_id"`
	Content   string          `json:"content"`
	Stage     BehaviorStage   `json:"stage"`
	Phase     GrowPhase       `json:"phase"`
	Embedding pgvector.Vector `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}
