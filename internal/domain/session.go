package domain

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusPaused    = "paused"
)

type CoachingSession struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	SessionType string            `json:"session_type"`
	ContextData map[string]string `json:"context_data,omitempty"`
	Status      string            `json:"status"`
	StartedAt   time.Time         `json:"started_at"`
	EndedAt     *time.Time        `json:"ended_at,omitempty"`
}
