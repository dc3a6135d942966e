package domain

import "time"

const (
	SpeakerUser = "user"
	SpeakerAI   = "ai"
)

// Message is immutable once recorded; ordering within a session is by CreatedAt.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
