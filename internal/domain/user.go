package domain

import "time"

type User struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	DisplayName  string             `json:"display_name,omitempty"`
	PasswordHash string             `json:"-"`
	Personality  PersonalityProfile `json:"personality_profile"`
	Preferences  UserPreferences    `json:"preferences"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// PersonalityProfile holds Big Five scores in [0,1].
type PersonalityProfile struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

const (
	CoachingStyleSupportive  = "supportive"
	CoachingStyleChallenging = "challenging"
	CoachingStyleBalanced    = "balanced"
)

type UserPreferences struct {
	CoachingStyle     string `json:"coaching_style"`
	SessionLength     int    `json:"session_length"`
	ReminderFrequency string `json:"reminder_frequency"` // daily, weekly, none
}
