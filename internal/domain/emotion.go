package domain

import "time"

// Emotion labels form a closed set; scores always carry all seven keys.
const (
	EmotionJoy      = "joy"
	EmotionSadness  = "sadness"
	EmotionAnger    = "anger"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
	EmotionDisgust  = "disgust"
	EmotionNeutral  = "neutral"
)

// EmotionOrder fixes the enumeration used for argmax tie-breaking.
var EmotionOrder = []string{
	EmotionJoy,
	EmotionSadness,
	EmotionAnger,
	EmotionFear,
	EmotionSurprise,
	EmotionDisgust,
	EmotionNeutral,
}

// EmotionScores maps each label to a non-negative intensity. Scores are not
// normalized and can exceed 1.0 when several lexicon terms match.
type EmotionScores map[string]float64

// NewEmotionScores returns the canonical starting vector: all zero except
// neutral at 0.5.
func NewEmotionScores() EmotionScores {
	s := make(EmotionScores, len(EmotionOrder))
	for _, label := range EmotionOrder {
		s[label] = 0
	}
	s[EmotionNeutral] = 0.5
	return s
}

// Dominant returns the highest-scoring label, ties broken by EmotionOrder.
func (s EmotionScores) Dominant() string {
	best := EmotionNeutral
	bestScore := -1.0
	for _, label := range EmotionOrder {
		if s[label] > bestScore {
			best = label
			bestScore = s[label]
		}
	}
	return best
}

// Max returns the highest score value.
func (s EmotionScores) Max() float64 {
	max := 0.0
	for _, label := range EmotionOrder {
		if s[label] > max {
			max = s[label]
		}
	}
	return max
}

// EmotionAnalysis is the persisted per-message analysis row.
type EmotionAnalysis struct {
	ID         string        `json:"id"`
	SessionID  string        `json:"session_id"`
	MessageID  string        `json:"message_id"`
	Scores     EmotionScores `json:"emotion_scores"`
	Dominant   string        `json:"dominant_emotion"`
	Confidence float64       `json:"confidence_score"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
}
