package domain

// CoachReply is built fresh per turn and never mutated after construction.
// All fields are always populated, whichever code path produced it.
type CoachReply struct {
	AIResponse    string        `json:"ai_response"`
	NextQuestions []string      `json:"next_questions"` // at most 3
	EmotionalTone string        `json:"emotional_tone"`
	Confidence    float64       `json:"confidence"` // in [0,1]
	BehaviorStage BehaviorStage `json:"behavior_stage"`
	GrowPhase     GrowPhase     `json:"grow_phase"`
}

const (
	ToneSupportive   = "supportive"
	ToneEncouraging  = "encouraging"
	ToneEmpathetic   = "empathetic"
	ToneMotivational = "motivational"
)
