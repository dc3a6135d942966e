package domain

// ConversationFlow buckets how far into a session the dialogue has progressed.
const (
	FlowInitial        = "initial"
	FlowExploration    = "exploration"
	FlowDeepening      = "deepening"
	FlowActionPlanning = "action_planning"
)

// ConversationAnalysis is derived from the session history every turn; it is
// never persisted as authoritative state.
type ConversationAnalysis struct {
	MessageCount     int              `json:"message_count"`
	UserMessageCount int              `json:"user_message_count"`
	Topics           []string         `json:"topics"`
	UserGoals        []string         `json:"user_goals"` // capped at 5, first-seen order
	Challenges       []string         `json:"challenges"` // capped at 3, whole message content
	Emotions         []EmotionScores  `json:"emotions"`   // one per user message, in order
	GrowPhaseHistory []GrowPhase      `json:"grow_phase_history"`
	LastUserMessage  string           `json:"last_user_message"`
	ConversationFlow string           `json:"conversation_flow"`
	RecentContext    []Message        `json:"recent_context"` // last 6 messages, any speaker
	PastInsights     []SessionInsight `json:"past_insights,omitempty"`
}

// LastEmotion returns the most recent per-message emotion vector, or nil.
func (a ConversationAnalysis) LastEmotion() EmotionScores {
	if len(a.Emotions) == 0 {
		return nil
	}
	return a.Emotions[len(a.Emotions)-1]
}
