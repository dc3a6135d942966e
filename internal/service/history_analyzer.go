package service

import "evolve-coach/internal/domain"

const recentContextSize = 6

// HistoryAnalyzer aggregates a session's message list into the per-turn
// ConversationAnalysis. It owns no state; everything is recomputed from the
// history passed in.
type HistoryAnalyzer struct {
	scorer    EmotionScorer
	extractor Extractor
}

func NewHistoryAnalyzer() *HistoryAnalyzer {
	return &HistoryAnalyzer{}
}

// Analyze derives the turn-level analysis. An empty history yields the
// canonical initial analysis: zero counts, empty collections, initial flow.
func (a *HistoryAnalyzer) Analyze(history []domain.Message) domain.ConversationAnalysis {
	analysis := domain.ConversationAnalysis{
		ConversationFlow: domain.FlowInitial,
	}
	if len(history) == 0 {
		return analysis
	}

	var userMessages []domain.Message
	for _, msg := range history {
		if msg.Speaker == domain.SpeakerUser {
			userMessages = append(userMessages, msg)
		}
	}

	analysis.MessageCount = len(history)
	analysis.UserMessageCount = len(userMessages)

	ex := a.extractor.Extract(userMessages)
	analysis.Topics = ex.Topics
	analysis.UserGoals = ex.Goals
	analysis.Challenges = ex.Challenges

	for _, msg := range userMessages {
		scores, _, _ := a.scorer.AnalyzeEmotion(msg.Content)
		analysis.Emotions = append(analysis.Emotions, scores)

		// A single message may tag zero, one or several GROW phases.
		for _, rule := range growKeywords {
			if containsAnyKeyword(msg.Content, rule.Keywords) {
				analysis.GrowPhaseHistory = append(analysis.GrowPhaseHistory, rule.Phase)
			}
		}
	}

	if len(userMessages) > 0 {
		analysis.LastUserMessage = userMessages[len(userMessages)-1].Content
	}

	analysis.ConversationFlow = flowBucket(len(history))

	start := len(history) - recentContextSize
	if start < 0 {
		start = 0
	}
	analysis.RecentContext = history[start:]

	return analysis
}

// flowBucket is a step function of total message count with breakpoints at
// 2, 6 and 12, inclusive on the lower side.
func flowBucket(messageCount int) string {
	switch {
	case messageCount <= 2:
		return domain.FlowInitial
	case messageCount <= 6:
		return domain.FlowExploration
	case messageCount <= 12:
		return domain.FlowDeepening
	default:
		return domain.FlowActionPlanning
	}
}
