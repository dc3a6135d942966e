package service

import "evolve-coach/internal/domain"

// GrowSelector picks the GROW phase for the current turn.
type GrowSelector struct{}

// SelectPhase matches the latest input against the GROW keyword sets. With no
// match it advances the cycle from the last phase the history recorded
// (Goal→Reality→Options→Will→Goal); with no history at all it opens on Goal.
func (GrowSelector) SelectPhase(input string, analysis domain.ConversationAnalysis) domain.GrowPhase {
	for _, rule := range growKeywords {
		if containsAnyKeyword(input, rule.Keywords) {
			return rule.Phase
		}
	}

	if n := len(analysis.GrowPhaseHistory); n > 0 {
		return analysis.GrowPhaseHistory[n-1].Next()
	}

	return domain.PhaseGoal
}
