package service

import "evolve-coach/internal/domain"

// StageClassifier maps the latest user utterance onto a behavior-change
// stage. Total: every input yields a stage.
type StageClassifier struct{}

// AssessStage runs the ordered keyword cascade over the latest input only;
// the first matching rule wins and unmatched input defaults to contemplation.
func (StageClassifier) AssessStage(input string) domain.BehaviorStage {
	for _, rule := range stageKeywords {
		if containsAnyKeyword(input, rule.Keywords) {
			return rule.Stage
		}
	}
	return domain.StageContemplation
}

// AssessStageWithHistory applies the keyword cascade first. Only when no
// keyword matched does it consult the session: a dominant joy in the latest
// recorded emotion with more than five messages reads as momentum and
// upgrades the default to action. The override is a tertiary fallback, never
// combined with a keyword hit.
func (c StageClassifier) AssessStageWithHistory(input string, analysis domain.ConversationAnalysis) domain.BehaviorStage {
	for _, rule := range stageKeywords {
		if containsAnyKeyword(input, rule.Keywords) {
			return rule.Stage
		}
	}

	if last := analysis.LastEmotion(); last != nil {
		if last.Dominant() == domain.EmotionJoy && analysis.MessageCount > 5 {
			return domain.StageAction
		}
	}

	return domain.StageContemplation
}
