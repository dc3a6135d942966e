package service

import "evolve-coach/internal/domain"

// EmotionScorer maps free text onto the fixed emotion vector by lexicon
// lookup. Pure; no state.
type EmotionScorer struct{}

// AnalyzeEmotion scores the text against the emotion lexicon. Neutral starts
// at 0.5 and every matched lexicon term adds a fixed increment to its label,
// so a text rich in one emotion can score past 1.0. Confidence is the raw
// maximum score, not a probability.
func (EmotionScorer) AnalyzeEmotion(text string) (domain.EmotionScores, string, float64) {
	scores := domain.NewEmotionScores()

	for _, label := range domain.EmotionOrder {
		terms, ok := emotionLexicon[label]
		if !ok {
			continue
		}
		for _, term := range terms {
			if containsKeyword(text, term) {
				scores[label] += emotionIncrement
			}
		}
	}

	return scores, scores.Dominant(), scores.Max()
}
