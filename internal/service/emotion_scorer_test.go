package service

import (
	"testing"

	"evolve-coach/internal/domain"
)

func TestAnalyzeEmotion_EmptyInput(t *testing.T) {
	scorer := EmotionScorer{}

	scores, dominant, confidence := scorer.AnalyzeEmotion("")
	if len(scores) != len(domain.EmotionOrder) {
		t.Fatalf("expected %d labels, got %d", len(domain.EmotionOrder), len(scores))
	}
	for _, label := range domain.EmotionOrder {
		v, ok := scores[label]
		if !ok {
			t.Fatalf("missing label %q", label)
		}
		if v < 0 {
			t.Fatalf("negative score for %q: %v", label, v)
		}
	}
	if dominant != domain.EmotionNeutral {
		t.Fatalf("expected neutral dominant, got %q", dominant)
	}
	if confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", confidence)
	}
}

func TestAnalyzeEmotion_SingleMatchStaysBelowNeutral(t *testing.T) {
	scorer := EmotionScorer{}

	// One lexicon hit adds 0.3, which does not overtake neutral's 0.5.
	scores, dominant, _ := scorer.AnalyzeEmotion("嬉しいです")
	if scores[domain.EmotionJoy] != 0.3 {
		t.Fatalf("expected joy 0.3, got %v", scores[domain.EmotionJoy])
	}
	if dominant != domain.EmotionNeutral {
		t.Fatalf("expected neutral dominant, got %q", dominant)
	}
}

func TestAnalyzeEmotion_AccumulatesAcrossTerms(t *testing.T) {
	scorer := EmotionScorer{}

	scores, dominant, confidence := scorer.AnalyzeEmotion("嬉しいし楽しいし幸せです")
	got := scores[domain.EmotionJoy]
	if got < 0.89 || got > 0.91 {
		t.Fatalf("expected joy near 0.9, got %v", got)
	}
	if dominant != domain.EmotionJoy {
		t.Fatalf("expected joy dominant, got %q", dominant)
	}
	if confidence != got {
		t.Fatalf("expected confidence equal to max score, got %v vs %v", confidence, got)
	}
}

func TestAnalyzeEmotion_TieBreaksByEnumerationOrder(t *testing.T) {
	scorer := EmotionScorer{}

	// Two joy terms and two sadness terms tie at 0.6; joy enumerates first.
	_, dominant, _ := scorer.AnalyzeEmotion("嬉しいけど楽しいのに悲しいし辛い")
	if dominant != domain.EmotionJoy {
		t.Fatalf("expected joy on tie, got %q", dominant)
	}
}

func TestAnalyzeEmotion_UnlistedLabelsStayZero(t *testing.T) {
	scorer := EmotionScorer{}

	scores, _, _ := scorer.AnalyzeEmotion("驚いた、気持ち悪い")
	if scores[domain.EmotionSurprise] != 0 || scores[domain.EmotionDisgust] != 0 {
		t.Fatalf("expected surprise/disgust to stay zero without lexicons, got %v / %v",
			scores[domain.EmotionSurprise], scores[domain.EmotionDisgust])
	}
}
