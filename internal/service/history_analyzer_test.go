package service

import (
	"testing"

	"evolve-coach/internal/domain"
)

func aiMsg(content string) domain.Message {
	return domain.Message{Speaker: domain.SpeakerAI, Content: content}
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	analysis := NewHistoryAnalyzer().Analyze(nil)

	if analysis.MessageCount != 0 || analysis.UserMessageCount != 0 {
		t.Fatalf("expected zero counts, got %+v", analysis)
	}
	if analysis.ConversationFlow != domain.FlowInitial {
		t.Fatalf("expected initial flow, got %q", analysis.ConversationFlow)
	}
	if analysis.LastUserMessage != "" {
		t.Fatalf("expected no last user message, got %q", analysis.LastUserMessage)
	}
}

func TestAnalyze_FlowBuckets(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{1, domain.FlowInitial},
		{2, domain.FlowInitial},
		{3, domain.FlowExploration},
		{6, domain.FlowExploration},
		{7, domain.FlowDeepening},
		{12, domain.FlowDeepening},
		{13, domain.FlowActionPlanning},
	}

	analyzer := NewHistoryAnalyzer()
	for _, tc := range cases {
		history := make([]domain.Message, tc.count)
		for i := range history {
			history[i] = userMsg("ありがとう")
		}
		got := analyzer.Analyze(history).ConversationFlow
		if got != tc.want {
			t.Fatalf("count %d: expected %q, got %q", tc.count, tc.want, got)
		}
	}
}

func TestAnalyze_EmotionsPerUserMessage(t *testing.T) {
	history := []domain.Message{
		userMsg("嬉しいし楽しい"),
		aiMsg("それは何よりです"),
		userMsg("でも悲しいこともあって辛い"),
	}

	analysis := NewHistoryAnalyzer().Analyze(history)
	if analysis.UserMessageCount != 2 {
		t.Fatalf("expected 2 user messages, got %d", analysis.UserMessageCount)
	}
	if len(analysis.Emotions) != 2 {
		t.Fatalf("expected one emotion entry per user message, got %d", len(analysis.Emotions))
	}
	if analysis.Emotions[0].Dominant() != domain.EmotionJoy {
		t.Fatalf("expected first entry joy, got %q", analysis.Emotions[0].Dominant())
	}
	if analysis.Emotions[1].Dominant() != domain.EmotionSadness {
		t.Fatalf("expected second entry sadness, got %q", analysis.Emotions[1].Dominant())
	}
	if analysis.LastUserMessage != "でも悲しいこともあって辛い" {
		t.Fatalf("unexpected last user message %q", analysis.LastUserMessage)
	}
}

func TestAnalyze_GrowPhaseHistorySkipsAIMessages(t *testing.T) {
	history := []domain.Message{
		userMsg("目標を決めたいです"),
		aiMsg("目標について聞かせてください"), // AI mention must not tag a phase
		userMsg("現状はあまり進んでいません"),
	}

	analysis := NewHistoryAnalyzer().Analyze(history)
	if len(analysis.GrowPhaseHistory) != 2 {
		t.Fatalf("expected 2 phase tags, got %v", analysis.GrowPhaseHistory)
	}
	if analysis.GrowPhaseHistory[0] != domain.PhaseGoal || analysis.GrowPhaseHistory[1] != domain.PhaseReality {
		t.Fatalf("unexpected phase history %v", analysis.GrowPhaseHistory)
	}
}

func TestAnalyze_OneMessageCanTagMultiplePhases(t *testing.T) {
	analysis := NewHistoryAnalyzer().Analyze([]domain.Message{
		userMsg("目標のために、今できる方法を知りたい"),
	})

	if len(analysis.GrowPhaseHistory) != 3 {
		t.Fatalf("expected 3 phase tags from one message, got %v", analysis.GrowPhaseHistory)
	}
}

func TestAnalyze_RecentContextKeepsLastSix(t *testing.T) {
	var history []domain.Message
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			history = append(history, userMsg("ありがとう"))
		} else {
			history = append(history, aiMsg("どういたしまして"))
		}
	}

	analysis := NewHistoryAnalyzer().Analyze(history)
	if len(analysis.RecentContext) != 6 {
		t.Fatalf("expected 6 recent messages, got %d", len(analysis.RecentContext))
	}
}
