package service

import (
	"testing"

	"evolve-coach/internal/domain"
)

func TestSelectPhase_KeywordCascade(t *testing.T) {
	cases := []struct {
		input string
		want  domain.GrowPhase
	}{
		{"目標を決めたい", domain.PhaseGoal},
		{"ゴールが見えない", domain.PhaseGoal},
		{"現状を整理したい", domain.PhaseReality},
		{"方法がわからない", domain.PhaseOptions},
		{"どうすればいいですか", domain.PhaseOptions},
		{"明日からやります", domain.PhaseWill},
	}

	selector := GrowSelector{}
	for _, tc := range cases {
		got := selector.SelectPhase(tc.input, domain.ConversationAnalysis{})
		if got != tc.want {
			t.Fatalf("input %q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestSelectPhase_SuccessorCycle(t *testing.T) {
	selector := GrowSelector{}
	cycle := map[domain.GrowPhase]domain.GrowPhase{
		domain.PhaseGoal:    domain.PhaseReality,
		domain.PhaseReality: domain.PhaseOptions,
		domain.PhaseOptions: domain.PhaseWill,
		domain.PhaseWill:    domain.PhaseGoal,
	}

	for last, want := range cycle {
		analysis := domain.ConversationAnalysis{
			GrowPhaseHistory: []domain.GrowPhase{domain.PhaseGoal, last},
		}
		got := selector.SelectPhase("ありがとう", analysis)
		if got != want {
			t.Fatalf("after %q: expected %q, got %q", last, want, got)
		}
	}
}

func TestSelectPhase_CycleLengthFour(t *testing.T) {
	phase := domain.PhaseGoal
	for i := 0; i < 4; i++ {
		phase = phase.Next()
	}
	if phase != domain.PhaseGoal {
		t.Fatalf("expected cycle of length 4, landed on %q", phase)
	}
}

func TestSelectPhase_NoHistoryDefaultsToGoal(t *testing.T) {
	got := GrowSelector{}.SelectPhase("ありがとう", domain.ConversationAnalysis{})
	if got != domain.PhaseGoal {
		t.Fatalf("expected goal default, got %q", got)
	}
}
