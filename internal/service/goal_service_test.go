package service

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"evolve-coach/internal/domain"
)

func TestRuleBasedSmartGoalHealth(t *testing.T) {
	smart := ruleBasedSmartGoal("健康的な体になりたい")

	if smart.Specific != "毎日30分の運動と健康的な食事習慣" {
		t.Fatalf("unexpected specific: %q", smart.Specific)
	}
	if !strings.Contains(smart.Timebound, "21日間") {
		t.Fatalf("expected 21-day timebound, got %q", smart.Timebound)
	}
}

func TestRuleBasedSmartGoalLearning(t *testing.T) {
	smart := ruleBasedSmartGoal("英語の勉強を続ける")

	if smart.Specific != "毎日1時間の集中学習時間を確保" {
		t.Fatalf("unexpected specific: %q", smart.Specific)
	}
}

func TestRuleBasedSmartGoalCareer(t *testing.T) {
	smart := ruleBasedSmartGoal("仕事で成果を出す")

	if smart.Relevant != "キャリアアップと職場での価値向上" {
		t.Fatalf("unexpected relevant: %q", smart.Relevant)
	}
}

func TestRuleBasedSmartGoalGenericEchoesInput(t *testing.T) {
	smart := ruleBasedSmartGoal("早起きする")

	if !strings.Contains(smart.Specific, "早起きする") {
		t.Fatalf("expected raw goal in specific, got %q", smart.Specific)
	}
}

func TestBuildHabitPlanStructure(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan := buildHabitPlan("goal-1", ruleBasedSmartGoal("早起きする"), now)

	if len(plan.Week1Actions) != 3 || len(plan.Week2Actions) != 3 || len(plan.Week3Actions) != 3 {
		t.Fatalf("expected 3 actions per week, got %d/%d/%d",
			len(plan.Week1Actions), len(plan.Week2Actions), len(plan.Week3Actions))
	}

	if plan.Week1Actions[0].SequenceOrder != 1 {
		t.Fatalf("week1 starts at sequence %d", plan.Week1Actions[0].SequenceOrder)
	}
	if plan.Week2Actions[0].SequenceOrder != 8 {
		t.Fatalf("week2 starts at sequence %d", plan.Week2Actions[0].SequenceOrder)
	}
	if plan.Week3Actions[0].SequenceOrder != 15 {
		t.Fatalf("week3 starts at sequence %d", plan.Week3Actions[0].SequenceOrder)
	}

	// Week2 is hardened: +5 minutes, medium difficulty.
	if plan.Week2Actions[1].EstimatedMinutes != 20 {
		t.Fatalf("expected 20 minutes for week2 practice action, got %d", plan.Week2Actions[1].EstimatedMinutes)
	}
	if plan.Week2Actions[0].DifficultyLevel != "medium" {
		t.Fatalf("expected medium difficulty in week2, got %q", plan.Week2Actions[0].DifficultyLevel)
	}
	if plan.Week1Actions[0].DifficultyLevel != "easy" {
		t.Fatalf("expected easy difficulty in week1, got %q", plan.Week1Actions[0].DifficultyLevel)
	}

	if !strings.Contains(plan.Week1Actions[0].Description, "意識的実行期") {
		t.Fatalf("week1 description missing phase label: %q", plan.Week1Actions[0].Description)
	}

	if len(plan.DailyReminders) != 3 || len(plan.SuccessMetrics) != 3 {
		t.Fatalf("unexpected reminders/metrics counts: %d/%d", len(plan.DailyReminders), len(plan.SuccessMetrics))
	}
}

func TestBuildHabitPlanDueDatesAdvanceEveryThreeActions(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan := buildHabitPlan("goal-1", ruleBasedSmartGoal("早起きする"), now)

	for _, a := range plan.Week1Actions {
		if a.DueDate != "2025-03-02" {
			t.Fatalf("week1 action due %s, want 2025-03-02", a.DueDate)
		}
	}
	// Sequences 8..10 map to days 3..4 of the window.
	if plan.Week2Actions[0].DueDate != "2025-03-04" {
		t.Fatalf("week2 first action due %s, want 2025-03-04", plan.Week2Actions[0].DueDate)
	}
	if plan.Week3Actions[2].DueDate != "2025-03-07" {
		t.Fatalf("week3 last action due %s, want 2025-03-07", plan.Week3Actions[2].DueDate)
	}
}

func TestMintAchievementDeterministicWithSeededRand(t *testing.T) {
	svc := &GoalService{rng: rand.New(rand.NewSource(1))}
	action := domain.ActionItem{Description: "小さな行動の実践"}
	goal := domain.Goal{RawGoal: "早起きする"}

	first := svc.mintAchievement("user-1", action, goal)

	if first.Points < 10 || first.Points > 25 {
		t.Fatalf("points out of template range: %d", first.Points)
	}
	if first.Category != "daily" {
		t.Fatalf("expected daily category, got %q", first.Category)
	}
	if first.ActionDesc != action.Description || first.RawGoal != goal.RawGoal {
		t.Fatalf("achievement does not echo action/goal: %+v", first)
	}

	svc2 := &GoalService{rng: rand.New(rand.NewSource(1))}
	second := svc2.mintAchievement("user-1", action, goal)
	if first.Title != second.Title || first.Points != second.Points {
		t.Fatalf("same seed produced different template: %q vs %q", first.Title, second.Title)
	}
}
