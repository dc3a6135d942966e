package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"evolve-coach/internal/domain"
)

type stubGoalRepo struct {
	total, completed, active int
}

func (s *stubGoalRepo) Create(_ context.Context, _ domain.Goal) error { return nil }

func (s *stubGoalRepo) GetByID(_ context.Context, _ string) (domain.Goal, error) {
	return domain.Goal{}, nil
}

func (s *stubGoalRepo) ListActiveByUser(_ context.Context, _ string) ([]domain.Goal, error) {
	return nil, nil
}

func (s *stubGoalRepo) Update(_ context.Context, _ domain.Goal) error { return nil }

func (s *stubGoalRepo) CountByStatus(_ context.Context, _ string) (total, completed, active int, err error) {
	return s.total, s.completed, s.active, nil
}

type stubProgressRepo struct {
	days      []string
	completed int
}

func (s *stubProgressRepo) Create(_ context.Context, _ domain.ProgressRecord) error { return nil }

func (s *stubProgressRepo) ListSince(_ context.Context, _ string, _ time.Time) ([]domain.ProgressRecord, error) {
	return nil, nil
}

func (s *stubProgressRepo) ListCompletedDays(_ context.Context, _ string) ([]string, error) {
	return s.days, nil
}

func (s *stubProgressRepo) CountCompleted(_ context.Context, _ string) (int, error) {
	return s.completed, nil
}

func (s *stubProgressRepo) EmotionTrend(_ context.Context, _ string, _ int) ([]domain.EmotionTrendPoint, error) {
	return nil, nil
}

func (s *stubProgressRepo) CategoryProgress(_ context.Context, _ string, _ time.Time) ([]domain.CategoryProgress, error) {
	return nil, nil
}

func (s *stubProgressRepo) WeeklyStats(_ context.Context, _ string, _ time.Time) (domain.WeeklyStats, error) {
	return domain.WeeklyStats{}, nil
}

func (s *stubProgressRepo) FirstCompletionDates(_ context.Context, _ string) (map[string]time.Time, error) {
	return nil, nil
}

func TestDashboardOverviewPointsFromCompletedRecords(t *testing.T) {
	svc := NewDashboardService(
		zap.NewNop(),
		&stubGoalRepo{total: 4, completed: 1, active: 3},
		nil,
		&stubProgressRepo{days: []string{"2025-03-10", "2025-03-09"}, completed: 7},
		nil,
		newFakeSessionRepo(),
		nil,
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	summary, err := svc.overview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if summary.TotalPoints != 70 {
		t.Fatalf("expected 10 points per completed record (70), got %d", summary.TotalPoints)
	}
	if summary.CompletionRate != 0.25 {
		t.Fatalf("expected completion rate 0.25, got %v", summary.CompletionRate)
	}
	if summary.CurrentStreak != 2 {
		t.Fatalf("expected streak 2, got %d", summary.CurrentStreak)
	}
}

func TestCurrentStreakCountsBackFromToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	days := []string{"2025-03-10", "2025-03-09", "2025-03-08", "2025-03-05"}

	if got := currentStreak(days, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestCurrentStreakZeroWhenTodayMissing(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	days := []string{"2025-03-09", "2025-03-08"}

	if got := currentStreak(days, now); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestCurrentStreakEmpty(t *testing.T) {
	if got := currentStreak(nil, time.Now()); got != 0 {
		t.Fatalf("expected streak 0 for no days, got %d", got)
	}
}

func TestTrendLabelThresholds(t *testing.T) {
	cases := []struct {
		avg  float64
		want string
	}{
		{8, "positive"},
		{7.1, "positive"},
		{7, "neutral"},
		{5.5, "neutral"},
		{5, "negative"},
		{2, "negative"},
	}
	for _, tc := range cases {
		if got := trendLabel(tc.avg); got != tc.want {
			t.Fatalf("trendLabel(%v) = %q, want %q", tc.avg, got, tc.want)
		}
	}
}

func TestAssessBehaviorStageNoRecords(t *testing.T) {
	assessment := assessBehaviorStage(nil)

	if assessment.Stage != domain.StagePrecontemplation {
		t.Fatalf("expected precontemplation, got %s", assessment.Stage)
	}
	if assessment.ConfidenceLevel != 3 || assessment.MotivationLevel != 3 {
		t.Fatalf("unexpected default levels: %d/%d", assessment.ConfidenceLevel, assessment.MotivationLevel)
	}
}

func progressRecords(completed, total, days int, emotional int) []domain.ProgressRecord {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := make([]domain.ProgressRecord, 0, total)
	for i := 0; i < total; i++ {
		records = append(records, domain.ProgressRecord{
			Completed:      i < completed,
			EmotionalState: emotional,
			RecordedAt:     base.AddDate(0, 0, i%days),
		})
	}
	return records
}

func TestAssessBehaviorStageLowCompletionIsContemplation(t *testing.T) {
	records := progressRecords(1, 10, 5, 7)

	assessment := assessBehaviorStage(records)

	if assessment.Stage != domain.StageContemplation {
		t.Fatalf("expected contemplation, got %s", assessment.Stage)
	}
}

func TestAssessBehaviorStageFewDaysIsPreparation(t *testing.T) {
	// High completion but only 2 distinct days.
	records := progressRecords(10, 10, 2, 7)

	assessment := assessBehaviorStage(records)

	if assessment.Stage != domain.StagePreparation {
		t.Fatalf("expected preparation, got %s", assessment.Stage)
	}
}

func TestAssessBehaviorStageLowMoodIsAction(t *testing.T) {
	records := progressRecords(10, 10, 6, 5)

	assessment := assessBehaviorStage(records)

	if assessment.Stage != domain.StageAction {
		t.Fatalf("expected action, got %s", assessment.Stage)
	}
}

func TestAssessBehaviorStageMaintenance(t *testing.T) {
	records := progressRecords(10, 10, 6, 8)

	assessment := assessBehaviorStage(records)

	if assessment.Stage != domain.StageMaintenance {
		t.Fatalf("expected maintenance, got %s", assessment.Stage)
	}
	if assessment.MotivationLevel != 10 {
		t.Fatalf("expected motivation 10 for full completion, got %d", assessment.MotivationLevel)
	}
}

func TestHabitPhaseDescription(t *testing.T) {
	if got := habitPhaseDescription(0); got != "習慣形成の開始期（1-7日目）" {
		t.Fatalf("unexpected initiation phase: %q", got)
	}
	if got := habitPhaseDescription(7); got != "習慣学習期（8-14日目）" {
		t.Fatalf("unexpected learning phase: %q", got)
	}
	if got := habitPhaseDescription(14); got != "習慣安定期（15-21日目）" {
		t.Fatalf("unexpected stabilization phase: %q", got)
	}
}

func TestImprovementSuggestionsAllGood(t *testing.T) {
	stats := domain.WeeklyStats{ActiveDays: 6, AvgEmotionalState: 7, TotalActions: 12}

	suggestions := improvementSuggestions(stats)

	if len(suggestions) != 1 {
		t.Fatalf("expected single praise suggestion, got %v", suggestions)
	}
}

func TestImprovementSuggestionsAllLagging(t *testing.T) {
	stats := domain.WeeklyStats{ActiveDays: 2, AvgEmotionalState: 4, TotalActions: 3}

	suggestions := improvementSuggestions(stats)

	if len(suggestions) != 3 {
		t.Fatalf("expected three suggestions, got %d", len(suggestions))
	}
}
