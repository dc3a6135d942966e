package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/repository"
)

// Each completed progress record is worth a flat 10 points.
const pointsPerCompletion = 10

// DashboardService aggregates goals, progress and emotion records into the
// overview and weekly report views. All thresholds follow the habit window:
// derived stages and habit phases assume the 21-day plan.
type DashboardService struct {
	logger       *zap.Logger
	goals        repository.GoalRepository
	actions      repository.ActionRepository
	progress     repository.ProgressRepository
	achievements repository.AchievementRepository
	sessions     repository.SessionRepository
	rng          *rand.Rand
	now          func() time.Time
}

func NewDashboardService(
	logger *zap.Logger,
	goals repository.GoalRepository,
	actions repository.ActionRepository,
	progress repository.ProgressRepository,
	achievements repository.AchievementRepository,
	sessions repository.SessionRepository,
	rng *rand.Rand,
) *DashboardService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DashboardService{
		logger:       logger,
		goals:        goals,
		actions:      actions,
		progress:     progress,
		achievements: achievements,
		sessions:     sessions,
		rng:          rng,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, userID string) (domain.DashboardData, error) {
	overview, err := s.overview(ctx, userID)
	if err != nil {
		return domain.DashboardData{}, err
	}

	todayActions, err := s.actions.ListDueByUser(ctx, userID, 3)
	if err != nil {
		return domain.DashboardData{}, fmt.Errorf("today actions: %w", err)
	}
	activeGoals, err := s.goals.ListActiveByUser(ctx, userID)
	if err != nil {
		return domain.DashboardData{}, fmt.Errorf("active goals: %w", err)
	}
	recentAchievements, err := s.achievements.ListRecentByUser(ctx, userID, 5)
	if err != nil {
		return domain.DashboardData{}, fmt.Errorf("recent achievements: %w", err)
	}

	trend, err := s.emotionalTrend(ctx, userID)
	if err != nil {
		return domain.DashboardData{}, err
	}

	weekAgo := s.now().AddDate(0, 0, -7)
	recent, err := s.progress.ListSince(ctx, userID, weekAgo)
	if err != nil {
		return domain.DashboardData{}, fmt.Errorf("recent progress: %w", err)
	}

	habits, err := s.habitProgress(ctx, userID, activeGoals)
	if err != nil {
		return domain.DashboardData{}, err
	}

	return domain.DashboardData{
		Overview:            overview,
		TodayActions:        todayActions,
		ActiveGoals:         activeGoals,
		RecentAchievements:  recentAchievements,
		EmotionalTrend:      trend,
		BehaviorStage:       assessBehaviorStage(recent),
		HabitProgress:       habits,
		MotivationalMessage: s.motivationalMessage(overview.CurrentStreak, overview.TotalPoints),
	}, nil
}

func (s *DashboardService) overview(ctx context.Context, userID string) (domain.ProgressSummary, error) {
	total, completed, active, err := s.goals.CountByStatus(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("goal counts: %w", err)
	}
	days, err := s.progress.ListCompletedDays(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("completed days: %w", err)
	}
	completedRecords, err := s.progress.CountCompleted(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("completed records: %w", err)
	}
	sessions, err := s.sessions.CountByUser(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("session count: %w", err)
	}

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total)
	}
	return domain.ProgressSummary{
		TotalGoals:     total,
		CompletedGoals: completed,
		ActiveGoals:    active,
		CompletionRate: rate,
		CurrentStreak:  currentStreak(days, s.now()),
		TotalSessions:  sessions,
		TotalPoints:    completedRecords * pointsPerCompletion,
	}, nil
}

// currentStreak counts back from today over the distinct completed days,
// stopping at the first gap. Days must be sorted newest first.
func currentStreak(days []string, now time.Time) int {
	streak := 0
	cursor := now
	for _, day := range days {
		if day != cursor.Format("2006-01-02") {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func (s *DashboardService) emotionalTrend(ctx context.Context, userID string) ([]domain.EmotionTrendPoint, error) {
	points, err := s.progress.EmotionTrend(ctx, userID, 7)
	if err != nil {
		return nil, fmt.Errorf("emotion trend: %w", err)
	}
	for i := range points {
		points[i].DominantEmotion = trendLabel(points[i].AverageScore)
	}
	return points, nil
}

func trendLabel(avg float64) string {
	switch {
	case avg > 7:
		return "positive"
	case avg > 5:
		return "neutral"
	default:
		return "negative"
	}
}

// assessBehaviorStage derives the change stage from the last week of progress
// records, independently of the conversational classifier.
func assessBehaviorStage(recent []domain.ProgressRecord) domain.BehaviorAssessment {
	if len(recent) == 0 {
		return domain.BehaviorAssessment{
			Stage:            domain.StagePrecontemplation,
			StageDescription: "まだ行動変容の準備段階です",
			NextStageTips:    []string{"小さな目標から始めてみましょう", "変化の必要性を認識することから始めます"},
			ConfidenceLevel:  3,
			MotivationLevel:  3,
			Barriers:         []string{"時間不足", "習慣化の難しさ"},
			Facilitators:     []string{"小さな目標設定", "サポートシステム"},
		}
	}

	completedCount := 0
	emotionalSum := 0
	daySet := make(map[string]struct{})
	for _, r := range recent {
		if r.Completed {
			completedCount++
		}
		emotionalSum += r.EmotionalState
		daySet[r.RecordedAt.Format("2006-01-02")] = struct{}{}
	}
	completionRate := float64(completedCount) / float64(len(recent))
	avgEmotional := float64(emotionalSum) / float64(len(recent))
	consistentDays := len(daySet)

	var (
		stage       domain.BehaviorStage
		description string
		tips        []string
	)
	switch {
	case completionRate < 0.3:
		stage = domain.StageContemplation
		description = "変化を考え始めている段階です"
		tips = []string{"具体的な行動計画を立てましょう", "小さな成功体験を積み重ねましょう"}
	case completionRate < 0.6 || consistentDays < 3:
		stage = domain.StagePreparation
		description = "行動の準備が整ってきています"
		tips = []string{"環境を整えて行動しやすくしましょう", "支援システムを活用しましょう"}
	case consistentDays < 5 || avgEmotional < 6:
		stage = domain.StageAction
		description = "積極的に行動を起こしている段階です"
		tips = []string{"継続のための仕組みを作りましょう", "困難な時の対処法を準備しましょう"}
	default:
		stage = domain.StageMaintenance
		description = "新しい習慣が定着してきています"
		tips = []string{"長期的な維持戦略を考えましょう", "新しい挑戦を追加してみましょう"}
	}

	barriers := []string{"モチベーション維持"}
	if completionRate < 0.5 {
		barriers = []string{"継続の困難", "時間管理"}
	}

	return domain.BehaviorAssessment{
		Stage:            stage,
		StageDescription: description,
		NextStageTips:    tips,
		ConfidenceLevel:  int(math.Round(avgEmotional)),
		MotivationLevel:  int(math.Round(completionRate * 10)),
		Barriers:         barriers,
		Facilitators:     []string{"習慣化システム", "サポートコミュニティ", "進捗の可視化"},
	}
}

func (s *DashboardService) habitProgress(ctx context.Context, userID string, activeGoals []domain.Goal) ([]domain.HabitProgress, error) {
	firstDates, err := s.progress.FirstCompletionDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("first completions: %w", err)
	}

	now := s.now()
	habits := make([]domain.HabitProgress, 0, len(activeGoals))
	for _, goal := range activeGoals {
		daysSinceStart := 0
		if first, ok := firstDates[goal.ID]; ok {
			daysSinceStart = int(now.Sub(first).Hours() / 24)
		}
		completionRate := goal.CompletionRate * 100

		habits = append(habits, domain.HabitProgress{
			GoalID:           goal.ID,
			HabitName:        goal.RawGoal,
			CurrentStreak:    int(completionRate / 10),
			TargetDays:       habitWindowDays,
			CompletionRate:   completionRate,
			DaysSinceStart:   daysSinceStart,
			HabitStrength:    math.Min(100, float64(daysSinceStart)*4.76+completionRate*0.5),
			PhaseDescription: habitPhaseDescription(daysSinceStart),
		})
	}
	return habits, nil
}

func habitPhaseDescription(daysSinceStart int) string {
	switch {
	case daysSinceStart < 7:
		return "習慣形成の開始期（1-7日目）"
	case daysSinceStart < 14:
		return "習慣学習期（8-14日目）"
	default:
		return "習慣安定期（15-21日目）"
	}
}

func (s *DashboardService) motivationalMessage(streak, totalPoints int) string {
	if streak > 7 {
		return fmt.Sprintf("🎉 %d日連続達成！習慣化への道のりを着実に歩んでいます！", streak)
	}
	if totalPoints > 100 {
		return fmt.Sprintf("⭐ %dポイント達成！継続的な努力が素晴らしい結果を生んでいます！", totalPoints)
	}
	messages := []string{
		fmt.Sprintf("%d日連続で頑張っています！この調子で続けましょう！", streak),
		fmt.Sprintf("これまでに%dポイント獲得しました！素晴らしい成果です！", totalPoints),
		"小さな一歩の積み重ねが大きな変化を生み出します",
		"今日も新しい自分に向かって一歩前進しましょう",
		"継続は力なり。あなたの努力は必ず実を結びます",
	}
	return messages[s.rng.Intn(len(messages))]
}

func (s *DashboardService) WeeklyReport(ctx context.Context, userID string) (domain.WeeklyReport, error) {
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)

	stats, err := s.progress.WeeklyStats(ctx, userID, weekAgo)
	if err != nil {
		return domain.WeeklyReport{}, fmt.Errorf("weekly stats: %w", err)
	}
	_, _, active, err := s.goals.CountByStatus(ctx, userID)
	if err != nil {
		return domain.WeeklyReport{}, fmt.Errorf("goal counts: %w", err)
	}
	stats.ActiveGoals = active

	categories, err := s.progress.CategoryProgress(ctx, userID, weekAgo)
	if err != nil {
		return domain.WeeklyReport{}, fmt.Errorf("category progress: %w", err)
	}

	return domain.WeeklyReport{
		Period:           fmt.Sprintf("%s 〜 %s", weekAgo.Format("2006-01-02"), now.Format("2006-01-02")),
		Stats:            stats,
		CategoryProgress: categories,
		Improvements:     improvementSuggestions(stats),
		NextWeekFocus: []string{
			"最も重要な目標に集中する",
			"新しい習慣を1つ追加する",
			"感情状態の記録を継続する",
			"週末に振り返りの時間を作る",
		},
	}, nil
}

func improvementSuggestions(stats domain.WeeklyStats) []string {
	var suggestions []string
	if stats.ActiveDays < 5 {
		suggestions = append(suggestions, "週5日以上の活動を目指しましょう。小さな行動でも継続が重要です。")
	}
	if stats.AvgEmotionalState < 6 {
		suggestions = append(suggestions, "感情状態の改善に注目しましょう。楽しめる活動を取り入れてみてください。")
	}
	if stats.TotalActions < 10 {
		suggestions = append(suggestions, "より多くの小さなアクションを設定して、成功体験を増やしましょう。")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "素晴らしい進捗です！この調子で新しい挑戦を追加してみましょう。")
	}
	return suggestions
}
