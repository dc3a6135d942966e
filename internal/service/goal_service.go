package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/llm"
	"evolve-coach/internal/repository"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrGoalForbidden  = errors.New("goal belongs to another user")
	ErrActionNotFound = errors.New("action item not found")
	ErrEmptyGoal      = errors.New("empty goal")
)

const habitWindowDays = 21

// GoalService turns raw goals into SMART goals with a 21-day habit plan, and
// rewards completed actions with micro achievements.
type GoalService struct {
	logger       *zap.Logger
	goals        repository.GoalRepository
	actions      repository.ActionRepository
	progress     repository.ProgressRepository
	achievements repository.AchievementRepository
	smartModel   llm.Client
	rng          *rand.Rand
}

func NewGoalService(
	logger *zap.Logger,
	goals repository.GoalRepository,
	actions repository.ActionRepository,
	progress repository.ProgressRepository,
	achievements repository.AchievementRepository,
	smartModel llm.Client,
	rng *rand.Rand,
) *GoalService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GoalService{
		logger:       logger,
		goals:        goals,
		actions:      actions,
		progress:     progress,
		achievements: achievements,
		smartModel:   smartModel,
		rng:          rng,
	}
}

type CreateGoalInput struct {
	RawGoal  string
	Category string
	Priority int
}

type CreatedGoal struct {
	Goal       domain.Goal               `json:"goal"`
	ActionPlan []domain.ActionItem       `json:"action_plan"`
	HabitPlan  domain.HabitFormationPlan `json:"habit_plan"`
}

func (s *GoalService) CreateGoal(ctx context.Context, userID string, input CreateGoalInput) (CreatedGoal, error) {
	rawGoal := strings.TrimSpace(input.RawGoal)
	if rawGoal == "" {
		return CreatedGoal{}, ErrEmptyGoal
	}
	category := input.Category
	if category == "" {
		category = "general"
	}
	priority := input.Priority
	if priority < 1 || priority > 5 {
		priority = 3
	}

	smart := s.convertToSmart(ctx, rawGoal)

	now := time.Now().UTC()
	goal := domain.Goal{
		ID:         uuid.NewString(),
		UserID:     userID,
		RawGoal:    rawGoal,
		Smart:      smart,
		Category:   category,
		Priority:   priority,
		Status:     domain.GoalStatusActive,
		TargetDate: now.AddDate(0, 0, habitWindowDays).Format("2006-01-02"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return CreatedGoal{}, fmt.Errorf("create goal: %w", err)
	}

	plan := buildHabitPlan(goal.ID, smart, now)
	all := make([]domain.ActionItem, 0, len(plan.Week1Actions)+len(plan.Week2Actions)+len(plan.Week3Actions))
	all = append(all, plan.Week1Actions...)
	all = append(all, plan.Week2Actions...)
	all = append(all, plan.Week3Actions...)
	if err := s.actions.CreateBatch(ctx, all); err != nil {
		return CreatedGoal{}, fmt.Errorf("create action plan: %w", err)
	}

	s.logger.Info("goal created",
		zap.String("goal_id", goal.ID),
		zap.String("user_id", userID),
		zap.String("category", category),
	)
	return CreatedGoal{Goal: goal, ActionPlan: all, HabitPlan: plan}, nil
}

func (s *GoalService) ListActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goals.ListActiveByUser(ctx, userID)
}

func (s *GoalService) GetGoal(ctx context.Context, goalID, userID string) (domain.Goal, []domain.ActionItem, error) {
	goal, err := s.loadOwnedGoal(ctx, goalID, userID)
	if err != nil {
		return domain.Goal{}, nil, err
	}
	actions, err := s.actions.ListByGoal(ctx, goal.ID)
	if err != nil {
		return domain.Goal{}, nil, fmt.Errorf("load actions: %w", err)
	}
	return goal, actions, nil
}

type UpdateGoalInput struct {
	RawGoal    string
	Category   string
	Priority   int
	Status     string
	TargetDate string
}

func (s *GoalService) UpdateGoal(ctx context.Context, goalID, userID string, input UpdateGoalInput) (domain.Goal, error) {
	goal, err := s.loadOwnedGoal(ctx, goalID, userID)
	if err != nil {
		return domain.Goal{}, err
	}
	goal.RawGoal = strings.TrimSpace(input.RawGoal)
	goal.Category = input.Category
	goal.Priority = input.Priority
	goal.Status = input.Status
	goal.TargetDate = input.TargetDate
	if err := s.goals.Update(ctx, goal); err != nil {
		return domain.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	return s.goals.GetByID(ctx, goalID)
}

// TodayActions returns up to five pending actions due today or earlier.
func (s *GoalService) TodayActions(ctx context.Context, userID string) ([]domain.ActionItem, error) {
	return s.actions.ListDueByUser(ctx, userID, 5)
}

type CompletedAction struct {
	Action      domain.ActionItem       `json:"action"`
	Achievement domain.MicroAchievement `json:"achievement"`
	Message     string                  `json:"message"`
}

// CompleteAction marks the action done, records progress and mints a random
// micro achievement.
func (s *GoalService) CompleteAction(ctx context.Context, actionID, userID string, reflection string, emotionalState int) (CompletedAction, error) {
	action, err := s.actions.GetByID(ctx, actionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CompletedAction{}, ErrActionNotFound
		}
		return CompletedAction{}, err
	}
	goal, err := s.loadOwnedGoal(ctx, action.GoalID, userID)
	if err != nil {
		return CompletedAction{}, err
	}

	if err := s.actions.SetStatus(ctx, action.ID, domain.ActionStatusCompleted); err != nil {
		return CompletedAction{}, fmt.Errorf("complete action: %w", err)
	}
	action.Status = domain.ActionStatusCompleted

	if emotionalState < 1 || emotionalState > 10 {
		emotionalState = 7
	}
	now := time.Now().UTC()
	record := domain.ProgressRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		GoalID:         goal.ID,
		ActionItemID:   action.ID,
		Completed:      true,
		Reflection:     strings.TrimSpace(reflection),
		EmotionalState: emotionalState,
		RecordedAt:     now,
	}
	if err := s.progress.Create(ctx, record); err != nil {
		return CompletedAction{}, fmt.Errorf("record progress: %w", err)
	}

	achievement := s.mintAchievement(userID, action, goal)
	if err := s.achievements.Create(ctx, achievement); err != nil {
		s.logger.Warn("achievement store failed", zap.Error(err))
	}

	return CompletedAction{
		Action:      action,
		Achievement: achievement,
		Message:     "アクションが完了しました！素晴らしい進歩です！",
	}, nil
}

func (s *GoalService) loadOwnedGoal(ctx context.Context, goalID, userID string) (domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Goal{}, ErrGoalNotFound
		}
		return domain.Goal{}, err
	}
	if goal.UserID != userID {
		return domain.Goal{}, ErrGoalForbidden
	}
	return goal, nil
}

// convertToSmart asks the model for a SMART breakdown and falls back to the
// keyword rules when the model is unavailable or returns garbage.
func (s *GoalService) convertToSmart(ctx context.Context, rawGoal string) domain.SmartGoal {
	if s.smartModel != nil {
		prompt := smartConversionPrompt + "\n\n目標: " + rawGoal
		raw, err := s.smartModel.Generate(ctx, prompt)
		if err == nil {
			var smart domain.SmartGoal
			if jsonErr := json.Unmarshal([]byte(firstJSONObject(raw)), &smart); jsonErr == nil && smart.Specific != "" {
				return smart
			}
		} else {
			s.logger.Warn("smart conversion model failed, using rules", zap.Error(err))
		}
	}
	return ruleBasedSmartGoal(rawGoal)
}

const smartConversionPrompt = `以下の目標をSMART形式（Specific, Measurable, Achievable, Relevant, Time-bound）に変換してください。
JSON形式で返してください：
{
  "specific": "具体的な目標",
  "measurable": "測定可能な指標",
  "achievable": "達成可能性の評価",
  "relevant": "関連性と重要性",
  "timebound": "期限設定"
}`

func ruleBasedSmartGoal(rawGoal string) domain.SmartGoal {
	switch {
	case strings.Contains(rawGoal, "健康") || strings.Contains(rawGoal, "運動"):
		return domain.SmartGoal{
			Specific:   "毎日30分の運動と健康的な食事習慣",
			Measurable: "週5日以上の運動実施、体重・体脂肪率の記録",
			Achievable: "段階的に運動強度を上げ、無理のない範囲で継続",
			Relevant:   "長期的な健康維持と生活の質向上",
			Timebound:  "21日間で基本習慣を確立",
		}
	case strings.Contains(rawGoal, "学習") || strings.Contains(rawGoal, "勉強"):
		return domain.SmartGoal{
			Specific:   "毎日1時間の集中学習時間を確保",
			Measurable: "学習時間の記録、理解度テストの実施",
			Achievable: "現在のスケジュールに合わせた現実的な学習計画",
			Relevant:   "スキルアップとキャリア発展",
			Timebound:  "21日間で学習習慣を定着",
		}
	case strings.Contains(rawGoal, "仕事") || strings.Contains(rawGoal, "キャリア"):
		return domain.SmartGoal{
			Specific:   "業務効率化と新しいスキルの習得",
			Measurable: "タスク完了率、新スキルの習得進捗",
			Achievable: "現在の業務量を考慮した実現可能な目標設定",
			Relevant:   "キャリアアップと職場での価値向上",
			Timebound:  "21日間で新しい働き方を確立",
		}
	default:
		return domain.SmartGoal{
			Specific:   rawGoal + "を具体的な行動に分解",
			Measurable: "日々の進捗を数値で測定",
			Achievable: "現実的で実行可能な計画",
			Relevant:   "個人の価値観と長期目標に合致",
			Timebound:  "21日間で習慣化を目指す",
		}
	}
}

type habitBaseAction struct {
	description string
	minutes     int
	difficulty  string
}

var habitBaseActions = []habitBaseAction{
	{description: "目標の確認と意識づけ", minutes: 5, difficulty: "easy"},
	{description: "小さな行動の実践", minutes: 15, difficulty: "easy"},
	{description: "進捗の記録", minutes: 5, difficulty: "easy"},
}

// buildHabitPlan repeats the three base actions across three weekly phases.
// Due dates advance one day per trio so the plan unfolds gradually.
func buildHabitPlan(goalID string, smart domain.SmartGoal, now time.Time) domain.HabitFormationPlan {
	week := func(prefix, phase string, seqOffset, minuteBonus int, difficulty string) []domain.ActionItem {
		items := make([]domain.ActionItem, 0, len(habitBaseActions))
		for i, base := range habitBaseActions {
			diff := base.difficulty
			if difficulty != "" {
				diff = difficulty
			}
			seq := seqOffset + i
			items = append(items, domain.ActionItem{
				ID:               uuid.NewString(),
				GoalID:           goalID,
				Description:      fmt.Sprintf("%s: %s（%s）", prefix, base.description, phase),
				SequenceOrder:    seq,
				EstimatedMinutes: base.minutes + minuteBonus,
				DifficultyLevel:  diff,
				Status:           domain.ActionStatusPending,
				DueDate:          now.AddDate(0, 0, (seq-1)/3+1).Format("2006-01-02"),
				CreatedAt:        now,
			})
		}
		return items
	}

	return domain.HabitFormationPlan{
		GoalID:       goalID,
		Week1Actions: week("Week1", "意識的実行期", 1, 0, ""),
		Week2Actions: week("Week2", "抵抗期・継続強化", 8, 5, "medium"),
		Week3Actions: week("Week3", "習慣化期", 15, 0, ""),
		DailyReminders: []string{
			"今日の小さな一歩を踏み出しましょう",
			"継続は力なり。今日も頑張りましょう",
			"習慣化まであと少し。今日も続けましょう",
		},
		SuccessMetrics: []string{
			"7日間連続実行",
			"14日間で80%以上の実行率",
			"21日間で習慣として定着",
		},
	}
}

type achievementTemplate struct {
	title       string
	description string
	points      int
}

var achievementTemplates = []achievementTemplate{
	{title: "第一歩達成！", description: "最初のアクションを完了しました", points: 10},
	{title: "継続の力！", description: "アクションを継続しています", points: 15},
	{title: "習慣の芽！", description: "新しい習慣が育っています", points: 20},
	{title: "成長実感！", description: "着実に成長を続けています", points: 25},
}

func (s *GoalService) mintAchievement(userID string, action domain.ActionItem, goal domain.Goal) domain.MicroAchievement {
	tpl := achievementTemplates[s.rng.Intn(len(achievementTemplates))]
	return domain.MicroAchievement{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       tpl.title,
		Description: tpl.description,
		ActionDesc:  action.Description,
		RawGoal:     goal.RawGoal,
		Points:      tpl.points,
		Category:    "daily",
		AchievedAt:  time.Now().UTC(),
	}
}
