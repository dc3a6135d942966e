package domain

type ProgressSummary struct {
	TotalGoals     int     `json:"total_goals"`
	CompletedGoals int     `json:"completed_goals"`
	ActiveGoals    int     `json:"active_goals"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
	TotalSessions  int     `json:"total_sessions"`
	TotalPoints    int     `json:"total_points"`
}

type EmotionTrendPoint struct {
	Date            string  `json:"date"`
	DominantEmotion string  `json:"dominant_emotion"` // positive, neutral, negative
	AverageScore    float64 `json:"average_score"`
}

// BehaviorAssessment is the dashboard view of the user's change stage, derived
// from the last week of progress records rather than from conversation text.
type BehaviorAssessment struct {
	Stage            BehaviorStage `json:"stage"`
	StageDescription string        `json:"stage_description"`
	NextStageTips    []string      `json:"next_stage_tips"`
	ConfidenceLevel  int           `json:"confidence_level"`
	MotivationLevel  int           `json:"motivation_level"`
	Barriers         []string      `json:"barriers"`
	Facilitators     []string      `json:"facilitators"`
}

type HabitProgress struct {
	GoalID           string  `json:"goal_id"`
	HabitName        string  `json:"habit_name"`
	CurrentStreak    int     `json:"current_streak"`
	TargetDays       int     `json:"target_days"`
	CompletionRate   float64 `json:"completion_rate"`
	DaysSinceStart   int     `json:"days_since_start"`
	HabitStrength    float64 `json:"habit_strength"`
	PhaseDescription string  `json:"phase_description"`
}

type DashboardData struct {
	Overview            ProgressSummary     `json:"overview"`
	TodayActions        []ActionItem        `json:"today_actions"`
	ActiveGoals         []Goal              `json:"active_goals"`
	RecentAchievements  []MicroAchievement  `json:"recent_achievements"`
	EmotionalTrend      []EmotionTrendPoint `json:"emotional_trend"`
	BehaviorStage       BehaviorAssessment  `json:"behavior_stage"`
	HabitProgress       []HabitProgress     `json:"habit_progress"`
	MotivationalMessage string              `json:"motivational_message"`
}

type CategoryProgress struct {
	Category         string  `json:"category"`
	CompletedActions int     `json:"completed_actions"`
	AvgSatisfaction  float64 `json:"avg_satisfaction"`
}

type WeeklyStats struct {
	ActiveGoals       int     `json:"active_goals"`
	TotalActions      int     `json:"total_actions"`
	AvgEmotionalState float64 `json:"avg_emotional_state"`
	ActiveDays        int     `json:"active_days"`
}

type WeeklyReport struct {
	Period           string             `json:"period"`
	Stats            WeeklyStats        `json:"stats"`
	CategoryProgress []CategoryProgress `json:"category_progress"`
	Improvements     []string           `json:"improvements"`
	NextWeekFocus    []string           `json:"next_week_focus"`
}
