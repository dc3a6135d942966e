package domain

import "time"

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

type Goal struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RawGoal          string    `json:"raw_goal"`
	Smart            SmartGoal `json:"smart_goal"`
	Category         string    `json:"category"`
	Priority         int       `json:"priority"` // 1..5
	Status           string    `json:"status"`
	TargetDate       string    `json:"target_date,omitempty"` // YYYY-MM-DD
	TotalActions     int       `json:"total_actions"`
	CompletedActions int       `json:"completed_actions"`
	CompletionRate   float64   `json:"completion_rate"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SmartGoal spells out a raw goal along the five SMART axes.
type SmartGoal struct {
	Specific   string `json:"specific"`
	Measurable string `json:"measurable"`
	Achievable string `json:"achievable"`
	Relevant   string `json:"relevant"`
	Timebound  string `json:"timebound"`
}

const (
	ActionStatusPending    = "pending"
	ActionStatusInProgress = "in_progress"
	ActionStatusCompleted  = "completed"
	ActionStatusSkipped    = "skipped"
)

type ActionItem struct {
	ID               string    `json:"id"`
	GoalID           string    `json:"goal_id"`
	Description      string    `json:"description"`
	SequenceOrder    int       `json:"sequence_order"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	DifficultyLevel  string    `json:"difficulty_level"` // easy, medium, hard
	Status           string    `json:"status"`
	DueDate          string    `json:"due_date,omitempty"` // YYYY-MM-DD
	CreatedAt        time.Time `json:"created_at"`
}

type ProgressRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	GoalID         string    `json:"goal_id,omitempty"`
	ActionItemID   string    `json:"action_item_id,omitempty"`
	Completed      bool      `json:"completed"`
	Reflection     string    `json:"reflection,omitempty"`
	EmotionalState int       `json:"emotional_state"` // 1..10
	RecordedAt     time.Time `json:"recorded_at"`
}

// HabitFormationPlan splits the 21-day habit window into three weekly phases.
type HabitFormationPlan struct {
	GoalID         string       `json:"goal_id"`
	Week1Actions   []ActionItem `json:"week1_actions"` // conscious execution
	Week2Actions   []ActionItem `json:"week2_actions"` // resistance
	Week3Actions   []ActionItem `json:"week3_actions"` // habituation
	DailyReminders []string     `json:"daily_reminders"`
	SuccessMetrics []string     `json:"success_metrics"`
}

type MicroAchievement struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActionDesc  string    `json:"action_description"`
	RawGoal     string    `json:"raw_goal"`
	Points      int       `json:"points"`
	Category    string    `json:"category"` // daily, weekly, milestone, breakthrough
	AchievedAt  time.Time `json:"achieved_at"`
}
