// Package domain holds Tempo's core types.
// The tracker types are read-only inputs to the achievement engine;
// the engine never mutates a Session or Goal.
package domain

import "time"

// MinSessionDuration is the qualifying threshold for a focus session.
// Anything shorter is treated as an accidental start and excluded
// from every statistic.
const MinSessionDuration = 60 * time.Second

// Session is one logged block of focused time.
type Session struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Category  string        `json:"category"`
	Note      string        `json:"note,omitempty"`
}

// Qualifies reports whether the session counts toward statistics.
func (s Session) Qualifies() bool {
	return s.Duration >= MinSessionDuration
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
	GoalArchived  GoalStatus = "archived"
)

// Goal is a user-defined target. Only completed goals count toward
// the completed_goals statistic.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	TargetHours float64    `json:"target_hours"`
	Status      GoalStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt time.Time  `json:"completed_at,omitempty"`
}

// Snapshot is the derived statistics fed to achievement evaluation.
// It is recomputed on every pass and never persisted.
type Snapshot struct {
	TotalSessions         int      `json:"total_sessions"`
	TotalHours            float64  `json:"total_hours"`
	CurrentStreak         int      `json:"current_streak"`
	LongestStreak         int      `json:"longest_streak"`
	CompletedGoals        int      `json:"completed_goals"`
	ActiveGoals           int      `json:"active_goals"`
	LongestSessionMinutes int      `json:"longest_session_minutes"`
	CategoriesUsed        []string `json:"categories_used"`
	EarlyBirdSessions     int      `json:"early_bird_sessions"`
	NightOwlSessions      int      `json:"night_owl_sessions"`
	WeekendSessions       int      `json:"weekend_sessions"`
}

// CategoryCount returns the number of distinct categories used.
func (s Snapshot) CategoryCount() int {
	return len(s.CategoriesUsed)
}
