// Package domain — achievement types.
// Definitions are fixed at build time; state lives in the record store
// and only ever moves forward (locked → in progress → unlocked).
package domain

import "time"

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatMilestone  AchievementCategory = "milestone"
	CatStreak     AchievementCategory = "streak"
	CatDedication AchievementCategory = "dedication"
	CatVariety    AchievementCategory = "variety"
	CatSpeed      AchievementCategory = "speed"
)

// AchievementTier orders achievements for display. It has no effect
// on unlock logic.
type AchievementTier string

const (
	TierBronze   AchievementTier = "bronze"
	TierSilver   AchievementTier = "silver"
	TierGold     AchievementTier = "gold"
	TierPlatinum AchievementTier = "platinum"
)

// RequirementType selects which snapshot metric a requirement reads.
// This tagged field is the single source of truth for dispatch —
// achievement ids carry no semantics.
type RequirementType string

const (
	ReqSessionCount   RequirementType = "session_count"
	ReqTotalHours     RequirementType = "total_hours"
	ReqStreak         RequirementType = "streak"
	ReqLongestSession RequirementType = "longest_session"
	ReqCategoryCount  RequirementType = "category_count"
	ReqCompletedGoals RequirementType = "completed_goals"
	ReqWeekend        RequirementType = "weekend"
	ReqEarlyBird      RequirementType = "early_bird"
	ReqNightOwl       RequirementType = "night_owl"
)

// Requirement is a declarative unlock condition: a metric and a threshold.
type Requirement struct {
	Type  RequirementType `json:"type"`
	Value float64         `json:"value"`
}

// AchievementDef defines a single achievement. Immutable catalog data.
type AchievementDef struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Tier        AchievementTier     `json:"tier"`
	Requirement Requirement         `json:"requirement"`
}

// AchievementState is the persisted per-achievement record.
// Invariants: Unlocked never reverts, Progress is non-decreasing while
// locked and pinned to 100 on unlock, UnlockedAt is set exactly once.
type AchievementState struct {
	ID         string    `json:"id"`
	Unlocked   bool      `json:"unlocked"`
	UnlockedAt time.Time `json:"unlocked_at,omitempty"`
	Progress   int       `json:"progress"` // 0–100
	Notified   bool      `json:"notified"`
}

// Achievement pairs a definition with its current state for display.
type Achievement struct {
	AchievementDef
	State AchievementState `json:"state"`
}
