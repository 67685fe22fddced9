package achievement

import "github.com/tempo-track/tempo/internal/domain"

// Catalog returns the full achievement catalog.
// 21 achievements across 5 categories. The catalog is fixed at build
// time; ids must stay stable because persisted state is keyed on them.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Milestones ─────────────────────────────────────────────────
		{
			ID: "first_session", Title: "First Focus", Tier: domain.TierBronze,
			Category:    domain.CatMilestone,
			Description: "Complete your first focus session.",
			Requirement: domain.Requirement{Type: domain.ReqSessionCount, Value: 1},
		},
		{
			ID: "sessions_25", Title: "Warming Up", Tier: domain.TierBronze,
			Category:    domain.CatMilestone,
			Description: "Complete 25 focus sessions.",
			Requirement: domain.Requirement{Type: domain.ReqSessionCount, Value: 25},
		},
		{
			ID: "sessions_100", Title: "Century of Sessions", Tier: domain.TierSilver,
			Category:    domain.CatMilestone,
			Description: "Complete 100 focus sessions.",
			Requirement: domain.Requirement{Type: domain.ReqSessionCount, Value: 100},
		},
		{
			ID: "sessions_500", Title: "Relentless", Tier: domain.TierGold,
			Category:    domain.CatMilestone,
			Description: "Complete 500 focus sessions.",
			Requirement: domain.Requirement{Type: domain.ReqSessionCount, Value: 500},
		},
		{
			ID: "goals_1", Title: "Goal Getter", Tier: domain.TierBronze,
			Category:    domain.CatMilestone,
			Description: "Complete your first goal.",
			Requirement: domain.Requirement{Type: domain.ReqCompletedGoals, Value: 1},
		},
		{
			ID: "goals_10", Title: "Serial Finisher", Tier: domain.TierSilver,
			Category:    domain.CatMilestone,
			Description: "Complete 10 goals.",
			Requirement: domain.Requirement{Type: domain.ReqCompletedGoals, Value: 10},
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Title: "Kindling", Tier: domain.TierBronze,
			Category:    domain.CatStreak,
			Description: "Focus three days in a row.",
			Requirement: domain.Requirement{Type: domain.ReqStreak, Value: 3},
		},
		{
			ID: "streak_7", Title: "Week Warrior", Tier: domain.TierSilver,
			Category:    domain.CatStreak,
			Description: "Keep a 7-day streak alive.",
			Requirement: domain.Requirement{Type: domain.ReqStreak, Value: 7},
		},
		{
			ID: "streak_30", Title: "Monthly Machine", Tier: domain.TierGold,
			Category:    domain.CatStreak,
			Description: "Keep a 30-day streak alive.",
			Requirement: domain.Requirement{Type: domain.ReqStreak, Value: 30},
		},
		{
			ID: "streak_100", Title: "Centurion", Tier: domain.TierPlatinum,
			Category:    domain.CatStreak,
			Description: "Keep a 100-day streak alive.",
			Requirement: domain.Requirement{Type: domain.ReqStreak, Value: 100},
		},

		// ── Dedication ─────────────────────────────────────────────────
		{
			ID: "hours_10", Title: "Ten Hours Deep", Tier: domain.TierBronze,
			Category:    domain.CatDedication,
			Description: "Accumulate 10 hours of focused time.",
			Requirement: domain.Requirement{Type: domain.ReqTotalHours, Value: 10},
		},
		{
			ID: "hours_50", Title: "Fifty Hour Club", Tier: domain.TierSilver,
			Category:    domain.CatDedication,
			Description: "Accumulate 50 hours of focused time.",
			Requirement: domain.Requirement{Type: domain.ReqTotalHours, Value: 50},
		},
		{
			ID: "hours_250", Title: "Deep Work Devotee", Tier: domain.TierGold,
			Category:    domain.CatDedication,
			Description: "Accumulate 250 hours of focused time.",
			Requirement: domain.Requirement{Type: domain.ReqTotalHours, Value: 250},
		},
		{
			ID: "hours_1000", Title: "Thousand Hour Master", Tier: domain.TierPlatinum,
			Category:    domain.CatDedication,
			Description: "Accumulate 1000 hours of focused time.",
			Requirement: domain.Requirement{Type: domain.ReqTotalHours, Value: 1000},
		},
		{
			ID: "marathon_90", Title: "Marathoner", Tier: domain.TierSilver,
			Category:    domain.CatDedication,
			Description: "Hold a single session for 90 minutes.",
			Requirement: domain.Requirement{Type: domain.ReqLongestSession, Value: 90},
		},
		{
			ID: "marathon_180", Title: "Ultra Marathoner", Tier: domain.TierGold,
			Category:    domain.CatDedication,
			Description: "Hold a single session for 3 hours.",
			Requirement: domain.Requirement{Type: domain.ReqLongestSession, Value: 180},
		},
		{
			ID: "weekend_10", Title: "Weekend Warrior", Tier: domain.TierBronze,
			Category:    domain.CatDedication,
			Description: "Focus on 10 weekend sessions.",
			Requirement: domain.Requirement{Type: domain.ReqWeekend, Value: 10},
		},

		// ── Variety ────────────────────────────────────────────────────
		{
			ID: "categories_3", Title: "Explorer", Tier: domain.TierBronze,
			Category:    domain.CatVariety,
			Description: "Track time in 3 different categories.",
			Requirement: domain.Requirement{Type: domain.ReqCategoryCount, Value: 3},
		},
		{
			ID: "categories_6", Title: "Renaissance", Tier: domain.TierSilver,
			Category:    domain.CatVariety,
			Description: "Track time in 6 different categories.",
			Requirement: domain.Requirement{Type: domain.ReqCategoryCount, Value: 6},
		},

		// ── Speed (time of day) ────────────────────────────────────────
		{
			ID: "early_20", Title: "Early Bird", Tier: domain.TierBronze,
			Category:    domain.CatSpeed,
			Description: "Start 20 sessions between 5am and 9am.",
			Requirement: domain.Requirement{Type: domain.ReqEarlyBird, Value: 20},
		},
		{
			ID: "owl_20", Title: "Night Owl", Tier: domain.TierBronze,
			Category:    domain.CatSpeed,
			Description: "Start 20 sessions after 10pm.",
			Requirement: domain.Requirement{Type: domain.ReqNightOwl, Value: 20},
		},
	}
}
