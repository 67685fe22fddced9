// Package achievement implements the Tempo achievement engine:
// a fixed catalog of declarative unlock rules evaluated against a
// statistics snapshot, with persisted progress and at-most-once
// unlock notifications.
package achievement

import (
	"math"

	"github.com/tempo-track/tempo/internal/domain"
)

// Evaluation is the outcome of checking one definition against a snapshot.
type Evaluation struct {
	Unlock   bool
	Progress int // 0–100, rounded to nearest integer
}

// Evaluate computes the unlock decision and progress percentage for one
// achievement. It is pure: persistence and notification belong to the
// engine. An unrecognized requirement type returns
// domain.ErrUnknownRequirement; the caller keeps the stored progress and
// logs a warning.
func Evaluate(def domain.AchievementDef, snap domain.Snapshot) (Evaluation, error) {
	metric, ok := metricFor(def.Requirement.Type, snap)
	if !ok {
		return Evaluation{}, domain.ErrUnknownRequirement
	}

	threshold := def.Requirement.Value
	if threshold <= 0 {
		// A non-positive threshold is trivially met.
		return Evaluation{Unlock: true, Progress: 100}, nil
	}

	pct := int(math.Round(metric / threshold * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}

	return Evaluation{Unlock: metric >= threshold, Progress: pct}, nil
}

// metricFor maps a requirement type to its snapshot metric.
func metricFor(t domain.RequirementType, snap domain.Snapshot) (float64, bool) {
	switch t {
	case domain.ReqSessionCount:
		return float64(snap.TotalSessions), true
	case domain.ReqTotalHours:
		return snap.TotalHours, true
	case domain.ReqStreak:
		return float64(snap.CurrentStreak), true
	case domain.ReqLongestSession:
		return float64(snap.LongestSessionMinutes), true
	case domain.ReqCategoryCount:
		return float64(snap.CategoryCount()), true
	case domain.ReqCompletedGoals:
		return float64(snap.CompletedGoals), true
	case domain.ReqWeekend:
		return float64(snap.WeekendSessions), true
	case domain.ReqEarlyBird:
		return float64(snap.EarlyBirdSessions), true
	case domain.ReqNightOwl:
		return float64(snap.NightOwlSessions), true
	default:
		return 0, false
	}
}
