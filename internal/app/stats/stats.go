// Package stats reduces the session/goal log into the snapshot that
// drives achievement evaluation. Everything here is pure: no I/O, no
// clock reads — "now" is an explicit argument so results are reproducible.
package stats

import (
	"sort"
	"time"

	"github.com/tempo-track/tempo/internal/domain"
)

// Compute derives a full statistics snapshot from the given sessions and
// goals. Sessions shorter than domain.MinSessionDuration are excluded.
// The result does not depend on input order, and empty input yields an
// all-zero snapshot.
func Compute(sessions []domain.Session, goals []domain.Goal, now time.Time) domain.Snapshot {
	var snap domain.Snapshot

	var totalDur time.Duration
	var longest time.Duration
	categories := make(map[string]struct{})
	qualifying := make([]domain.Session, 0, len(sessions))

	for _, s := range sessions {
		if !s.Qualifies() {
			continue
		}
		qualifying = append(qualifying, s)

		snap.TotalSessions++
		totalDur += s.Duration
		if s.Duration > longest {
			longest = s.Duration
		}
		if s.Category != "" {
			categories[s.Category] = struct{}{}
		}

		start := s.StartedAt.Local()
		hour := start.Hour()
		if hour >= 5 && hour < 9 {
			snap.EarlyBirdSessions++
		}
		if hour >= 22 || hour < 5 {
			snap.NightOwlSessions++
		}
		if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			snap.WeekendSessions++
		}
	}

	snap.TotalHours = totalDur.Hours()
	snap.LongestSessionMinutes = int(longest.Minutes())

	snap.CategoriesUsed = make([]string, 0, len(categories))
	for c := range categories {
		snap.CategoriesUsed = append(snap.CategoriesUsed, c)
	}
	sort.Strings(snap.CategoriesUsed)

	for _, g := range goals {
		switch g.Status {
		case domain.GoalCompleted:
			snap.CompletedGoals++
		case domain.GoalActive:
			snap.ActiveGoals++
		}
	}

	snap.CurrentStreak, snap.LongestStreak = Streaks(qualifying, now)
	return snap
}
