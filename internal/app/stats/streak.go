package stats

import (
	"time"

	"github.com/tempo-track/tempo/internal/domain"
)

// Streaks computes the current and longest consecutive-day streaks.
// A day counts if at least one qualifying session started on it (local
// calendar date, not instant). The current streak is walked backward from
// "now" with a one-day grace window: if neither today nor yesterday has a
// session, the current streak is 0 no matter how recent the last run was.
// The longest streak is the maximum run anywhere in history.
func Streaks(sessions []domain.Session, now time.Time) (current, longest int) {
	days := make(map[civilDate]struct{})
	for _, s := range sessions {
		if !s.Qualifies() {
			continue
		}
		days[dateOf(s.StartedAt.Local())] = struct{}{}
	}
	if len(days) == 0 {
		return 0, 0
	}

	today := dateOf(now.Local())

	// Current streak: anchor on today, or yesterday within the grace window.
	anchor := today
	if _, ok := days[anchor]; !ok {
		anchor = anchor.prev()
		if _, ok := days[anchor]; !ok {
			anchor = civilDate{} // broken — no current streak
		}
	}
	if anchor != (civilDate{}) {
		for d := anchor; ; d = d.prev() {
			if _, ok := days[d]; !ok {
				break
			}
			current++
		}
	}

	// Longest streak: count runs by looking for run starts.
	for d := range days {
		if _, ok := days[d.prev()]; ok {
			continue // not the start of a run
		}
		run := 0
		for e := d; ; e = e.next() {
			if _, ok := days[e]; !ok {
				break
			}
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

// civilDate is a calendar date without time-of-day or location.
// Using a value type keeps the day set free of DST arithmetic.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

func (c civilDate) time() time.Time {
	return time.Date(c.year, c.month, c.day, 0, 0, 0, 0, time.UTC)
}

func (c civilDate) prev() civilDate { return dateOf(c.time().AddDate(0, 0, -1)) }
func (c civilDate) next() civilDate { return dateOf(c.time().AddDate(0, 0, 1)) }
