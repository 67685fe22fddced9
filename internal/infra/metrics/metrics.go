// Package metrics provides Prometheus metrics for Tempo.
// Counters and gauges for sessions, goals, the achievement engine,
// and notifications.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tracker ────────────────────────────────────────────────────────────────

// SessionsLogged tracks logged focus sessions by category.
var SessionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "sessions_logged_total",
	Help:      "Total focus sessions logged.",
}, []string{"category"})

// GoalsCompleted tracks completed goals.
var GoalsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "goals_completed_total",
	Help:      "Total goals marked completed.",
})

// ─── Achievement Engine ─────────────────────────────────────────────────────

// AchievementChecks tracks evaluation passes over the catalog.
var AchievementChecks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "achievement_checks_total",
	Help:      "Total achievement evaluation passes.",
})

// AchievementUnlocks tracks newly unlocked achievements.
var AchievementUnlocks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "achievement_unlocks_total",
	Help:      "Total achievements unlocked.",
})

// AchievementPersistFailures tracks per-achievement persistence failures
// that caused an achievement to be skipped for a pass.
var AchievementPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "achievement_persist_failures_total",
	Help:      "Total achievement state writes that failed.",
})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsSent tracks notifications delivered to the log.
var NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "notifications_sent_total",
	Help:      "Total notifications delivered.",
})

// NotificationsSuppressed tracks notifications dropped by policy.
var NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "notifications_suppressed_total",
	Help:      "Total notifications suppressed by policy.",
}, []string{"reason"})

// ─── Store ──────────────────────────────────────────────────────────────────

// StoreRetries tracks retried record-store operations.
var StoreRetries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "store_retries_total",
	Help:      "Total record store operations that were retried.",
})
