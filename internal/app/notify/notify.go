// Package notify implements Tempo's notification dispatcher.
// Notifications land in an on-device log that the UI drains; a policy
// caps volume and respects quiet hours so unlock spam cannot happen.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/infra/metrics"
	"github.com/tempo-track/tempo/internal/infra/sqlite"
)

// Policy governs how often notifications are delivered.
type Policy struct {
	MaxPerDay  int    // 0 disables the cap
	QuietStart string // "22:00"
	QuietEnd   string // "08:00"
}

// DefaultPolicy allows a handful of notifications a day and stays quiet
// overnight.
func DefaultPolicy() Policy {
	return Policy{
		MaxPerDay:  5,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}

// Service writes notifications to the sqlite log, subject to policy.
// It implements domain.Notifier.
type Service struct {
	db     *sqlite.DB
	policy Policy
	log    *zap.Logger
	now    func() time.Time
}

// NewService creates a notification service with the default policy.
func NewService(db *sqlite.DB, log *zap.Logger) *Service {
	return NewServiceWithPolicy(db, DefaultPolicy(), log)
}

// NewServiceWithPolicy creates a notification service with a custom policy.
func NewServiceWithPolicy(db *sqlite.DB, policy Policy, log *zap.Logger) *Service {
	return &Service{db: db, policy: policy, log: log, now: time.Now}
}

// NotifyUnlocked records an achievement-unlocked notification.
// Suppression by policy is not an error: the unlock itself is already
// persisted and visible in the achievements list.
func (s *Service) NotifyUnlocked(ctx context.Context, title, body string) error {
	now := s.now()

	if s.policy.MaxPerDay > 0 {
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		count, err := s.db.NotificationCountSince(ctx, startOfDay)
		if err != nil {
			return fmt.Errorf("count today: %w", err)
		}
		if count >= s.policy.MaxPerDay {
			metrics.NotificationsSuppressed.WithLabelValues("daily_cap").Inc()
			s.log.Debug("notification suppressed by daily cap", zap.String("title", title))
			return nil
		}
	}

	if s.isQuietHour(now) {
		metrics.NotificationsSuppressed.WithLabelValues("quiet_hours").Inc()
		s.log.Debug("notification suppressed by quiet hours", zap.String("title", title))
		return nil
	}

	_, err := s.db.InsertNotification(ctx, sqlite.Notification{
		Title:     title,
		Body:      body,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	metrics.NotificationsSent.Inc()
	return nil
}

// Pending returns unshown notifications.
func (s *Service) Pending(ctx context.Context, limit int) ([]sqlite.Notification, error) {
	return s.db.ListPendingNotifications(ctx, limit)
}

// MarkShown marks a notification as shown.
func (s *Service) MarkShown(ctx context.Context, id int64) error {
	return s.db.MarkNotificationShown(ctx, id)
}

// isQuietHour returns true if the given time falls within quiet hours.
func (s *Service) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(s.policy.QuietStart)
	endHour, endMin := parseHHMM(s.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
