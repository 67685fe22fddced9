// Package tracker is the application service for logging focus sessions
// and managing goals. Every mutation triggers an achievement pass over
// the updated history.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/app/achievement"
	"github.com/tempo-track/tempo/internal/app/stats"
	"github.com/tempo-track/tempo/internal/domain"
	"github.com/tempo-track/tempo/internal/infra/metrics"
	"github.com/tempo-track/tempo/internal/infra/sqlite"
)

// Service coordinates the session/goal store with the achievement engine.
type Service struct {
	db     *sqlite.DB
	engine *achievement.Engine
	log    *zap.Logger
}

// NewService creates a tracker service.
func NewService(db *sqlite.DB, engine *achievement.Engine, log *zap.Logger) *Service {
	return &Service{db: db, engine: engine, log: log}
}

// LogSession stores a finished focus session and runs an achievement
// pass. Sub-minute sessions are stored (the log is the log) but never
// influence statistics. Returns the stored session and any achievements
// the session newly unlocked.
func (s *Service) LogSession(ctx context.Context, startedAt time.Time, duration time.Duration, category, note string) (domain.Session, []domain.Achievement, error) {
	session := domain.Session{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Duration:  duration,
		Category:  category,
		Note:      note,
	}
	if err := s.db.InsertSession(ctx, session); err != nil {
		return domain.Session{}, nil, fmt.Errorf("insert session: %w", err)
	}
	metrics.SessionsLogged.WithLabelValues(category).Inc()

	newly, err := s.runCheck(ctx)
	return session, newly, err
}

// Sessions returns all logged sessions, oldest first.
func (s *Service) Sessions(ctx context.Context) ([]domain.Session, error) {
	return s.db.ListSessions(ctx)
}

// AddGoal creates a new active goal.
func (s *Service) AddGoal(ctx context.Context, title string, targetHours float64) (domain.Goal, error) {
	goal := domain.Goal{
		ID:          uuid.NewString(),
		Title:       title,
		TargetHours: targetHours,
		Status:      domain.GoalActive,
		CreatedAt:   time.Now(),
	}
	if err := s.db.InsertGoal(ctx, goal); err != nil {
		return domain.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return goal, nil
}

// CompleteGoal marks an active goal completed and runs an achievement
// pass. Completing a non-active goal is rejected.
func (s *Service) CompleteGoal(ctx context.Context, id string) ([]domain.Achievement, error) {
	goal, err := s.db.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.Status != domain.GoalActive {
		return nil, domain.ErrGoalNotActive
	}
	if err := s.db.UpdateGoalStatus(ctx, id, domain.GoalCompleted, time.Now()); err != nil {
		return nil, err
	}
	metrics.GoalsCompleted.Inc()

	return s.runCheck(ctx)
}

// AbandonGoal marks an active goal failed. No achievement pass: nothing
// can newly unlock from giving up.
func (s *Service) AbandonGoal(ctx context.Context, id string) error {
	goal, err := s.db.GetGoal(ctx, id)
	if err != nil {
		return err
	}
	if goal.Status != domain.GoalActive {
		return domain.ErrGoalNotActive
	}
	return s.db.UpdateGoalStatus(ctx, id, domain.GoalFailed, time.Now())
}

// Goals returns all goals, newest first.
func (s *Service) Goals(ctx context.Context) ([]domain.Goal, error) {
	return s.db.ListGoals(ctx)
}

// Snapshot computes current statistics from the full history.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	sessions, err := s.db.ListSessions(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list sessions: %w", err)
	}
	goals, err := s.db.ListGoals(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list goals: %w", err)
	}
	return stats.Compute(sessions, goals, time.Now()), nil
}

// Check runs an explicit achievement pass over the full history.
func (s *Service) Check(ctx context.Context) ([]domain.Achievement, error) {
	return s.runCheck(ctx)
}

func (s *Service) runCheck(ctx context.Context) ([]domain.Achievement, error) {
	sessions, err := s.db.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	goals, err := s.db.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	newly, err := s.engine.CheckAndUnlock(ctx, sessions, goals)
	if err != nil {
		return nil, err
	}
	for _, a := range newly {
		s.log.Info("achievement unlocked",
			zap.String("id", a.ID), zap.String("title", a.Title))
	}
	return newly, nil
}
