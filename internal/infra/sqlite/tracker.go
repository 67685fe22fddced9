package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tempo-track/tempo/internal/domain"
)

// ─── Sessions ───────────────────────────────────────────────────────────────

// InsertSession stores a logged focus session.
func (d *DB) InsertSession(ctx context.Context, s domain.Session) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, duration_ms, category, note)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.StartedAt.Unix(), s.Duration.Milliseconds(), s.Category, s.Note,
	)
	return err
}

// ListSessions returns all sessions ordered by start time ascending.
func (d *DB) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, category, note
		 FROM sessions ORDER BY started_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		var startedAt, durationMs int64
		if err := rows.Scan(&s.ID, &startedAt, &durationMs, &s.Category, &s.Note); err != nil {
			return nil, err
		}
		s.StartedAt = time.Unix(startedAt, 0)
		s.Duration = time.Duration(durationMs) * time.Millisecond
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SessionCount returns the number of stored sessions.
func (d *DB) SessionCount(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

// ─── Goals ──────────────────────────────────────────────────────────────────

// InsertGoal stores a new goal.
func (d *DB) InsertGoal(ctx context.Context, g domain.Goal) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO goals (id, title, target_hours, status, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.TargetHours, string(g.Status),
		g.CreatedAt.Unix(), nullableUnix(g.CompletedAt),
	)
	return err
}

// GetGoal retrieves a goal by id. Returns domain.ErrGoalNotFound if absent.
func (d *DB) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, title, target_hours, status, created_at, completed_at
		 FROM goals WHERE id = ?`, id,
	)
	g, err := scanGoal(row)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

// ListGoals returns all goals, newest first.
func (d *DB) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, title, target_hours, status, created_at, completed_at
		 FROM goals ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// UpdateGoalStatus transitions a goal's lifecycle state. Completing a goal
// also stamps completed_at.
func (d *DB) UpdateGoalStatus(ctx context.Context, id string, status domain.GoalStatus, at time.Time) error {
	var completedAt sql.NullInt64
	if status == domain.GoalCompleted {
		completedAt = sql.NullInt64{Int64: at.Unix(), Valid: true}
	}
	result, err := d.db.ExecContext(ctx,
		`UPDATE goals SET status = ?, completed_at = ? WHERE id = ?`,
		string(status), completedAt, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var status string
	var createdAt int64
	var completedAt sql.NullInt64

	err := s.Scan(&g.ID, &g.Title, &g.TargetHours, &status, &createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	g.Status = domain.GoalStatus(status)
	g.CreatedAt = time.Unix(createdAt, 0)
	if completedAt.Valid {
		g.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &g, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
