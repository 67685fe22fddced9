package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tempo-track/tempo/internal/domain"
)

// ─── Achievement State (domain.RecordStore) ─────────────────────────────────

// GetRecords loads every persisted achievement record, in insertion order.
func (d *DB) GetRecords(ctx context.Context) ([]domain.AchievementState, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, unlocked, unlocked_at, progress, notified
		 FROM achievement_state ORDER BY rowid ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AchievementState
	for rows.Next() {
		var rec domain.AchievementState
		var unlockedAt sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Unlocked, &unlockedAt, &rec.Progress, &rec.Notified); err != nil {
			return nil, err
		}
		if unlockedAt.Valid {
			rec.UnlockedAt = time.Unix(unlockedAt.Int64, 0)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PutRecord upserts one achievement record by id.
func (d *DB) PutRecord(ctx context.Context, state domain.AchievementState) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO achievement_state (id, unlocked, unlocked_at, progress, notified)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			unlocked=excluded.unlocked,
			unlocked_at=excluded.unlocked_at,
			progress=excluded.progress,
			notified=excluded.notified`,
		state.ID, state.Unlocked, nullableUnix(state.UnlockedAt), state.Progress, state.Notified,
	)
	return err
}

// ClearRecords removes all persisted achievement records.
func (d *DB) ClearRecords(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM achievement_state`)
	return err
}

// ─── Notification Log ───────────────────────────────────────────────────────

// Notification is a row in the on-device notification log.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}

// InsertNotification appends to the notification log.
func (d *DB) InsertNotification(ctx context.Context, n Notification) (int64, error) {
	result, err := d.db.ExecContext(ctx,
		`INSERT INTO notifications (title, body, created_at, shown)
		 VALUES (?, ?, ?, ?)`,
		n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountSince returns how many notifications were created at or
// after the given time.
func (d *DB) NotificationCountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, since.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, newest first.
func (d *DB) ListPendingNotifications(ctx context.Context, limit int) ([]Notification, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, title, body, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []Notification
	for rows.Next() {
		var n Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(ctx context.Context, id int64) error {
	_, err := d.db.ExecContext(ctx, `UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}
