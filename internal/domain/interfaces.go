package domain

import "context"

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the achievement engine depends on them.

// RecordStore abstracts durable achievement-state storage.
// Implementations must guarantee read-your-writes within a process and
// survive restart.
type RecordStore interface {
	// GetRecords loads every persisted achievement record.
	// A store recovering from corruption may return duplicate ids;
	// callers are expected to tolerate and repair that.
	GetRecords(ctx context.Context) ([]AchievementState, error)

	// PutRecord upserts one record by id.
	PutRecord(ctx context.Context, state AchievementState) error

	// ClearRecords removes all persisted achievement records.
	ClearRecords(ctx context.Context) error
}

// Notifier delivers a user-facing unlock notification.
// Delivery failure must never roll back a persisted unlock.
type Notifier interface {
	NotifyUnlocked(ctx context.Context, title, body string) error
}
