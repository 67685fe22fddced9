package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tempo-track/tempo/internal/domain"
	"github.com/tempo-track/tempo/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// Sessions
// ═══════════════════════════════════════════════════════════════════════════

func TestSessionRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	in := domain.Session{
		ID:        "sess-1",
		StartedAt: time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		Duration:  25 * time.Minute,
		Category:  "writing",
		Note:      "morning pages",
	}
	if err := db.InsertSession(ctx, in); err != nil {
		t.Fatalf("insert: %v", err)
	}

	sessions, err := db.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.ID != in.ID || got.Category != in.Category || got.Note != in.Note {
		t.Errorf("session fields lost: %+v", got)
	}
	if !got.StartedAt.Equal(in.StartedAt) {
		t.Errorf("startedAt = %v, want %v", got.StartedAt, in.StartedAt)
	}
	if got.Duration != in.Duration {
		t.Errorf("duration = %v, want %v", got.Duration, in.Duration)
	}
}

func TestListSessionsOrderedByStart(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	// Insert out of chronological order.
	for i, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		s := domain.Session{
			ID:        string(rune('a' + i)),
			StartedAt: base.Add(offset),
			Duration:  10 * time.Minute,
		}
		if err := db.InsertSession(ctx, s); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	sessions, err := db.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartedAt.Before(sessions[i-1].StartedAt) {
			t.Errorf("sessions not ascending at index %d", i)
		}
	}

	count, err := db.SessionCount(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Goals
// ═══════════════════════════════════════════════════════════════════════════

func TestGoalLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	g := domain.Goal{
		ID:          "goal-1",
		Title:       "Finish draft",
		TargetHours: 40,
		Status:      domain.GoalActive,
		CreatedAt:   created,
	}
	if err := db.InsertGoal(ctx, g); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetGoal(ctx, "goal-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.GoalActive || !got.CompletedAt.IsZero() {
		t.Errorf("fresh goal must be active with no completion: %+v", got)
	}

	done := created.AddDate(0, 1, 0)
	if err := db.UpdateGoalStatus(ctx, "goal-1", domain.GoalCompleted, done); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err = db.GetGoal(ctx, "goal-1")
	if err != nil {
		t.Fatalf("get after complete: %v", err)
	}
	if got.Status != domain.GoalCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if !got.CompletedAt.Equal(done) {
		t.Errorf("completedAt = %v, want %v", got.CompletedAt, done)
	}
}

func TestGoalNotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.GetGoal(ctx, "missing"); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("get: expected ErrGoalNotFound, got %v", err)
	}
	err := db.UpdateGoalStatus(ctx, "missing", domain.GoalCompleted, time.Now())
	if !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("update: expected ErrGoalNotFound, got %v", err)
	}
}

func TestListGoalsNewestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new"} {
		g := domain.Goal{
			ID: id, Title: id, Status: domain.GoalActive,
			CreatedAt: base.AddDate(0, 0, i),
		}
		if err := db.InsertGoal(ctx, g); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	goals, err := db.ListGoals(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 2 || goals[0].ID != "new" {
		t.Errorf("expected newest first, got %+v", goals)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Records
// ═══════════════════════════════════════════════════════════════════════════

func TestPutRecordUpserts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.PutRecord(ctx, domain.AchievementState{ID: "streak_7", Progress: 40}); err != nil {
		t.Fatalf("put: %v", err)
	}

	unlockedAt := time.Date(2024, 6, 10, 21, 0, 0, 0, time.UTC)
	updated := domain.AchievementState{
		ID: "streak_7", Unlocked: true, UnlockedAt: unlockedAt, Progress: 100, Notified: true,
	}
	if err := db.PutRecord(ctx, updated); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := db.GetRecords(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("upsert must not duplicate: got %d records", len(records))
	}
	rec := records[0]
	if !rec.Unlocked || rec.Progress != 100 || !rec.Notified {
		t.Errorf("upsert lost fields: %+v", rec)
	}
	if !rec.UnlockedAt.Equal(unlockedAt) {
		t.Errorf("unlockedAt = %v, want %v", rec.UnlockedAt, unlockedAt)
	}
}

func TestClearRecords(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := db.PutRecord(ctx, domain.AchievementState{ID: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	if err := db.ClearRecords(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := db.GetRecords(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty store after clear, got %d", len(records))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notification Log
// ═══════════════════════════════════════════════════════════════════════════

func TestNotificationLog(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		id, err := db.InsertNotification(ctx, sqlite.Notification{
			Title:     "Achievement unlocked",
			Body:      "body",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		ids = append(ids, id)
	}

	count, err := db.NotificationCountSince(ctx, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count since = %d, want 2", count)
	}

	if err := db.MarkNotificationShown(ctx, ids[2]); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, err := db.ListPendingNotifications(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	for _, n := range pending {
		if n.ID == ids[2] {
			t.Error("shown notification still listed as pending")
		}
	}
	// Newest first.
	if pending[0].CreatedAt.Before(pending[1].CreatedAt) {
		t.Error("pending notifications not newest first")
	}
}
