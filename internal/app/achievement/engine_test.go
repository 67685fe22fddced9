package achievement_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/app/achievement"
	"github.com/tempo-track/tempo/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Fakes
// ═══════════════════════════════════════════════════════════════════════════

// fakeStore is an in-memory RecordStore that counts writes and can be
// preloaded with duplicate records or told to fail specific ids.
type fakeStore struct {
	mu      sync.Mutex
	records []domain.AchievementState
	puts    int
	clears  int
	failPut map[string]error
}

func (f *fakeStore) GetRecords(ctx context.Context) ([]domain.AchievementState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AchievementState, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) PutRecord(ctx context.Context, state domain.AchievementState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failPut[state.ID]; ok {
		return err
	}
	f.puts++
	for i, rec := range f.records {
		if rec.ID == state.ID {
			f.records[i] = state
			return nil
		}
	}
	f.records = append(f.records, state)
	return nil
}

func (f *fakeStore) ClearRecords(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.records = nil
	return nil
}

func (f *fakeStore) get(id string) (domain.AchievementState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.AchievementState{}, false
}

// fakeNotifier counts notifications per title.
type fakeNotifier struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func (f *fakeNotifier) NotifyUnlocked(ctx context.Context, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[title]++
	return nil
}

func (f *fakeNotifier) count(title string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[title]
}

// testDefs is a small deterministic catalog for engine tests.
func testDefs() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			ID: "hours_10", Title: "Ten Hours", Tier: domain.TierBronze,
			Category:    domain.CatDedication,
			Requirement: domain.Requirement{Type: domain.ReqTotalHours, Value: 10},
		},
		{
			ID: "streak_3", Title: "Kindling", Tier: domain.TierBronze,
			Category:    domain.CatStreak,
			Requirement: domain.Requirement{Type: domain.ReqStreak, Value: 3},
		},
	}
}

func newTestEngine(store *fakeStore, notifier *fakeNotifier, now time.Time, defs []domain.AchievementDef) *achievement.Engine {
	return achievement.NewEngine(store, notifier, zap.NewNop(),
		achievement.WithCatalog(defs),
		achievement.WithClock(func() time.Time { return now }))
}

func hoursOfSessions(day time.Time, hours int) []domain.Session {
	var sessions []domain.Session
	for i := 0; i < hours; i++ {
		sessions = append(sessions, domain.Session{
			StartedAt: day.Add(time.Duration(i) * 90 * time.Minute),
			Duration:  time.Hour,
			Category:  "work",
		})
	}
	return sessions
}

// ═══════════════════════════════════════════════════════════════════════════
// Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEvaluate_ExactThresholdUnlocks(t *testing.T) {
	def := domain.AchievementDef{
		ID:          "hours_10",
		Requirement: domain.Requirement{Type: domain.ReqTotalHours, Value: 10},
	}
	snap := domain.Snapshot{TotalHours: 10.0}

	eval, err := achievement.Evaluate(def, snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !eval.Unlock {
		t.Error("exactly meeting the threshold must unlock")
	}
	if eval.Progress != 100 {
		t.Errorf("expected progress 100, got %d", eval.Progress)
	}
}

func TestEvaluate_PartialProgressRounds(t *testing.T) {
	def := domain.AchievementDef{
		ID:          "sessions_3",
		Requirement: domain.Requirement{Type: domain.ReqSessionCount, Value: 3},
	}
	snap := domain.Snapshot{TotalSessions: 1}

	eval, err := achievement.Evaluate(def, snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Unlock {
		t.Error("1 of 3 must not unlock")
	}
	if eval.Progress != 33 { // 33.33 rounds to 33
		t.Errorf("expected progress 33, got %d", eval.Progress)
	}
}

func TestEvaluate_ProgressClampedAt100(t *testing.T) {
	def := domain.AchievementDef{
		ID:          "streak_3",
		Requirement: domain.Requirement{Type: domain.ReqStreak, Value: 3},
	}
	snap := domain.Snapshot{CurrentStreak: 30}

	eval, err := achievement.Evaluate(def, snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Progress != 100 {
		t.Errorf("progress must clamp at 100, got %d", eval.Progress)
	}
}

func TestEvaluate_UnknownRequirementType(t *testing.T) {
	def := domain.AchievementDef{
		ID:          "mystery",
		Requirement: domain.Requirement{Type: "swim_laps", Value: 5},
	}

	_, err := achievement.Evaluate(def, domain.Snapshot{})
	if !errors.Is(err, domain.ErrUnknownRequirement) {
		t.Fatalf("expected ErrUnknownRequirement, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Registry Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestRegistry_SeedsOnFirstRun(t *testing.T) {
	store := &fakeStore{}
	reg := achievement.NewRegistry(store, testDefs(), zap.NewNop())

	states, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	for _, s := range states {
		if s.Unlocked || s.Progress != 0 {
			t.Errorf("seeded state must be locked at 0%%: %+v", s)
		}
	}
	if store.puts != 2 {
		t.Errorf("expected 2 seed writes, got %d", store.puts)
	}
}

func TestRegistry_IdempotentOnCleanData(t *testing.T) {
	store := &fakeStore{}
	reg := achievement.NewRegistry(store, testDefs(), zap.NewNop())

	first, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	putsAfterSeed := store.puts

	second, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if store.puts != putsAfterSeed || store.clears != 0 {
		t.Errorf("clean reload must not write: puts %d→%d, clears %d",
			putsAfterSeed, store.puts, store.clears)
	}
	if len(first) != len(second) {
		t.Fatalf("reload changed state count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("reload changed state: %+v vs %+v", first[i], second[i])
		}
	}
}

func TestRegistry_DedupePrefersUnlocked(t *testing.T) {
	unlockedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{records: []domain.AchievementState{
		{ID: "hours_10", Unlocked: false, Progress: 40},
		{ID: "hours_10", Unlocked: true, UnlockedAt: unlockedAt, Progress: 100},
		{ID: "streak_3", Progress: 10},
	}}
	reg := achievement.NewRegistry(store, testDefs(), zap.NewNop())

	states, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !states[0].Unlocked || states[0].Progress != 100 {
		t.Errorf("dedupe must keep the unlocked record: %+v", states[0])
	}
	if !states[0].UnlockedAt.Equal(unlockedAt) {
		t.Errorf("unlock timestamp lost in dedupe: %v", states[0].UnlockedAt)
	}

	// Corrupt store must be rewritten to exactly one record per id.
	records, _ := store.GetRecords(context.Background())
	if len(records) != 2 {
		t.Errorf("expected 2 records after self-heal, got %d", len(records))
	}
	if store.clears != 1 {
		t.Errorf("expected one clear during rewrite, got %d", store.clears)
	}
}

func TestRegistry_DedupePrefersHigherProgress(t *testing.T) {
	store := &fakeStore{records: []domain.AchievementState{
		{ID: "hours_10", Progress: 20},
		{ID: "hours_10", Progress: 70},
		{ID: "streak_3"},
	}}
	reg := achievement.NewRegistry(store, testDefs(), zap.NewNop())

	states, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if states[0].Progress != 70 {
		t.Errorf("dedupe must keep higher progress, got %d", states[0].Progress)
	}
}

func TestRegistry_NewCatalogEntryGetsDefaultState(t *testing.T) {
	store := &fakeStore{records: []domain.AchievementState{
		{ID: "hours_10", Progress: 50},
	}}
	reg := achievement.NewRegistry(store, testDefs(), zap.NewNop())

	states, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if states[1].ID != "streak_3" || states[1].Progress != 0 || states[1].Unlocked {
		t.Errorf("new catalog entry must start locked at 0%%: %+v", states[1])
	}
	if _, ok := store.get("streak_3"); !ok {
		t.Error("new entry's default state must be persisted")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Engine (Orchestrator) Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_UnlockPersistsAndNotifiesOnce(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	engine := newTestEngine(store, notifier, now, testDefs())

	sessions := hoursOfSessions(now.Add(-24*time.Hour), 10)
	newly, err := engine.CheckAndUnlock(context.Background(), sessions, nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(newly) != 1 || newly[0].ID != "hours_10" {
		t.Fatalf("expected hours_10 to unlock, got %+v", newly)
	}

	rec, ok := store.get("hours_10")
	if !ok || !rec.Unlocked || rec.Progress != 100 {
		t.Errorf("unlock not persisted: %+v", rec)
	}
	if rec.UnlockedAt.IsZero() {
		t.Error("unlockedAt must be stamped")
	}
	if notifier.count("Ten Hours") != 1 {
		t.Errorf("expected exactly 1 notification, got %d", notifier.count("Ten Hours"))
	}

	// Repeated passes must not re-unlock or re-notify.
	for i := 0; i < 3; i++ {
		again, err := engine.CheckAndUnlock(context.Background(), sessions, nil)
		if err != nil {
			t.Fatalf("repeat check: %v", err)
		}
		if len(again) != 0 {
			t.Errorf("already unlocked achievement returned again: %+v", again)
		}
	}
	if notifier.count("Ten Hours") != 1 {
		t.Errorf("notification fired more than once: %d", notifier.count("Ten Hours"))
	}
}

func TestEngine_ProgressNeverRegresses(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	store := &fakeStore{}
	engine := newTestEngine(store, &fakeNotifier{}, now, testDefs())

	// Two-day streak: 2/3 = 67%.
	sessions := []domain.Session{
		{StartedAt: now.AddDate(0, 0, -1), Duration: time.Hour, Category: "a"},
		{StartedAt: now, Duration: time.Hour, Category: "a"},
	}
	if _, err := engine.CheckAndUnlock(context.Background(), sessions, nil); err != nil {
		t.Fatalf("first check: %v", err)
	}
	rec, _ := store.get("streak_3")
	if rec.Progress != 67 {
		t.Fatalf("expected 67%% after 2-day streak, got %d%%", rec.Progress)
	}

	// Streak broken: metric drops to 0, but stored progress must hold.
	if _, err := engine.CheckAndUnlock(context.Background(), nil, nil); err != nil {
		t.Fatalf("second check: %v", err)
	}
	rec, _ = store.get("streak_3")
	if rec.Progress != 67 {
		t.Errorf("progress regressed to %d%%", rec.Progress)
	}
}

func TestEngine_PersistFailureSkipsOnlyThatAchievement(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	engine := newTestEngine(store, notifier, now, testDefs())

	// Seed cleanly, then make writes for one id start failing.
	if _, err := engine.Achievements(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	store.mu.Lock()
	store.failPut = map[string]error{"hours_10": errors.New("disk full")}
	store.mu.Unlock()

	// 12 hours over 3 consecutive days meets both thresholds.
	sessions := append(
		hoursOfSessions(now.AddDate(0, 0, -2), 4),
		append(hoursOfSessions(now.AddDate(0, 0, -1), 4), hoursOfSessions(now, 4)...)...,
	)

	newly, err := engine.CheckAndUnlock(context.Background(), sessions, nil)
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}

	if len(newly) != 1 || newly[0].ID != "streak_3" {
		t.Fatalf("expected only streak_3 to unlock, got %+v", newly)
	}
	if notifier.count("Ten Hours") != 0 {
		t.Error("failed persist must not notify")
	}

	rec, _ := store.get("hours_10")
	if rec.Unlocked {
		t.Error("failed persist must not show as unlocked")
	}

	// Next pass with a healthy store picks it up.
	store.mu.Lock()
	store.failPut = nil
	store.mu.Unlock()
	newly, err = engine.CheckAndUnlock(context.Background(), sessions, nil)
	if err != nil {
		t.Fatalf("recovery check: %v", err)
	}
	if len(newly) != 1 || newly[0].ID != "hours_10" {
		t.Fatalf("expected hours_10 to unlock on retry, got %+v", newly)
	}
	if notifier.count("Ten Hours") != 1 {
		t.Errorf("expected 1 notification after recovery, got %d", notifier.count("Ten Hours"))
	}
}

func TestEngine_UnknownRequirementNeverUnlocks(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	defs := append(testDefs(), domain.AchievementDef{
		ID: "mystery", Title: "Mystery",
		Requirement: domain.Requirement{Type: "swim_laps", Value: 1},
	})
	store := &fakeStore{}
	engine := newTestEngine(store, &fakeNotifier{}, now, defs)

	sessions := hoursOfSessions(now, 20)
	newly, err := engine.CheckAndUnlock(context.Background(), sessions, nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, a := range newly {
		if a.ID == "mystery" {
			t.Error("unknown requirement type unlocked")
		}
	}
	rec, _ := store.get("mystery")
	if rec.Unlocked || rec.Progress != 0 {
		t.Errorf("unknown requirement must stay locked at 0%%: %+v", rec)
	}
}

func TestEngine_NotificationFailureDoesNotRollBackUnlock(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("dispatcher down")}
	engine := newTestEngine(store, notifier, now, testDefs())

	sessions := hoursOfSessions(now, 10)
	newly, err := engine.CheckAndUnlock(context.Background(), sessions, nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(newly) != 1 {
		t.Fatalf("unlock must survive notification failure, got %+v", newly)
	}
	rec, _ := store.get("hours_10")
	if !rec.Unlocked {
		t.Error("unlock rolled back after notification failure")
	}
	if rec.Notified {
		t.Error("failed notification must not be marked delivered")
	}
}

func TestEngine_ConcurrentInitSeedsOnce(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(store, &fakeNotifier{}, time.Now(), testDefs())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Achievements(context.Background()); err != nil {
				t.Errorf("achievements: %v", err)
			}
		}()
	}
	wg.Wait()

	records, _ := store.GetRecords(context.Background())
	if len(records) != 2 {
		t.Errorf("racing init seeded %d records, want 2", len(records))
	}
	if store.puts != 2 {
		t.Errorf("racing init wrote %d times, want 2", store.puts)
	}
}
