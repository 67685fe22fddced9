package achievement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tempo-track/tempo/internal/app/stats"
	"github.com/tempo-track/tempo/internal/domain"
	"github.com/tempo-track/tempo/internal/infra/metrics"
)

// Engine is the unlock orchestrator. It owns the in-memory achievement
// list; external callers only read snapshots of it. Evaluation passes are
// serialized behind a mutex so concurrent triggers cannot regress
// progress, and catalog initialization is guarded by singleflight so
// racing startups seed exactly once.
type Engine struct {
	store    domain.RecordStore
	notifier domain.Notifier
	registry *Registry
	log      *zap.Logger
	now      func() time.Time

	init singleflight.Group

	mu     sync.Mutex
	states []domain.AchievementState // catalog order
	loaded bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCatalog overrides the built-in catalog.
func WithCatalog(defs []domain.AchievementDef) Option {
	return func(e *Engine) { e.registry = NewRegistry(e.store, defs, e.log) }
}

// NewEngine creates an achievement engine over the given collaborators.
func NewEngine(store domain.RecordStore, notifier domain.Notifier, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
	e.registry = NewRegistry(store, Catalog(), log)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ensureLoaded initializes in-memory state from the registry exactly once.
// Concurrent callers share the same in-flight load instead of re-seeding.
func (e *Engine) ensureLoaded(ctx context.Context) error {
	e.mu.Lock()
	loaded := e.loaded
	e.mu.Unlock()
	if loaded {
		return nil
	}

	_, err, _ := e.init.Do("load", func() (any, error) {
		states, err := e.registry.Load(ctx)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.states = states
		e.loaded = true
		e.mu.Unlock()
		return nil, nil
	})
	return err
}

// CheckAndUnlock evaluates every locked achievement against the given
// sessions and goals and returns the newly unlocked ones.
//
// The snapshot is computed once per pass. Persistence is write-then-
// reflect: a state change is written to the store first and only mirrored
// in memory on success, so a crash cannot show an unlock that did not
// survive. A persist failure skips that achievement for this pass and
// processing continues; only a failed load of the whole list is fatal.
// Notification happens after the unlock committed, exactly once.
func (e *Engine) CheckAndUnlock(ctx context.Context, sessions []domain.Session, goals []domain.Goal) ([]domain.Achievement, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	metrics.AchievementChecks.Inc()
	snap := stats.Compute(sessions, goals, e.now())

	var newly []domain.Achievement
	for i, def := range e.registry.Definitions() {
		state := e.states[i]
		if state.Unlocked {
			continue
		}

		eval, err := Evaluate(def, snap)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownRequirement) {
				e.log.Warn("skipping achievement with unknown requirement",
					zap.String("id", def.ID),
					zap.String("type", string(def.Requirement.Type)))
				continue
			}
			return newly, err
		}

		// Progress never regresses, even if the metric dropped
		// (e.g. a broken streak).
		progress := state.Progress
		if eval.Progress > progress {
			progress = eval.Progress
		}

		if eval.Unlock {
			updated := state
			updated.Unlocked = true
			updated.UnlockedAt = e.now()
			updated.Progress = 100
			if err := e.store.PutRecord(ctx, updated); err != nil {
				metrics.AchievementPersistFailures.Inc()
				e.log.Error("persist unlock failed, skipping this pass",
					zap.String("id", def.ID), zap.Error(err))
				continue
			}
			e.states[i] = updated
			metrics.AchievementUnlocks.Inc()
			newly = append(newly, domain.Achievement{AchievementDef: def, State: updated})
			e.notifyUnlocked(ctx, i, def)
			continue
		}

		if progress != state.Progress {
			updated := state
			updated.Progress = progress
			if err := e.store.PutRecord(ctx, updated); err != nil {
				metrics.AchievementPersistFailures.Inc()
				e.log.Error("persist progress failed, skipping this pass",
					zap.String("id", def.ID), zap.Error(err))
				continue
			}
			e.states[i] = updated
		}
	}

	return newly, nil
}

// notifyUnlocked fires the unlock notification after the state committed.
// Delivery failure is logged and swallowed — the unlock already persisted.
func (e *Engine) notifyUnlocked(ctx context.Context, i int, def domain.AchievementDef) {
	if err := e.notifier.NotifyUnlocked(ctx, def.Title, def.Description); err != nil {
		e.log.Warn("unlock notification failed",
			zap.String("id", def.ID), zap.Error(err))
		return
	}

	marked := e.states[i]
	marked.Notified = true
	if err := e.store.PutRecord(ctx, marked); err != nil {
		e.log.Warn("mark notified failed",
			zap.String("id", def.ID), zap.Error(err))
		return
	}
	e.states[i] = marked
}

// Achievements returns the catalog joined with current state, in catalog
// order, for display. The returned slice is a copy.
func (e *Engine) Achievements(ctx context.Context) ([]domain.Achievement, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Achievement, len(e.states))
	for i, def := range e.registry.Definitions() {
		out[i] = domain.Achievement{AchievementDef: def, State: e.states[i]}
	}
	return out, nil
}

// UnlockedCount returns how many achievements are unlocked.
func (e *Engine) UnlockedCount(ctx context.Context) (int, error) {
	all, err := e.Achievements(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range all {
		if a.State.Unlocked {
			n++
		}
	}
	return n, nil
}

// TotalCount returns the catalog size.
func (e *Engine) TotalCount() int {
	return len(e.registry.Definitions())
}

// Reset wipes all persisted achievement state and reseeds the catalog.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.ClearRecords(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	states, err := e.registry.seed(ctx)
	if err != nil {
		return err
	}
	e.states = states
	e.loaded = true
	return nil
}
