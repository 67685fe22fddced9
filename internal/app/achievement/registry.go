package achievement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/domain"
)

// Registry reconciles the immutable catalog with persisted state.
// The catalog is the source of truth for definitions; the record store
// is the source of truth for unlock/progress state.
type Registry struct {
	store domain.RecordStore
	defs  []domain.AchievementDef
	log   *zap.Logger
}

// NewRegistry creates a registry over the given store and catalog.
func NewRegistry(store domain.RecordStore, defs []domain.AchievementDef, log *zap.Logger) *Registry {
	return &Registry{store: store, defs: defs, log: log}
}

// Definitions returns the catalog in its canonical order.
func (r *Registry) Definitions() []domain.AchievementDef {
	return r.defs
}

// Load returns one state per catalog entry, in catalog order.
//
// First run (empty store): every entry is seeded locked at 0% and the
// full set is persisted. Subsequent runs: persisted state is preserved,
// entries added to the catalog since the last run get default state, and
// duplicate records sharing an id (tolerated data corruption) are
// collapsed — preferring the unlocked record, then the higher progress —
// after which the corrected set is rewritten. On already-clean data Load
// performs zero writes, so running it twice in a row is a no-op.
func (r *Registry) Load(ctx context.Context) ([]domain.AchievementState, error) {
	records, err := r.store.GetRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load achievement records: %w", err)
	}

	if len(records) == 0 {
		return r.seed(ctx)
	}

	byID, duplicates := collapse(records)
	if duplicates > 0 {
		r.log.Warn("collapsed duplicate achievement records",
			zap.Int("duplicates", duplicates))
	}

	states := make([]domain.AchievementState, 0, len(r.defs))
	var added []domain.AchievementState
	for _, def := range r.defs {
		state, ok := byID[def.ID]
		if !ok {
			// Newly added to the catalog since the last run.
			state = domain.AchievementState{ID: def.ID}
			added = append(added, state)
		}
		if state.Unlocked && state.Progress != 100 {
			state.Progress = 100 // unlocked records are always pinned
			added = append(added, state)
		}
		states = append(states, state)
	}

	if duplicates > 0 {
		// Self-heal: rewrite the corrected set in one pass.
		if err := r.store.ClearRecords(ctx); err != nil {
			return nil, fmt.Errorf("clear corrupt records: %w", err)
		}
		for _, state := range states {
			if err := r.store.PutRecord(ctx, state); err != nil {
				return nil, fmt.Errorf("rewrite record %s: %w", state.ID, err)
			}
		}
		return states, nil
	}

	for _, state := range added {
		if err := r.store.PutRecord(ctx, state); err != nil {
			return nil, fmt.Errorf("persist record %s: %w", state.ID, err)
		}
	}
	return states, nil
}

// seed initializes and persists default state for the whole catalog.
func (r *Registry) seed(ctx context.Context) ([]domain.AchievementState, error) {
	states := make([]domain.AchievementState, 0, len(r.defs))
	for _, def := range r.defs {
		state := domain.AchievementState{ID: def.ID}
		if err := r.store.PutRecord(ctx, state); err != nil {
			return nil, fmt.Errorf("seed record %s: %w", def.ID, err)
		}
		states = append(states, state)
	}
	r.log.Info("seeded achievement state", zap.Int("count", len(states)))
	return states, nil
}

// collapse folds records into one per id and reports how many duplicates
// were discarded.
func collapse(records []domain.AchievementState) (map[string]domain.AchievementState, int) {
	byID := make(map[string]domain.AchievementState, len(records))
	duplicates := 0
	for _, rec := range records {
		existing, ok := byID[rec.ID]
		if !ok {
			byID[rec.ID] = rec
			continue
		}
		duplicates++
		byID[rec.ID] = better(existing, rec)
	}
	return byID, duplicates
}

// better picks the record to keep when two share an id: the unlocked one,
// then the one with higher progress, then the one already notified.
func better(a, b domain.AchievementState) domain.AchievementState {
	if a.Unlocked != b.Unlocked {
		if b.Unlocked {
			return b
		}
		return a
	}
	if b.Progress > a.Progress {
		return b
	}
	if b.Progress == a.Progress && b.Notified && !a.Notified {
		return b
	}
	return a
}
