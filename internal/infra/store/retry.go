// Package store decorates record stores with transient-failure handling.
// The achievement engine treats a rejected operation as "skip this
// achievement for the pass"; this wrapper absorbs short-lived failures
// before they get that far.
package store

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/domain"
	"github.com/tempo-track/tempo/internal/infra/metrics"
)

const defaultMaxRetries = 3

// Retrying wraps a RecordStore with bounded exponential backoff.
// Exhausted retries surface the last error unchanged.
type Retrying struct {
	inner      domain.RecordStore
	maxRetries uint64
	log        *zap.Logger
}

// NewRetrying wraps the given store. maxRetries <= 0 uses the default.
func NewRetrying(inner domain.RecordStore, maxRetries int, log *zap.Logger) *Retrying {
	retries := uint64(defaultMaxRetries)
	if maxRetries > 0 {
		retries = uint64(maxRetries)
	}
	return &Retrying{inner: inner, maxRetries: retries, log: log}
}

// GetRecords implements domain.RecordStore.
func (r *Retrying) GetRecords(ctx context.Context) ([]domain.AchievementState, error) {
	var records []domain.AchievementState
	err := r.retry(ctx, "get records", func() error {
		var err error
		records, err = r.inner.GetRecords(ctx)
		return err
	})
	return records, err
}

// PutRecord implements domain.RecordStore.
func (r *Retrying) PutRecord(ctx context.Context, state domain.AchievementState) error {
	return r.retry(ctx, "put record", func() error {
		return r.inner.PutRecord(ctx, state)
	})
}

// ClearRecords implements domain.RecordStore.
func (r *Retrying) ClearRecords(ctx context.Context) error {
	return r.retry(ctx, "clear records", func() error {
		return r.inner.ClearRecords(ctx)
	})
}

func (r *Retrying) retry(ctx context.Context, op string, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxInterval = time.Second

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err != nil && attempt <= int(r.maxRetries) {
			metrics.StoreRetries.Inc()
			r.log.Warn("record store operation failed, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, r.maxRetries), ctx))
}
