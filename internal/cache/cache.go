package cache

import (
	"context"
	"time"

	"go-counter-pos/internal/model"
)

// SummaryCache caches rendered summary lists for the UI. Invalidate is
// called after every ledger write or retraction.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]model.SummaryResponse, bool, error)
	Set(ctx context.Context, key string, value []model.SummaryResponse, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(_ context.Context, _ string) ([]model.SummaryResponse, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(_ context.Context, _ string, _ []model.SummaryResponse, _ time.Duration) error {
	return nil
}

func (NoopSummaryCache) Invalidate(_ context.Context) error {
	return nil
}
