package interfaces

import (
	"context"
	"time"

	"ritual_desk/internal/domain/entities"
)

// ISummaryCache stores analytics summaries keyed by window.
type ISummaryCache interface {
	Get(ctx context.Context, key string) (entities.AnalyticsSummary, bool, error)
	Set(ctx context.Context, key string, s entities.AnalyticsSummary, ttl time.Duration) error
}
