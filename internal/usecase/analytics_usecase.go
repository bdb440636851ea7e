package usecase

import (
	"context"
	"strconv"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/usecase/interfaces"
)

const (
	defaultAnalyticsWindowDays = 30
	maxAnalyticsWindowDays     = 365
	defaultSummaryTTL          = time.Minute
)

var ErrInvalidWindow = invalid("window days must be between 1 and %d", maxAnalyticsWindowDays)

type IAnalyticsUseCase interface {
	Summary(ctx context.Context, windowDays int) (entities.AnalyticsSummary, error)
}

// AnalyticsUseCase is read-only. The cache is optional.
type AnalyticsUseCase struct {
	repo  interfaces.IServiceRequestRepository
	cache interfaces.ISummaryCache
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
}

var _ IAnalyticsUseCase = (*AnalyticsUseCase)(nil)

func NewAnalyticsUseCase(repo interfaces.IServiceRequestRepository, cache interfaces.ISummaryCache, ttl time.Duration, log *logger.Logger) *AnalyticsUseCase {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &AnalyticsUseCase{repo: repo, cache: cache, ttl: ttl, log: orNop(log), now: utcNow}
}

// Summary rolls up the requests made during the last windowDays days.
// A window of 0 means the default of 30 days.
func (u *AnalyticsUseCase) Summary(ctx context.Context, windowDays int) (entities.AnalyticsSummary, error) {
	if windowDays == 0 {
		windowDays = defaultAnalyticsWindowDays
	}
	if windowDays < 1 || windowDays > maxAnalyticsWindowDays {
		return entities.AnalyticsSummary{}, ErrInvalidWindow
	}

	key := "analytics:summary:" + strconv.Itoa(windowDays)
	if u.cache != nil {
		s, ok, err := u.cache.Get(ctx, key)
		if err != nil {
			u.log.Warn("[analytics][usecase] cache read failed", "key", key, "err", err)
		} else if ok {
			return s, nil
		}
	}

	since := u.now().AddDate(0, 0, -windowDays)
	rs, err := u.repo.List(ctx, interfaces.RequestQuery{RequestedSince: &since})
	if err != nil {
		u.log.Error("[analytics][usecase] list failed", "window_days", windowDays, "err", err)
		return entities.AnalyticsSummary{}, storageError("list requests", err)
	}
	s := entities.Summarize(rs, since, windowDays)

	if u.cache != nil {
		if err := u.cache.Set(ctx, key, s, u.ttl); err != nil {
			u.log.Warn("[analytics][usecase] cache write failed", "key", key, "err", err)
		}
	}
	u.log.Debug("[analytics][usecase] summary computed", "window_days", windowDays, "total", s.TotalRequests)
	return s, nil
}
