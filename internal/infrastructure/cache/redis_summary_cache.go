package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ritual_desk:"

// RedisSummaryCache stores analytics summaries as JSON strings.
type RedisSummaryCache struct {
	rdb *redis.Client
}

var _ interfaces.ISummaryCache = (*RedisSummaryCache)(nil)

func NewRedisSummaryCache(rdb *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{rdb: rdb}
}

// NewRedisClient connects and pings with a short timeout. It returns nil when
// the server is unreachable; callers then run without the cache.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func (c *RedisSummaryCache) Get(ctx context.Context, key string) (entities.AnalyticsSummary, bool, error) {
	bs, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.AnalyticsSummary{}, false, nil
	}
	if err != nil {
		return entities.AnalyticsSummary{}, false, err
	}
	var s entities.AnalyticsSummary
	if err := json.Unmarshal(bs, &s); err != nil {
		return entities.AnalyticsSummary{}, false, err
	}
	return s, true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, key string, s entities.AnalyticsSummary, ttl time.Duration) error {
	bs, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+key, bs, ttl).Err()
}
