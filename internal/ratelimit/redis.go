package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cultofdrive/internal/cache"
)

const redisTimeout = 500 * time.Millisecond

// RedisStore keeps windows in Redis so every instance shares the same counters.
// When Redis fails it falls back to a process-local MemoryStore.
type RedisStore struct {
	cache    *cache.Client
	prefix   string
	limit    int
	period   time.Duration
	fallback *MemoryStore
	logger   *zap.Logger
}

// NewRedisStore creates a store whose keys are prefix + identifier.
func NewRedisStore(c *cache.Client, prefix string, limit int, period time.Duration, fallback *MemoryStore, logger *zap.Logger) *RedisStore {
	if fallback == nil {
		fallback = NewMemoryStore(limit, period)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		cache:    c,
		prefix:   prefix,
		limit:    limit,
		period:   period,
		fallback: fallback,
		logger:   logger,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	count, err := s.cache.IncrWindow(ctx, s.prefix+identifier, s.period)
	if err != nil {
		s.logger.Warn("rate limit store unavailable, using local counters", zap.Error(err))
		return s.fallback.Allow(identifier)
	}
	return count <= int64(s.limit), nil
}
