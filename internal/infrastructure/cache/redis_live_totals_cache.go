package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appshift "github.com/pos/backend/internal/application/shift"
)

// RedisLiveTotalsCache caches the live totals projection for open shifts in
// Redis with a short TTL. Cache failures are logged and swallowed; the
// caller always gets a usable answer by recomputing.
type RedisLiveTotalsCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NewRedisLiveTotalsCache creates a Redis-backed live totals cache
func NewRedisLiveTotalsCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisLiveTotalsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisLiveTotalsCacheWithClient(client, ttl, logger), nil
}

// NewRedisLiveTotalsCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisLiveTotalsCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLiveTotalsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLiveTotalsCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: "shift:live_totals:",
		logger:    logger,
	}
}

// Get returns the cached totals for a shift, if present and decodable
func (c *RedisLiveTotalsCache) Get(ctx context.Context, shiftID uuid.UUID) (*appshift.LiveTotalsResponse, bool) {
	payload, err := c.client.Get(ctx, c.keyPrefix+shiftID.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("live totals cache read failed",
				zap.String("shift_id", shiftID.String()),
				zap.Error(err))
		}
		return nil, false
	}

	var totals appshift.LiveTotalsResponse
	if err := json.Unmarshal(payload, &totals); err != nil {
		c.logger.Warn("live totals cache entry undecodable",
			zap.String("shift_id", shiftID.String()),
			zap.Error(err))
		return nil, false
	}
	return &totals, true
}

// Set stores the totals for a shift under the configured TTL
func (c *RedisLiveTotalsCache) Set(ctx context.Context, shiftID uuid.UUID, totals *appshift.LiveTotalsResponse) {
	payload, err := json.Marshal(totals)
	if err != nil {
		c.logger.Warn("live totals cache encode failed",
			zap.String("shift_id", shiftID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.keyPrefix+shiftID.String(), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("live totals cache write failed",
			zap.String("shift_id", shiftID.String()),
			zap.Error(err))
	}
}

// Invalidate drops the cached totals for a shift
func (c *RedisLiveTotalsCache) Invalidate(ctx context.Context, shiftID uuid.UUID) {
	if err := c.client.Del(ctx, c.keyPrefix+shiftID.String()).Err(); err != nil {
		c.logger.Warn("live totals cache invalidation failed",
			zap.String("shift_id", shiftID.String()),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisLiveTotalsCache) Close() error {
	return c.client.Close()
}

// Ensure RedisLiveTotalsCache implements LiveTotalsCache
var _ appshift.LiveTotalsCache = (*RedisLiveTotalsCache)(nil)
