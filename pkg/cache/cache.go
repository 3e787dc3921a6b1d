// Package cache provides a Redis-backed JSON cache-aside layer.
// A cache with no configured URL is disabled: reads miss and writes are dropped.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/reel/pkg/lifecycle"
)

// Recorder observes cache lookups.
type Recorder interface {
	RecordCache(hit bool)
}

// System is a JSON cache keyed by string.
type System interface {
	// Start registers ping and close hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// Enabled reports whether a Redis client is configured.
	Enabled() bool
	// Get decodes the value at key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores v at key for ttl.
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	rdb         *redis.Client
	prefix      string
	pingTimeout time.Duration
	recorder    Recorder
	logger      *slog.Logger
}

// New creates a cache from cfg. An empty URL yields a disabled cache.
// recorder may be nil.
func New(cfg *Config, logger *slog.Logger, recorder Recorder) (System, error) {
	c := &redisCache{
		prefix:      cfg.KeyPrefix,
		pingTimeout: cfg.PingTimeoutDuration(),
		recorder:    recorder,
		logger:      logger.With("system", "cache"),
	}

	if cfg.URL == "" {
		c.logger.Info("no redis url configured, caching disabled")
		return c, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c.rdb = redis.NewClient(opts)
	return c, nil
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	if c.rdb == nil {
		return nil
	}

	c.logger.Info("starting cache")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), c.pingTimeout)
		defer cancel()

		if err := c.rdb.Ping(ctx).Err(); err != nil {
			c.logger.Error("redis ping failed", "error", err)
			return
		}
		c.logger.Info("redis connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := c.rdb.Close(); err != nil {
			c.logger.Error("redis close failed", "error", err)
			return
		}
		c.logger.Info("redis connection closed")
	})

	return nil
}

func (c *redisCache) Enabled() bool {
	return c.rdb != nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(false)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	c.record(true)
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.rdb.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}

	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *redisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *redisCache) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordCache(hit)
	}
}

// Key joins parts with ':' to form a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
