package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const keyPrefix = "taskboard:config:"

// cachedEntry is the JSON shape stored in redis.
type cachedEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
	SortOrder int    `json:"sortOrder"`
}

// RedisConfigCache shares config lists between API instances. Redis errors
// degrade to cache misses; the caller then reads the repository.
type RedisConfigCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisConfigCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisConfigCache {
	if client == nil {
		panic("cache.NewRedisConfigCache: redis client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = zap.L()
	}
	return &RedisConfigCache{client: client, ttl: ttl, logger: logger}
}

var _ ports.ConfigCache = (*RedisConfigCache)(nil)

func (c *RedisConfigCache) Get(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, bool) {
	data, err := c.client.Get(ctx, cacheKey(kind)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("config cache read failed", zap.String("kind", string(kind)), zap.Error(err))
			_ = c.client.Del(ctx, cacheKey(kind)).Err()
		}
		return nil, false
	}

	var cached []cachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		_ = c.client.Del(ctx, cacheKey(kind)).Err()
		return nil, false
	}

	entries := make([]domain.ConfigEntry, 0, len(cached))
	for _, e := range cached {
		entries = append(entries, domain.ConfigEntry{
			ID:        e.ID,
			Kind:      kind,
			Name:      e.Name,
			Code:      e.Code,
			Color:     e.Color,
			IsDefault: e.IsDefault,
			SortOrder: e.SortOrder,
		})
	}
	return entries, true
}

// Generation reads the invalidation counter of kind; a missing counter is
// generation zero.
func (c *RedisConfigCache) Generation(ctx context.Context, kind domain.ConfigKind) (int64, bool) {
	generation, err := c.client.Get(ctx, generationKey(kind)).Int64()
	switch {
	case err == nil:
		return generation, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		c.logger.Warn("config cache generation read failed", zap.String("kind", string(kind)), zap.Error(err))
		return 0, false
	}
}

// Set writes entries in a WATCH transaction on the generation key, so an
// invalidation from any instance after generation was read drops the write.
func (c *RedisConfigCache) Set(ctx context.Context, kind domain.ConfigKind, generation int64, entries []domain.ConfigEntry) {
	if c.ttl == 0 {
		return
	}
	cached := make([]cachedEntry, 0, len(entries))
	for _, e := range entries {
		cached = append(cached, cachedEntry{
			ID:        e.ID,
			Name:      e.Name,
			Code:      e.Code,
			Color:     e.Color,
			IsDefault: e.IsDefault,
			SortOrder: e.SortOrder,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}

	genKey := generationKey(kind)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cacheKey(kind), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("config cache write skipped after invalidation", zap.String("kind", string(kind)))
	default:
		c.logger.Warn("config cache write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (c *RedisConfigCache) Invalidate(ctx context.Context, kind domain.ConfigKind) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(kind))
		pipe.Del(ctx, cacheKey(kind))
		return nil
	})
	if err != nil {
		c.logger.Warn("config cache invalidation failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

var errStaleGeneration = errors.New("config cache generation changed")

func cacheKey(kind domain.ConfigKind) string {
	return keyPrefix + string(kind)
}

func generationKey(kind domain.ConfigKind) string {
	return keyPrefix + string(kind) + ":generation"
}
