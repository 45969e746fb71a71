package cache

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type memoryEntry struct {
	entries   []domain.ConfigEntry
	expiresAt time.Time
}

// MemoryConfigCache keeps config lists in process. It backs single instance
// deployments and tests; multi instance setups use RedisConfigCache so an
// invalidation on one node is seen by all of them.
type MemoryConfigCache struct {
	mu          sync.RWMutex
	ttl         time.Duration
	items       map[domain.ConfigKind]memoryEntry
	generations map[domain.ConfigKind]int64
	now         func() time.Time
}

func NewMemoryConfigCache(ttl time.Duration) *MemoryConfigCache {
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryConfigCache{
		ttl:         ttl,
		items:       make(map[domain.ConfigKind]memoryEntry),
		generations: make(map[domain.ConfigKind]int64),
		now:         time.Now,
	}
}

var _ ports.ConfigCache = (*MemoryConfigCache)(nil)

func (c *MemoryConfigCache) Get(_ context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, bool) {
	c.mu.RLock()
	item, ok := c.items[kind]
	c.mu.RUnlock()
	if !ok || c.now().After(item.expiresAt) {
		return nil, false
	}
	return append([]domain.ConfigEntry(nil), item.entries...), true
}

func (c *MemoryConfigCache) Generation(_ context.Context, kind domain.ConfigKind) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[kind], true
}

// Set stores entries unless kind was invalidated after generation was read.
func (c *MemoryConfigCache) Set(_ context.Context, kind domain.ConfigKind, generation int64, entries []domain.ConfigEntry) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[kind] != generation {
		return
	}
	c.items[kind] = memoryEntry{
		entries:   append([]domain.ConfigEntry(nil), entries...),
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *MemoryConfigCache) Invalidate(_ context.Context, kind domain.ConfigKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[kind]++
	delete(c.items, kind)
}
