package cache

import (
	"context"
	"sync"
	"time"

	"github.com/milburnr/fcs-site-sub010/internal/metrics"
)

// Store caches rendered documents by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Name() string
}

type entry struct {
	value []byte
	exp   time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns a Memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: map[string]entry{}, ttl: ttl, now: time.Now}
}

func (c *Memory) Name() string { return "memory" }

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.exp) {
		metrics.CacheLookups.WithLabelValues(c.Name(), "miss").Inc()
		return nil, false, nil
	}
	metrics.CacheLookups.WithLabelValues(c.Name(), "hit").Inc()
	return e.value, true, nil
}

func (c *Memory) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.exp) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{value: value, exp: now.Add(c.ttl)}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Name() string { return "none" }

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte) error { return nil }
