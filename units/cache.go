package units

import "sync"

// Cache maps metric names to resolved unit strings. It is scoped to one
// document run and injected into the Engine, so tests can assert hit counts
// without cross-test leakage.
type Cache interface {
	Get(metric string) (string, bool)
	Set(metric, unit string)
}

// MemoryCache is the in-memory Cache used for normal runs. Safe for
// concurrent use.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]string)}
}

func (c *MemoryCache) Get(metric string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	unit, ok := c.m[metric]
	return unit, ok
}

func (c *MemoryCache) Set(metric, unit string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[metric] = unit
}

// Len returns the number of cached metrics.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
