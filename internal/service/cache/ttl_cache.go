package cache

import (
	"sync"
	"time"
)

type entry struct {
	v   any
	exp time.Time
	at  time.Time
}

// TTLCache is a small bounded memo cache for parsed datasets. When full
// it evicts the least recently used entry.
type TTLCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	cap int
}

func NewTTLCache(capacity int) *TTLCache {
	if capacity <= 0 {
		capacity = 64
	}
	return &TTLCache{m: make(map[string]entry), cap: capacity}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	c.mu.Lock()
	e.at = time.Now()
	c.m[key] = e
	c.mu.Unlock()
	return e.v, true
}

func (c *TTLCache) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	now := time.Now()
	c.mu.Lock()
	if _, ok := c.m[key]; !ok && len(c.m) >= c.cap {
		c.evictOldest()
	}
	c.m[key] = entry{v: v, exp: exp, at: now}
	c.mu.Unlock()
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

// evictOldest assumes c.mu is held.
func (c *TTLCache) evictOldest() {
	var oldest string
	var oldestAt time.Time
	first := true
	for k, e := range c.m {
		if first || e.at.Before(oldestAt) {
			oldest, oldestAt, first = k, e.at, false
		}
	}
	if !first {
		delete(c.m, oldest)
	}
}
