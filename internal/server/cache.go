package server

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

// Cache is a minimal in-memory TTL cache safe for concurrent access. The
// server uses it to reuse responses of read-only tools when caching is
// enabled; expired entries are dropped lazily on read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache constructs an empty Cache instance.
func NewCache() *Cache { return &Cache{entries: make(map[string]cacheEntry)} }

// Set stores a value with a time-to-live for the given key.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: time.Now().Add(ttl)}
}

// Get retrieves a non-expired value for the key, returning false if missing
// or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}
