package scraper

import (
	"sync"
	"time"
)

// Entry is one cached fetch result.
type Entry struct {
	Data      any
	Timestamp time.Time
}

// Cache memoizes fetch results for the life of the process. Entries are
// overwritten on re-fetch and never evicted. Concurrent requests for
// the same fingerprint are last-write-wins; the lock only keeps map
// access safe, it does not deduplicate in-flight fetches.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Put stores data under key, replacing any previous entry.
func (c *Cache) Put(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Data: data, Timestamp: time.Now()}
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached fingerprints in no particular order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Status reports "populated" or "empty".
func (c *Cache) Status() string {
	if c.Len() > 0 {
		return "populated"
	}
	return "empty"
}
