package cache

import (
	"sync"
	"time"
)

// TokenCache remembers token-validation outcomes for a bounded time so
// repeated requests skip signature verification. Entries are keyed by a
// fingerprint of the credential carrier. The cache is size-bounded:
// once it grows past maxEntries, expired entries are swept out on the
// next write.
type TokenCache struct {
	mu         sync.Mutex
	entries    map[string]tokenEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type tokenEntry struct {
	valid   bool
	expires time.Time
}

// NewTokenCache creates a cache with the given entry TTL and size bound.
func NewTokenCache(ttl time.Duration, maxEntries int) *TokenCache {
	return &TokenCache{
		entries:    make(map[string]tokenEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached verdict for key and whether a live entry exists.
func (c *TokenCache) Get(key string) (valid, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.expires.Before(c.now()) {
		return false, false
	}
	return entry.valid, true
}

// Set records a verdict for key, sweeping expired entries when the
// cache has grown past its size bound.
func (c *TokenCache) Set(key string, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = tokenEntry{valid: valid, expires: c.now().Add(c.ttl)}

	if len(c.entries) > c.maxEntries {
		now := c.now()
		for k, e := range c.entries {
			if e.expires.Before(now) {
				delete(c.entries, k)
			}
		}
	}
}

// Len reports the current number of entries, live or expired.
func (c *TokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
