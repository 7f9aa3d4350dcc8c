// ABOUTME: TTL-based seen-key cache for dropping redelivered reaction events
// ABOUTME: Size-capped with a background sweep; safe for concurrent handlers

package dedupe

import (
	"sync"
	"time"
)

// Cache tracks recently seen event keys so the bot processes each reaction
// or interaction once, even when the platform gateway redelivers events
// across reconnects. Entries expire after the TTL; when the cache is full,
// the oldest entries are dropped first.
type Cache struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	order   []string // keys in insertion order; may hold stale duplicates
	ttl     time.Duration
	maxSize int
	done    chan struct{}
	once    sync.Once
}

// New creates a cache with the given entry TTL and size cap, and starts a
// background goroutine that sweeps expired entries.
func New(ttl time.Duration, maxSize int) *Cache {
	c := &Cache{
		seen:    make(map[string]time.Time),
		ttl:     ttl,
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Seen atomically checks whether key was recorded within the TTL and records
// it if not. Returns true for a duplicate, false for a new key.
func (c *Cache) Seen(key string) bool {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if at, ok := c.seen[key]; ok && now.Sub(at) < c.ttl {
		return true
	}

	for len(c.seen) >= c.maxSize {
		c.dropOldest()
	}

	c.seen[key] = now
	c.order = append(c.order, key)
	return false
}

// dropOldest removes the entry at the front of the insertion order. A key
// re-marked after insertion appears twice in order; the front occurrence is
// then stale and popping it may evict the fresher timestamp, which only
// means a duplicate could slip through, never that a new event is dropped.
// Must be called with mu held.
func (c *Cache) dropOldest() {
	if len(c.order) == 0 {
		return
	}
	key := c.order[0]
	c.order = c.order[1:]
	delete(c.seen, key)
}

// sweepLoop periodically removes expired entries until Close is called.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep drops every expired entry and compacts the insertion order.
func (c *Cache) sweep() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, at := range c.seen {
		if now.Sub(at) >= c.ttl {
			delete(c.seen, key)
		}
	}

	kept := c.order[:0]
	for _, key := range c.order {
		if _, ok := c.seen[key]; ok {
			kept = append(kept, key)
		}
	}
	c.order = kept
}

// Close stops the background sweep. Safe to call multiple times.
func (c *Cache) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}
