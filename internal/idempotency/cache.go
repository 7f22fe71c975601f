// Package idempotency provides best-effort, single-process duplicate
// suppression for send requests. Entries live for a fixed TTL and are not
// persisted across restarts; this is not a durable ledger.
package idempotency

import (
	"sync"
	"time"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

const (
	// DefaultTTL is how long a cached outcome is honored
	DefaultTTL = 24 * time.Hour
	// DefaultSweepInterval is how often the background sweep runs
	DefaultSweepInterval = time.Hour
)

// Entry is a cached terminal send outcome
type Entry struct {
	Status    int
	Result    model.SendResult
	ExpiresAt time.Time
}

// Cache is a concurrent-safe key→outcome store with TTL expiry and a
// background sweep. Start must be called to run the sweep and Stop to
// release it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	ttl           time.Duration
	sweepInterval time.Duration

	// now is swappable so tests can inject a deterministic clock
	now func() time.Time

	stop chan struct{}
	done chan struct{}
}

// Option configures a Cache
type Option func(*Cache)

// WithTTL overrides the entry TTL
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithSweepInterval overrides the background sweep interval
func WithSweepInterval(interval time.Duration) Option {
	return func(c *Cache) { c.sweepInterval = interval }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a Cache with the given options
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:       make(map[string]Entry),
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the background sweep goroutine
func (c *Cache) Start() {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweep and waits for it to exit
func (c *Cache) Stop() {
	close(c.stop)
	<-c.done
}

// Lookup returns the cached outcome for key. Entries past their expiry are
// purged and reported as absent.
func (c *Cache) Lookup(key string) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Store may have
		// refreshed the entry
		if current, stillThere := c.entries[key]; stillThere && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return Entry{}, false
	}

	return entry, true
}

// Store records a terminal outcome for key. A second store on the same key
// overwrites the first.
func (c *Cache) Store(key string, status int, result model.SendResult) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Status:    status,
		Result:    result,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) sweep() {
	now := c.now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
