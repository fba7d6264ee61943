package currency

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Cache wraps a Fetcher with a single-slot, time-bounded snapshot cache. The
// slot is the only mutable state shared across requests: readers take the
// fast path under a read lock, and a refresh replaces the snapshot as one
// value so no caller ever observes a partially built rate set.
//
// A failed fetch is answered with the static fallback table but deliberately
// NOT cached, so a transient provider outage is retried on the next call
// instead of sticking for the full freshness window.
type Cache struct {
	fetcher Fetcher
	base    string
	window  time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	snapshot  Snapshot
	expiresAt time.Time
	primed    bool
}

// NewCache builds a cache around the fetcher. window is the freshness window
// after which a cached snapshot is eligible for refresh.
func NewCache(fetcher Fetcher, base string, window time.Duration, logger zerolog.Logger) *Cache {
	if window <= 0 {
		window = time.Hour
	}
	return &Cache{
		fetcher: fetcher,
		base:    base,
		window:  window,
		logger:  logger.With().Str("component", "currency_cache").Logger(),
		now:     time.Now,
	}
}

// GetRates returns the cached snapshot when it is still fresh, otherwise
// refreshes it through the fetcher. Concurrent misses may each issue a fetch;
// last write wins and every caller still gets a complete snapshot.
func (c *Cache) GetRates(ctx context.Context) Snapshot {
	now := c.now()

	c.mu.RLock()
	if c.primed && now.Before(c.expiresAt) {
		snap := c.snapshot
		c.mu.RUnlock()
		return snap
	}
	c.mu.RUnlock()

	rates, err := c.fetcher.Fetch(ctx, c.base, TargetCurrencies)
	if err != nil {
		c.logger.Warn().Err(err).Msg("rate fetch failed, serving fallback table")
		return FallbackSnapshot(now)
	}

	snap := Snapshot{
		Base:        c.base,
		Rates:       rates,
		Success:     true,
		LastUpdated: now,
	}

	c.mu.Lock()
	c.snapshot = snap
	c.expiresAt = now.Add(c.window)
	c.primed = true
	c.mu.Unlock()

	return snap
}
