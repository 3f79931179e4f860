package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appshift "github.com/pos/backend/internal/application/shift"
)

// InMemoryLiveTotalsCache implements LiveTotalsCache with process-local
// storage. Suitable for single-instance deployments and tests; entries
// expire lazily on read.
type InMemoryLiveTotalsCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]liveTotalsEntry
	ttl     time.Duration
}

type liveTotalsEntry struct {
	totals    appshift.LiveTotalsResponse
	expiresAt time.Time
}

// NewInMemoryLiveTotalsCache creates a new in-memory live totals cache
func NewInMemoryLiveTotalsCache(ttl time.Duration) *InMemoryLiveTotalsCache {
	return &InMemoryLiveTotalsCache{
		entries: make(map[uuid.UUID]liveTotalsEntry),
		ttl:     ttl,
	}
}

// Get returns the cached totals for a shift, if present and fresh
func (c *InMemoryLiveTotalsCache) Get(_ context.Context, shiftID uuid.UUID) (*appshift.LiveTotalsResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[shiftID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, shiftID)
		c.mu.Unlock()
		return nil, false
	}

	totals := entry.totals
	return &totals, true
}

// Set stores the totals for a shift under the configured TTL
func (c *InMemoryLiveTotalsCache) Set(_ context.Context, shiftID uuid.UUID, totals *appshift.LiveTotalsResponse) {
	if totals == nil {
		return
	}
	c.mu.Lock()
	c.entries[shiftID] = liveTotalsEntry{
		totals:    *totals,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops the cached totals for a shift
func (c *InMemoryLiveTotalsCache) Invalidate(_ context.Context, shiftID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, shiftID)
	c.mu.Unlock()
}

// Ensure InMemoryLiveTotalsCache implements LiveTotalsCache
var _ appshift.LiveTotalsCache = (*InMemoryLiveTotalsCache)(nil)
