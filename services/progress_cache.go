package services

import (
	"sync"
	"time"
)

// ProgressCache is a small TTL cache for dashboard reads. It is an
// explicit object rather than free-floating package state so tests can
// own their own instance; mutating services invalidate the shared
// default.
type ProgressCache struct {
	mu        sync.RWMutex
	summary   *DashboardSummary
	fetchedAt time.Time
	ttl       time.Duration
}

// defaultProgressCache backs the services wired to config.DB. Review and
// selection writes invalidate it.
var defaultProgressCache = NewProgressCache(30 * time.Second)

func NewProgressCache(ttl time.Duration) *ProgressCache {
	return &ProgressCache{ttl: ttl}
}

func (c *ProgressCache) Get() (*DashboardSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.summary == nil || time.Since(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	summary := *c.summary
	return &summary, true
}

func (c *ProgressCache) Set(summary *DashboardSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *summary
	c.summary = &copied
	c.fetchedAt = time.Now()
}

func (c *ProgressCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = nil
}
