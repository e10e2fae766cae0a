package products

import (
	"context"
	"sync"
	"time"

	"github.com/bancoplus/catalog/model"
)

const defaultListTTL = 5 * time.Minute

// ListCache shares one snapshot of the product collection between the list
// screen and the edit-prefill workflow. The remote collection is externally
// owned and eventually consistent: after a successful create, update, or
// delete the caller invalidates the snapshot and the next Get refetches.
type ListCache struct {
	repo Repository
	ttl  time.Duration

	mu        sync.RWMutex
	snapshot  []model.Product
	expiresAt time.Time
	valid     bool
}

// NewListCache creates a ListCache over the given repository. A
// non-positive ttl falls back to five minutes.
func NewListCache(repo Repository, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &ListCache{repo: repo, ttl: ttl}
}

// Get returns the cached collection, fetching through the repository on a
// miss or after expiry. Fetch failures are not cached.
func (c *ListCache) Get(ctx context.Context) ([]model.Product, error) {
	c.mu.RLock()
	if c.valid && time.Now().Before(c.expiresAt) {
		snapshot := c.snapshot
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()

	list, err := c.repo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = list
	c.expiresAt = time.Now().Add(c.ttl)
	c.valid = true
	c.mu.Unlock()

	return list, nil
}

// Invalidate drops the snapshot so the next Get refetches.
func (c *ListCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.valid = false
	c.mu.Unlock()
}
