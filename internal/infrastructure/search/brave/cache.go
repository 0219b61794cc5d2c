package brave

import (
	"sync"
	"time"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

// queryCache is a bounded TTL cache keyed by the raw query string. When full
// it evicts the oldest entry. Expired entries are dropped lazily on lookup.
type queryCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]cacheEntry
	order    []string
	nowFn    func() time.Time
}

type cacheEntry struct {
	results   []domain.SearchResult
	expiresAt time.Time
}

func newQueryCache(capacity int, ttl time.Duration) *queryCache {
	return &queryCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry, capacity),
		order:    make([]string, 0, capacity),
		nowFn:    time.Now,
	}
}

func (c *queryCache) get(query string) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	if c.nowFn().After(entry.expiresAt) {
		delete(c.entries, query)
		c.dropFromOrder(query)
		return nil, false
	}
	return entry.results, true
}

func (c *queryCache) put(query string, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[query]; ok {
		c.dropFromOrder(query)
	} else if len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[query] = cacheEntry{
		results:   results,
		expiresAt: c.nowFn().Add(c.ttl),
	}
	c.order = append(c.order, query)
}

func (c *queryCache) dropFromOrder(query string) {
	for i, key := range c.order {
		if key == query {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
