// Package querycache caches upstream query results for a short time,
// collapses concurrent identical queries into one call, and drops entries by
// entity tag when a mutation touches that entity.
package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/me/backoffice/internal/metrics"
)

// Defaults used when New is given non-positive values.
const (
	DefaultTTL  = 60 * time.Second
	DefaultSize = 512
)

// Lookup results reported to metrics.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultShared = "shared"
)

type entry struct {
	value any
	tags  []string
}

// Cache is a TTL-bounded LRU of query results indexed by tag. It is safe for
// concurrent use.
//
// Lock order: mu, then the LRU's own lock, then idxMu. The eviction callback
// only takes idxMu.
type Cache struct {
	lru   *expirable.LRU[string, entry]
	group singleflight.Group

	// mu serializes stores against invalidations. gen advances on every
	// invalidation; a fetch that started under an older generation does not
	// store its result.
	mu  sync.Mutex
	gen uint64

	idxMu sync.Mutex
	index map[string]map[string]struct{} // tag -> keys
}

// New creates a cache holding at most size entries for ttl each.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{index: make(map[string]map[string]struct{})}
	c.lru = expirable.NewLRU[string, entry](size, c.onEvict, ttl)
	return c
}

// FetchFunc loads the value for a cache miss.
type FetchFunc func(ctx context.Context) (any, error)

// Fetch returns the cached value for key, or calls fn to load it. Concurrent
// callers with the same key share one call to fn. Successful results are
// stored under tags; errors are returned to every waiting caller and never
// stored.
//
// fn runs detached from the cancellation of the caller that started it, so
// a caller that goes away does not fail the others waiting on the same key.
// Each caller stops waiting when its own ctx is done.
func (c *Cache) Fetch(ctx context.Context, key string, tags []string, fn FetchFunc) (any, error) {
	if e, ok := c.lru.Get(key); ok {
		metrics.RecordCache(ResultHit)
		return e.value, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	load := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := fn(load)
		if err != nil {
			return nil, err
		}
		c.store(key, v, tags, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.RecordCache(ResultShared)
		} else {
			metrics.RecordCache(ResultMiss)
		}
		return res.Val, res.Err
	}
}

// Invalidate drops every entry carrying any of tags and returns how many
// were dropped.
func (c *Cache) Invalidate(tags ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++

	c.idxMu.Lock()
	var keys []string
	for _, tag := range tags {
		n := 0
		for k := range c.index[tag] {
			keys = append(keys, k)
			n++
		}
		metrics.RecordInvalidation(tag, n)
	}
	c.idxMu.Unlock()

	// Remove calls onEvict, which takes idxMu.
	removed := 0
	for _, k := range keys {
		if c.lru.Remove(k) {
			removed++
		}
	}
	return removed
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// store adds v under key unless an invalidation happened since gen. The
// key is indexed before it becomes visible in the LRU.
func (c *Cache) store(key string, v any, tags []string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}

	c.idxMu.Lock()
	for _, tag := range tags {
		keys, ok := c.index[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.index[tag] = keys
		}
		keys[key] = struct{}{}
	}
	c.idxMu.Unlock()

	c.lru.Add(key, entry{value: v, tags: tags})
}

func (c *Cache) onEvict(key string, e entry) {
	c.idxMu.Lock()
	defer c.idxMu.Unlock()
	for _, tag := range e.tags {
		keys := c.index[tag]
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.index, tag)
		}
	}
}
