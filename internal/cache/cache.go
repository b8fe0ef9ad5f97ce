// Package cache is the bounded bitmap store between the viewer and the
// rendering engine. It owns eviction, deduplicates in-flight renders and
// discards results that complete after their session context is gone.
package cache

import (
	"image"
	"log"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"pageturn/internal/domain"
)

// DefaultCapacity bounds the cache by entry count. Dual-page mode plus
// prefetch holds 2-4 live entries, so this leaves headroom for back and
// forward navigation without re-rendering.
const DefaultCapacity = 10

// RenderFunc rasterizes the bitmap for a key. It is called off the frame
// thread for async and prefetch requests, at most once per key at a time.
type RenderFunc func(key domain.RenderKey) (*image.RGBA, error)

// PageCache maps render keys to immutable decoded bitmaps with strict
// LRU eviction. All methods are safe for concurrent use.
type PageCache struct {
	entries  *lru.Cache[domain.RenderKey, *image.RGBA]
	inflight singleflight.Group
	render   RenderFunc
	gen      atomic.Uint64
}

// New creates a cache with the given entry capacity. capacity <= 0 uses
// DefaultCapacity.
func New(capacity int, render RenderFunc) (*PageCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := lru.New[domain.RenderKey, *image.RGBA](capacity)
	if err != nil {
		return nil, err
	}
	return &PageCache{entries: entries, render: render}, nil
}

// Get returns the cached bitmap for key if present, touching its LRU
// position. It never triggers a render.
func (c *PageCache) Get(key domain.RenderKey) (*image.RGBA, bool) {
	return c.entries.Get(key)
}

// GetOrRender returns the cached bitmap for key, rendering it on a miss.
// Concurrent callers for the same key share a single render call and all
// receive its result. Failed renders store nothing.
func (c *PageCache) GetOrRender(key domain.RenderKey) (*image.RGBA, error) {
	if bm, ok := c.entries.Get(key); ok {
		return bm, nil
	}

	v, err, _ := c.inflight.Do(key.String(), func() (interface{}, error) {
		// Re-check: another caller may have completed between the miss
		// above and this flight starting.
		if bm, ok := c.entries.Get(key); ok {
			return bm, nil
		}
		gen := c.gen.Load()
		bm, err := c.render(key)
		if err != nil {
			return nil, err
		}
		if c.gen.Load() != gen {
			// The session context changed while rendering (rotation flip,
			// document closed). The bitmap must not enter the new context.
			log.Printf("debug: discarding stale render for %s", key)
			return bm, nil
		}
		c.entries.Add(key, bm)
		return bm, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.RGBA), nil
}

// Prefetch renders keys in the background, best effort. Failures are
// swallowed: a missed prefetch only costs a later on-demand render.
func (c *PageCache) Prefetch(keys ...domain.RenderKey) {
	for _, key := range keys {
		if c.entries.Contains(key) {
			continue
		}
		go func(k domain.RenderKey) {
			_, _ = c.GetOrRender(k)
		}(key)
	}
}

// Invalidate removes every entry whose key matches pred and advances the
// cache generation, so renders in flight for removed context are discarded
// on completion. Returns the number of entries removed.
func (c *PageCache) Invalidate(pred func(domain.RenderKey) bool) int {
	c.gen.Add(1)
	removed := 0
	for _, key := range c.entries.Keys() {
		if pred(key) {
			if c.entries.Remove(key) {
				removed++
			}
		}
	}
	return removed
}

// Clear drops everything; used when the document closes.
func (c *PageCache) Clear() {
	c.gen.Add(1)
	c.entries.Purge()
}

// Generation identifies the current session context. Background completions
// compare it against the value captured when their request started.
func (c *PageCache) Generation() uint64 {
	return c.gen.Load()
}

// Len returns the number of cached bitmaps.
func (c *PageCache) Len() int {
	return c.entries.Len()
}

// Keys returns the cached keys, least recently used first.
func (c *PageCache) Keys() []domain.RenderKey {
	return c.entries.Keys()
}
