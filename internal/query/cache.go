// Package query is the shared data-fetching layer: staleness-bounded
// reads, one in-flight request per key, and explicit invalidation
// after mutations. Every view reads through it so no two views ever
// poll the same resource independently.
package query

import (
	"context"
	"sync"
	"time"
)

// Policy used across the app for dashboard aggregates and list views.
const (
	DefaultStaleTime       = 15 * time.Minute
	DefaultRefetchInterval = 10 * time.Second
)

// FetchFunc loads the value for one key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// Result is a snapshot of one cache entry. Err holds the most recent
// fetch failure; Data keeps the last good value even then.
type Result struct {
	Data      any
	Err       error
	FetchedAt time.Time
}

type call struct {
	done chan struct{}
	data any
	err  error
}

// entry state is tracked per key. Generations are issued from nextGen;
// minGen is the invalidation floor: a response whose generation is
// below it was issued before the data became untrustworthy and must
// not repopulate the entry.
type entry struct {
	data       any
	hasData    bool
	err        error
	fetchedAt  time.Time
	appliedGen uint64
	minGen     uint64
	nextGen    uint64
	inflight   *call
}

// Cache is safe for concurrent use. Fetches run in the calling
// goroutine; concurrent callers for the same key join the in-flight
// call instead of issuing a second request.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (c *Cache) entryLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{nextGen: 1}
		c.entries[key] = e
	}
	return e
}

// Get returns the cached value for key when it is fresh within
// staleTime, otherwise fetches. staleTime <= 0 means DefaultStaleTime.
func (c *Cache) Get(ctx context.Context, key string, staleTime time.Duration, fetch FetchFunc) (any, error) {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return c.fetch(ctx, key, staleTime, fetch)
}

// Refresh re-fetches key regardless of freshness. Used by the
// background refetch tick; a failed refresh leaves the previous data
// in place.
func (c *Cache) Refresh(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	return c.fetch(ctx, key, 0, fetch)
}

func (c *Cache) fetch(ctx context.Context, key string, staleTime time.Duration, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)

	if staleTime > 0 && e.hasData && e.appliedGen >= e.minGen &&
		c.now().Sub(e.fetchedAt) < staleTime {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	if cl := e.inflight; cl != nil {
		c.mu.Unlock()
		select {
		case <-cl.done:
			return cl.data, cl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	gen := e.nextGen
	e.nextGen++
	cl := &call{done: make(chan struct{})}
	e.inflight = cl
	c.mu.Unlock()

	data, err := fetch(ctx)

	c.mu.Lock()
	if e.inflight == cl {
		e.inflight = nil
	}
	if gen >= e.minGen {
		if err == nil {
			if gen > e.appliedGen {
				e.data = data
				e.hasData = true
				e.fetchedAt = c.now()
				e.err = nil
				e.appliedGen = gen
			}
		} else {
			// Keep the last good value visible alongside the error.
			e.err = err
		}
	}
	c.mu.Unlock()

	cl.data, cl.err = data, err
	close(cl.done)
	return data, err
}

// Invalidate marks the keys untrustworthy: the next read of each
// refetches, and any response still in flight for an older generation
// is discarded instead of being applied.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		e := c.entryLocked(key)
		e.minGen = e.nextGen
		// Detach the in-flight call; its waiters still get their
		// result, the cache just won't store it.
		e.inflight = nil
	}
}

// Mutate runs do and, only after it succeeds, invalidates keys.
// Nothing is invalidated speculatively.
func (c *Cache) Mutate(ctx context.Context, do func(ctx context.Context) error, keys ...string) error {
	if err := do(ctx); err != nil {
		return err
	}
	c.Invalidate(keys...)
	return nil
}

// Peek returns the current snapshot for key without fetching. Views
// use it to keep stale data on screen while a refresh fails.
func (c *Cache) Peek(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || (!e.hasData && e.err == nil) {
		return Result{}, false
	}
	return Result{Data: e.data, Err: e.err, FetchedAt: e.fetchedAt}, true
}

// Clear drops every entry. Called on logout so the next login starts
// from a cold cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Get is the typed wrapper around Cache.Get.
func Get[T any](ctx context.Context, c *Cache, key string, staleTime time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	data, err := c.Get(ctx, key, staleTime, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := data.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return v, nil
}

// Refresh is the typed wrapper around Cache.Refresh.
func Refresh[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	data, err := c.Refresh(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := data.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return v, nil
}
