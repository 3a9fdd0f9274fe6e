package session

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"
)

// CachedStore is a read-through LRU cache in front of another Store.
// Writes go to the underlying store first and update the cache on success.
type CachedStore struct {
	next     Store
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	items   map[string]*list.Element
	recency *list.List
}

type cachedRecord struct {
	id     string
	record *Record
}

type CachedStoreOption func(*CachedStore)

// WithCachedStoreClock sets the time source used to expire cached records.
func WithCachedStoreClock(now func() time.Time) CachedStoreOption {
	return func(c *CachedStore) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCachedStore wraps next with an LRU cache holding up to capacity records.
// The capacity must be positive, otherwise it panics.
func NewCachedStore(next Store, capacity int, opts ...CachedStoreOption) *CachedStore {
	if capacity <= 0 {
		panic("session: cache capacity must be positive")
	}
	c := &CachedStore{
		next:     next,
		capacity: capacity,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		recency:  list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the cached record or reads it from the underlying store.
func (c *CachedStore) Load(ctx context.Context, id string) (*Record, error) {
	if r, ok := c.get(id); ok {
		if !r.IsExpired(c.now()) {
			return r.Clone(), nil
		}
		c.remove(id)
	}

	r, err := c.next.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.remove(id)
		}
		return nil, err
	}

	c.put(id, r.Clone())
	return r, nil
}

// Save writes through to the underlying store.
func (c *CachedStore) Save(ctx context.Context, id string, r *Record) error {
	if err := c.next.Save(ctx, id, r); err != nil {
		c.remove(id)
		return err
	}
	c.put(id, r.Clone())
	return nil
}

// Delete removes the record from the cache and the underlying store.
func (c *CachedStore) Delete(ctx context.Context, id string) error {
	c.remove(id)
	return c.next.Delete(ctx, id)
}

// DeleteExpired purges expired cache entries and delegates to the underlying store.
func (c *CachedStore) DeleteExpired(ctx context.Context) error {
	now := c.now()

	c.mu.Lock()
	for id, elem := range c.items {
		if elem.Value.(*cachedRecord).record.IsExpired(now) {
			c.recency.Remove(elem)
			delete(c.items, id)
		}
	}
	c.mu.Unlock()

	return c.next.DeleteExpired(ctx)
}

// Len returns the number of cached records.
func (c *CachedStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

func (c *CachedStore) get(id string) (*Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[id]
	if !ok {
		return nil, false
	}
	c.recency.MoveToFront(elem)
	return elem.Value.(*cachedRecord).record, true
}

func (c *CachedStore) put(id string, r *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[id]; ok {
		elem.Value.(*cachedRecord).record = r
		c.recency.MoveToFront(elem)
		return
	}

	c.items[id] = c.recency.PushFront(&cachedRecord{id: id, record: r})
	if c.recency.Len() > c.capacity {
		oldest := c.recency.Back()
		c.recency.Remove(oldest)
		delete(c.items, oldest.Value.(*cachedRecord).id)
	}
}

func (c *CachedStore) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[id]; ok {
		c.recency.Remove(elem)
		delete(c.items, id)
	}
}
