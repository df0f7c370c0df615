package source

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// Caching wraps a Fetcher with an in-memory LRU over whole objects, keyed by
// name and bounded by a byte capacity. Dataset files are immutable once
// published, so entries are never invalidated, only evicted.
type Caching struct {
	inner    Fetcher
	capacity int64

	mu        sync.Mutex
	size      int64
	items     map[string]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	name string
	data []byte
}

// NewCaching creates a caching fetcher with the given capacity in bytes.
func NewCaching(inner Fetcher, capacity int64) *Caching {
	return &Caching{
		inner:     inner,
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
	}
}

// Fetch returns the cached bytes for name, fetching and caching on a miss.
// Callers must treat the returned slice as read-only.
func (c *Caching) Fetch(ctx context.Context, name string) ([]byte, error) {
	if data, ok := c.get(name); ok {
		return data, nil
	}

	data, err := c.inner.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	c.set(name, data)
	return data, nil
}

func (c *Caching) get(name string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[name]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*cacheEntry).data, true
	}
	c.misses.Add(1)
	return nil, false
}

func (c *Caching) set(name string, data []byte) {
	itemSize := int64(len(data))
	if itemSize > c.capacity {
		// Larger than the whole budget, not worth evicting everything for.
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[name]; ok {
		c.size += itemSize - int64(len(ent.Value.(*cacheEntry).data))
		ent.Value.(*cacheEntry).data = data
		c.evictList.MoveToFront(ent)
		c.evict()
		return
	}

	c.items[name] = c.evictList.PushFront(&cacheEntry{name: name, data: data})
	c.size += itemSize
	c.evict()
}

// evict removes least recently used entries until size fits capacity.
// Callers must hold c.mu.
func (c *Caching) evict() {
	for c.size > c.capacity {
		back := c.evictList.Back()
		if back == nil {
			return
		}
		ent := back.Value.(*cacheEntry)
		c.evictList.Remove(back)
		delete(c.items, ent.name)
		c.size -= int64(len(ent.data))
	}
}

// Size returns the cached byte total.
func (c *Caching) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns the hit and miss counts.
func (c *Caching) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

var _ Fetcher = (*Caching)(nil)
