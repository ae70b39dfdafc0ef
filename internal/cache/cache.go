// Package cache implements the CACHE collaborator: an in-memory
// metadata cache keyed by logical address, with explicit flush and
// destroy (no time-based expiry — unlike the TTL-based example this
// package's API shape is drawn from, this cache has no notion of
// staleness, only explicit invalidation).
//
// Grounded on GoogleCloudPlatform-gcsfuse/ttlcache's New(capacity)/Get/Set
// shape, minus the TTL sweep goroutine.
package cache

import "sync"

// Cache holds up to nslots resident metadata blocks for one open
// container file.
type Cache struct {
	mu      sync.Mutex
	nslots  int
	order   []int64
	entries map[int64]entry
}

type entry struct {
	data  []byte
	dirty bool
}

// New returns a Cache that holds at most nslots blocks before evicting
// the least recently inserted one.
func New(nslots int) *Cache {
	if nslots <= 0 {
		nslots = 1
	}
	return &Cache{nslots: nslots, entries: make(map[int64]entry)}
}

// Put inserts or replaces the cached block at addr.
func (c *Cache) Put(addr int64, data []byte, dirty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[addr]; !exists {
		c.order = append(c.order, addr)
		if len(c.order) > c.nslots {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
	}
	c.entries[addr] = entry{data: data, dirty: dirty}
}

// Get returns the cached block at addr, if resident.
func (c *Cache) Get(addr int64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[addr]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Flush writes back every dirty entry via write, then, if invalidate is
// true, evicts all entries. The whole cache is always flushed as a
// unit; individual block types and addresses are not discriminated at
// this layer.
func (c *Cache) Flush(invalidate bool, write func(addr int64, data []byte) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, e := range c.entries {
		if !e.dirty {
			continue
		}
		if err := write(addr, e.data); err != nil {
			return err
		}
		e.dirty = false
		c.entries[addr] = e
	}
	if invalidate {
		c.entries = make(map[int64]entry)
		c.order = nil
	}
	return nil
}

// Destroy discards all cached state. Called when a SharedFile's
// reference count reaches zero.
func (c *Cache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int64]entry)
	c.order = nil
}

// Len reports the number of resident entries, for tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
