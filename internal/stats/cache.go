package stats

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a read-through cache of statistics records in front of a Source.
// It is safe for concurrent use: writes complete on background goroutines
// while the UI loop keeps reading.
type Cache struct {
	src Source

	mu      sync.RWMutex
	records map[Key]Record
	loaded  bool

	group singleflight.Group
}

// NewCache creates an empty cache. Call Refetch to populate it.
func NewCache(src Source) *Cache {
	return &Cache{
		src:     src,
		records: make(map[Key]Record),
	}
}

// Get returns the cached record for key. Unknown keys read as zero.
func (c *Cache) Get(key Key) Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records[key]
}

// Sum adds up every cached record whose item matches.
func (c *Cache) Sum(item string) Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total Record
	for k, r := range c.records {
		if k.Item == item {
			total.Correct += r.Correct
			total.Wrong += r.Wrong
		}
	}
	return total
}

// Loaded reports whether the cache holds a fresh copy of the source.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Record writes one attempt through to the source. The cached counter is
// bumped only after the write lands.
func (c *Cache) Record(ctx context.Context, key Key, correct bool) error {
	if err := c.src.RecordAttempt(ctx, key, correct); err != nil {
		return fmt.Errorf("record attempt %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.records[key]
	if correct {
		r.Correct++
	} else {
		r.Wrong++
	}
	c.records[key] = r
	return nil
}

// Reset clears an item's counters at the source and drops them locally.
func (c *Cache) Reset(ctx context.Context, item string) error {
	if err := c.src.ResetStatistics(ctx, item); err != nil {
		return fmt.Errorf("reset statistics %s: %w", item, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.records {
		if k.Item == item {
			delete(c.records, k)
		}
	}
	return nil
}

// Invalidate marks the cached copy stale. Cached values keep being served
// until the next Refetch replaces them.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

// Refetch reloads every record from the source. Concurrent callers share a
// single read.
func (c *Cache) Refetch(ctx context.Context) error {
	_, err, _ := c.group.Do("refetch", func() (any, error) {
		records, err := c.src.Statistics(ctx)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = make(map[Key]Record)
		}

		c.mu.Lock()
		c.records = records
		c.loaded = true
		c.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("refetch statistics: %w", err)
	}
	return nil
}
