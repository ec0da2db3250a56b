package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedRecords holds a loaded record set for repeated runs against the same location.
type cachedRecords struct {
	// Records is the loaded record set. It is shared and must not be mutated.
	Records []Record

	// Built is the timestamp when the records were loaded.
	Built time.Time

	// TTL is the time-to-live for this entry.
	TTL time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (c *cachedRecords) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds loaded record sets keyed by source location.
type cacheStore struct {
	mu      sync.RWMutex
	entries map[string]*cachedRecords
	sf      singleflight.Group
}

var globalCacheStore = &cacheStore{
	entries: make(map[string]*cachedRecords),
}

// LoadRecords returns the records of src, reusing a cached copy younger than ttl.
// A zero ttl always reads from the source. Concurrent loads of the same location
// share a single read.
func LoadRecords(ctx context.Context, src RecordSource, ttl time.Duration) ([]Record, error) {
	if ttl <= 0 {
		return src.Records(ctx)
	}

	key := src.Location()

	globalCacheStore.mu.RLock()
	entry, exists := globalCacheStore.entries[key]
	globalCacheStore.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.Records, nil
	}

	result, err, _ := globalCacheStore.sf.Do(key, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		entry, exists := globalCacheStore.entries[key]
		globalCacheStore.mu.RUnlock()

		if exists && !entry.IsExpired() {
			return entry, nil
		}

		records, err := src.Records(ctx)
		if err != nil {
			return nil, err
		}

		fresh := &cachedRecords{Records: records, Built: time.Now(), TTL: ttl}
		globalCacheStore.mu.Lock()
		globalCacheStore.entries[key] = fresh
		globalCacheStore.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*cachedRecords).Records, nil
}

// InvalidateCache drops the cached records of a location.
func InvalidateCache(location string) {
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.entries, location)
	globalCacheStore.mu.Unlock()
}
