// Package cache memoizes parsed verifier messages. Entries are keyed by the
// content of the raw message so that identical payloads sent twice are only
// parsed once.
package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/maypok86/otter"
)

var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/viperproject/viper-ide/messages"))

// Key returns the content key of a raw message.
func Key(raw []byte) uuid.UUID {
	return uuid.NewSHA1(keyNamespace, raw)
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
	Size   int   `json:"size"`
}

// Cache is a bounded, concurrency-safe parse cache. Failed parses are never stored.
type Cache[V any] struct {
	entries otter.Cache[uuid.UUID, V]
	errors  atomic.Int64
}

// New creates a cache holding at most capacity parsed values.
func New[V any](capacity int) (*Cache[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	entries, err := otter.MustBuilder[uuid.UUID, V](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build cache: %w", err)
	}
	return &Cache[V]{entries: entries}, nil
}

// GetOrParse returns the cached value for raw, calling parse on a miss.
// Concurrent misses on the same key may both parse; the later result wins.
func (c *Cache[V]) GetOrParse(raw []byte, parse func([]byte) (V, error)) (V, error) {
	key := Key(raw)
	if v, ok := c.entries.Get(key); ok {
		return v, nil
	}
	v, err := parse(raw)
	if err != nil {
		c.errors.Add(1)
		var zero V
		return zero, err
	}
	c.entries.Set(key, v)
	return v, nil
}

// Stats returns current hit/miss counters.
func (c *Cache[V]) Stats() Stats {
	s := c.entries.Stats()
	return Stats{
		Hits:   s.Hits(),
		Misses: s.Misses(),
		Errors: c.errors.Load(),
		Size:   c.entries.Size(),
	}
}

// Close releases the cache's background resources.
func (c *Cache[V]) Close() {
	c.entries.Close()
}
