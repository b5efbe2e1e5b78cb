// Package dedupe defines the interface for duplicate-identity tracking.
// The catalog uses it to drop repeated profile ids and mapping pairs
// during loads; first occurrence wins.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Default deduper configuration constants.
const (
	defaultMaxSize = 50000
)

// Deduper records seen identities to ensure at-most-once acceptance.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus an insertion-order
// ring. For bounded mode (maxSize > 0) the oldest entries are evicted;
// unbounded mode (maxSize <= 0) never evicts.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		// Evict the oldest recorded identity.
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
		d.size.Add(-1)
	}

	d.seen[id] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, id)
	}
	d.size.Add(1)
	return false
}

// Size returns the current number of recorded identities.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
