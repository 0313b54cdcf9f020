package cache

import (
	"sync"
	"time"

	"github.com/epeers/warehouse/internal/engine"
)

// MemoryCache provides an in-memory L1 cache for model evaluations and
// projections. Keys are full input tuples, so a hit is always exact.
type MemoryCache struct {
	breakdowns   map[engine.Inputs]breakdownEntry
	projections  map[projectionKey]projectionEntry
	breakdownMu  sync.RWMutex
	projectionMu sync.RWMutex
	ttl          time.Duration
	maxEntries   int

	statsMu sync.Mutex
	hits    int64
	misses  int64
}

type breakdownEntry struct {
	data       engine.Breakdown
	computedAt time.Time
}

type projectionKey struct {
	inputs  engine.Inputs
	growth  float64
	horizon int
}

type projectionEntry struct {
	data       []engine.ProjectionPoint
	computedAt time.Time
}

// Stats reports cache effectiveness
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Breakdowns  int   `json:"breakdowns"`
	Projections int   `json:"projections"`
}

// NewMemoryCache creates a new in-memory cache. A ttl of zero never expires
// entries; maxEntries of zero means unbounded.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		breakdowns:  make(map[engine.Inputs]breakdownEntry),
		projections: make(map[projectionKey]projectionEntry),
		ttl:         ttl,
		maxEntries:  maxEntries,
	}
}

func (c *MemoryCache) fresh(computedAt time.Time) bool {
	return c.ttl <= 0 || time.Since(computedAt) <= c.ttl
}

func (c *MemoryCache) record(hit bool) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

// GetBreakdown retrieves a cached evaluation if fresh
func (c *MemoryCache) GetBreakdown(in engine.Inputs) (engine.Breakdown, bool) {
	c.breakdownMu.RLock()
	entry, exists := c.breakdowns[in]
	c.breakdownMu.RUnlock()

	ok := exists && c.fresh(entry.computedAt)
	c.record(ok)
	if !ok {
		return engine.Breakdown{}, false
	}
	return entry.data, true
}

// SetBreakdown caches an evaluation
func (c *MemoryCache) SetBreakdown(in engine.Inputs, b engine.Breakdown) {
	c.breakdownMu.Lock()
	defer c.breakdownMu.Unlock()

	if c.maxEntries > 0 && len(c.breakdowns) >= c.maxEntries {
		if _, exists := c.breakdowns[in]; !exists {
			c.breakdowns = make(map[engine.Inputs]breakdownEntry)
		}
	}
	c.breakdowns[in] = breakdownEntry{
		data:       b,
		computedAt: time.Now(),
	}
}

// Evaluator returns an engine.Evaluator that consults the cache before
// calling engine.Compute.
func (c *MemoryCache) Evaluator() engine.Evaluator {
	return func(in engine.Inputs) engine.Breakdown {
		if b, ok := c.GetBreakdown(in); ok {
			return b
		}
		b := engine.Compute(in)
		c.SetBreakdown(in, b)
		return b
	}
}

// GetProjection retrieves a cached projection if fresh. The returned slice
// is a copy.
func (c *MemoryCache) GetProjection(in engine.Inputs, growth float64, horizon int) ([]engine.ProjectionPoint, bool) {
	c.projectionMu.RLock()
	entry, exists := c.projections[projectionKey{in, growth, horizon}]
	c.projectionMu.RUnlock()

	ok := exists && c.fresh(entry.computedAt)
	c.record(ok)
	if !ok {
		return nil, false
	}
	return append([]engine.ProjectionPoint(nil), entry.data...), true
}

// SetProjection caches a projection
func (c *MemoryCache) SetProjection(in engine.Inputs, growth float64, horizon int, points []engine.ProjectionPoint) {
	c.projectionMu.Lock()
	defer c.projectionMu.Unlock()

	key := projectionKey{in, growth, horizon}
	if c.maxEntries > 0 && len(c.projections) >= c.maxEntries {
		if _, exists := c.projections[key]; !exists {
			c.projections = make(map[projectionKey]projectionEntry)
		}
	}
	c.projections[key] = projectionEntry{
		data:       append([]engine.ProjectionPoint(nil), points...),
		computedAt: time.Now(),
	}
}

// Stats returns hit/miss counters and current sizes
func (c *MemoryCache) Stats() Stats {
	c.breakdownMu.RLock()
	nb := len(c.breakdowns)
	c.breakdownMu.RUnlock()

	c.projectionMu.RLock()
	np := len(c.projections)
	c.projectionMu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Breakdowns: nb, Projections: np}
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.breakdownMu.Lock()
	c.breakdowns = make(map[engine.Inputs]breakdownEntry)
	c.breakdownMu.Unlock()

	c.projectionMu.Lock()
	c.projections = make(map[projectionKey]projectionEntry)
	c.projectionMu.Unlock()
}
