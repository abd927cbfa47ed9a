// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package report assembles and caches weather reports for locations and rigs.
package report

import (
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/DaVinciHack/fast-planner-weather/internal/observability"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

// coordPrecision is the precision used to quantize coordinates for cache keys
// (0.01 degrees ≈ 1.1 km).
const coordPrecision = 1e-2

// Cache TTLs. A usable report lives for the full window, a no-data result
// only briefly so a recovered provider is picked up quickly. StalenessTTL is
// the window callers use to decide whether a report they hold is still
// current.
const (
	DefaultTTL       = 10 * time.Minute
	DefaultNoDataTTL = time.Minute
	StalenessTTL     = 15 * time.Minute
)

type cacheKey struct {
	LatQ  int32
	LonQ  int32
	HourQ int64 // truncated arrival hour; 0 for current conditions
}

type cacheEntry[T any] struct {
	report T
	expiry time.Time
}

// Cache is a TTL-keyed store of previously assembled reports, keyed by
// quantized coordinates plus request options. Entries are replaced whole
// (copy-on-write of the map slot); a cached report itself is never mutated.
type Cache[T any] struct {
	ttl       time.Duration
	ttlNoData time.Duration
	clock     clockwork.Clock
	metrics   *observability.Metrics

	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry[T]
}

// NewCache returns a report cache using the given clock. Non-positive TTLs
// fall back to the defaults.
func NewCache[T any](ttl, ttlNoData time.Duration, clock clockwork.Clock,
	metrics *observability.Metrics,
) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ttlNoData <= 0 {
		ttlNoData = DefaultNoDataTTL
	}
	return &Cache[T]{
		ttl:       ttl,
		ttlNoData: ttlNoData,
		clock:     clock,
		metrics:   metrics,
		entries:   make(map[cacheKey]cacheEntry[T]),
	}
}

// Get returns the cached report for the key if it has not expired. An expired
// entry is evicted lazily on lookup.
func (c *Cache[T]) Get(coords wx.Coordinates, opts Options) (T, bool) {
	var zero T
	key := newKey(coords, opts)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return zero, false
	}
	if !c.clock.Now().Before(entry.expiry) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent fetch may have
		// replaced the slot with a fresh entry already.
		if current, ok := c.entries[key]; ok && !c.clock.Now().Before(current.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.metrics.CacheLookups.WithLabelValues("expired").Inc()
		return zero, false
	}

	c.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return entry.report, true
}

// Put stores a report under the key, replacing any previous slot. The noData
// flag selects the short TTL.
func (c *Cache[T]) Put(coords wx.Coordinates, opts Options, report T, noData bool) {
	ttl := c.ttl
	if noData {
		ttl = c.ttlNoData
	}
	key := newKey(coords, opts)

	c.mu.Lock()
	c.entries[key] = cacheEntry[T]{report: report, expiry: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
}

// Sweep removes all expired entries and returns how many were evicted. It is
// the only bulk deleter and runs from the periodic background job.
func (c *Cache[T]) Sweep() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiry) {
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		c.metrics.CacheEvictions.Add(float64(evicted))
	}
	return evicted
}

// Len returns the number of cached entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func quantizeCoord(val float64) int32 {
	return int32(math.Round(val / coordPrecision))
}

func newKey(coords wx.Coordinates, opts Options) cacheKey {
	key := cacheKey{
		LatQ: quantizeCoord(coords.Lat),
		LonQ: quantizeCoord(coords.Lon),
	}
	if opts.ArrivalTime != nil {
		key.HourQ = opts.ArrivalTime.UTC().Truncate(time.Hour).Unix()
	}
	return key
}
