// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package report

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/DaVinciHack/fast-planner-weather/internal/observability"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

func TestCache(t *testing.T) {
	coords := wx.Coordinates{Lat: 58.7, Lon: 1.9}

	t.Run("should return cached entry within TTL", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		cache.Put(coords, Options{}, "first", false)

		clock.Advance(DefaultTTL - time.Second)
		got, ok := cache.Get(coords, Options{})
		if !ok {
			t.Fatal("expected cache hit within TTL")
		}
		if got != "first" {
			t.Errorf("expected cached value %q, got %q", "first", got)
		}
	})
	t.Run("should expire entry after TTL", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		cache.Put(coords, Options{}, "first", false)

		clock.Advance(DefaultTTL + time.Second)
		if _, ok := cache.Get(coords, Options{}); ok {
			t.Error("expected cache miss after TTL elapsed")
		}
	})
	t.Run("should expire no-data entry after short TTL", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		cache.Put(coords, Options{}, "empty", true)

		clock.Advance(DefaultNoDataTTL + time.Second)
		if _, ok := cache.Get(coords, Options{}); ok {
			t.Error("expected no-data entry to expire after short TTL")
		}
	})
	t.Run("should treat nearby coordinates as the same key", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		cache.Put(wx.Coordinates{Lat: 58.701, Lon: 1.902}, Options{}, "near", false)

		if _, ok := cache.Get(wx.Coordinates{Lat: 58.699, Lon: 1.898}, Options{}); !ok {
			t.Error("expected coordinates within quantization step to share an entry")
		}
	})
	t.Run("should separate entries by arrival hour", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		arrival := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
		cache.Put(coords, Options{ArrivalTime: &arrival}, "forecast", false)

		if _, ok := cache.Get(coords, Options{}); ok {
			t.Error("expected current-conditions lookup to miss a forecast entry")
		}
		sameHour := arrival.Add(20 * time.Minute)
		got, ok := cache.Get(coords, Options{ArrivalTime: &sameHour})
		if !ok {
			t.Fatal("expected lookup in the same arrival hour to hit")
		}
		if got != "forecast" {
			t.Errorf("expected %q, got %q", "forecast", got)
		}
	})
	t.Run("should replace entry on repeated put", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		cache.Put(coords, Options{}, "first", false)
		cache.Put(coords, Options{}, "second", false)

		got, _ := cache.Get(coords, Options{})
		if got != "second" {
			t.Errorf("expected replaced value %q, got %q", "second", got)
		}
		if cache.Len() != 1 {
			t.Errorf("expected a single entry after replacement, got %d", cache.Len())
		}
	})
	t.Run("should sweep only expired entries", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewCache[string](DefaultTTL, DefaultNoDataTTL, clock, observability.NewMetricsForTesting())
		cache.Put(coords, Options{}, "long", false)
		cache.Put(wx.Coordinates{Lat: 60.0, Lon: 5.0}, Options{}, "short", true)

		clock.Advance(DefaultNoDataTTL + time.Second)
		if evicted := cache.Sweep(); evicted != 1 {
			t.Errorf("expected 1 eviction, got %d", evicted)
		}
		if cache.Len() != 1 {
			t.Errorf("expected 1 surviving entry, got %d", cache.Len())
		}
	})
}
