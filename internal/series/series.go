// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package series selects the matching sample from an hourly forecast series
// for an arbitrary target instant.
package series

import (
	"errors"
	"math"
	"time"
)

// Policy controls what happens when no exact forecast hour matches the
// requested instant.
type Policy string

const (
	// PolicyFallbackCurrent falls back to the current slice and flags the
	// result, never silently returning a wrong hour.
	PolicyFallbackCurrent Policy = "fallback-current"
	// PolicyNearest picks the nearest hour within the configured window and
	// falls back to current beyond it.
	PolicyNearest Policy = "nearest"
)

// ErrEmptySeries is returned when a series holds no samples at all.
var ErrEmptySeries = errors.New("hourly series is empty")

// Hourly is an hourly forecast series: a time array plus one parallel value
// array per metric name.
type Hourly struct {
	Times   []time.Time
	Metrics map[string][]float64
}

// Sample is one slice across all parallel arrays of a series.
type Sample struct {
	Time   time.Time
	Values map[string]float64

	// Fallback is set when the requested forecast hour was unavailable and
	// current conditions are returned instead.
	Fallback bool
}

// Selector applies the configured policy to a series.
type Selector struct {
	policy Policy
	window time.Duration
}

// NewSelector returns a Selector. The window bounds how far PolicyNearest may
// stray from the requested hour; it is ignored for PolicyFallbackCurrent.
func NewSelector(policy Policy, window time.Duration) *Selector {
	if policy == "" {
		policy = PolicyFallbackCurrent
	}
	return &Selector{policy: policy, window: window}
}

// Select returns the sample for the target instant. A nil target selects the
// current (first) slice. A non-nil target is truncated to the start of its
// hour; without an exact match the configured policy decides between the
// nearest hour and a flagged fallback to current conditions.
func (s *Selector) Select(h Hourly, target *time.Time) (Sample, error) {
	if len(h.Times) == 0 {
		return Sample{}, ErrEmptySeries
	}
	if target == nil {
		return h.sampleAt(0, false), nil
	}

	want := target.UTC().Truncate(time.Hour)
	for i, ts := range h.Times {
		if ts.UTC().Truncate(time.Hour).Equal(want) {
			return h.sampleAt(i, false), nil
		}
	}

	if s.policy == PolicyNearest {
		if idx, ok := h.nearest(want, s.window); ok {
			return h.sampleAt(idx, false), nil
		}
	}

	return h.sampleAt(0, true), nil
}

func (h Hourly) sampleAt(idx int, fallback bool) Sample {
	values := make(map[string]float64, len(h.Metrics))
	for name, arr := range h.Metrics {
		if idx >= len(arr) {
			continue
		}
		if math.IsNaN(arr[idx]) {
			continue
		}
		values[name] = arr[idx]
	}
	return Sample{Time: h.Times[idx], Values: values, Fallback: fallback}
}

func (h Hourly) nearest(want time.Time, window time.Duration) (int, bool) {
	best := -1
	var bestDist time.Duration
	for i, ts := range h.Times {
		dist := want.Sub(ts)
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best == -1 || (window > 0 && bestDist > window) {
		return 0, false
	}
	return best, true
}
