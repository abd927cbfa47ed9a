// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package wx

import (
	"math"
	"testing"
	"time"
)

func TestStore_Set(t *testing.T) {
	now := time.Now()

	t.Run("set and get should round trip", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamWindSpeed, 18, "kt", now)

		p, ok := store.Get(ParamWindSpeed)
		if !ok {
			t.Fatal("expected parameter to be present")
		}
		if p.Value != 18 {
			t.Errorf("expected value 18, got %f", p.Value)
		}
		if p.Unit != "kt" {
			t.Errorf("expected unit kt, got %s", p.Unit)
		}
		if !p.CapturedAt.Equal(now) {
			t.Errorf("expected capture time %s, got %s", now, p.CapturedAt)
		}
	})
	t.Run("NaN values are never stored", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamVisibility, math.NaN(), "SM", now)
		if _, ok := store.Get(ParamVisibility); ok {
			t.Error("expected NaN value to be dropped")
		}
		if store.Len() != 0 {
			t.Errorf("expected empty store, got %d parameters", store.Len())
		}
	})
	t.Run("a parameter type can be set at most once", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamCeiling, 1200, "ft", now)
		store.Set(ParamCeiling, 400, "ft", now.Add(time.Minute))

		v, ok := store.Value(ParamCeiling)
		if !ok || v != 1200 {
			t.Errorf("expected first value 1200 to survive, got %f", v)
		}
	})
	t.Run("missing parameters return not-ok", func(t *testing.T) {
		store := NewStore()
		if _, ok := store.Value(ParamWaveHeight); ok {
			t.Error("expected missing parameter to return not-ok")
		}
	})
	t.Run("map returns a copy", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamTemperature, 12, "°C", now)

		m := store.Map()
		m[ParamTemperature] = Parameter{Value: 99}
		if v, _ := store.Value(ParamTemperature); v != 12 {
			t.Errorf("expected store to be unaffected by map mutation, got %f", v)
		}
	})
}

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		want   bool
	}{
		{"north sea rig", Coordinates{Lat: 58.37, Lon: 1.9}, true},
		{"gulf platform", Coordinates{Lat: 27.7, Lon: -90.4}, true},
		{"boundary poles", Coordinates{Lat: 90, Lon: -180}, true},
		{"latitude out of range", Coordinates{Lat: 90.1, Lon: 0}, false},
		{"longitude out of range", Coordinates{Lat: 0, Lon: 180.5}, false},
		{"NaN latitude", Coordinates{Lat: math.NaN(), Lon: 0}, false},
		{"infinite longitude", Coordinates{Lat: 0, Lon: math.Inf(1)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.coords.Valid(); got != tc.want {
				t.Errorf("expected Valid() to be %t for %+v", tc.want, tc.coords)
			}
		})
	}
}

func TestNoDataReport(t *testing.T) {
	t.Run("no-data report is explicitly tagged", func(t *testing.T) {
		r := NoDataReport("rig-7", Coordinates{Lat: 57, Lon: 2})
		if r.Status != StatusNoData {
			t.Errorf("expected status %s, got %s", StatusNoData, r.Status)
		}
		if r.FlightCategory != "" {
			t.Errorf("expected no flight category, got %s", r.FlightCategory)
		}
		if r.Params == nil || r.Params.Len() != 0 {
			t.Error("expected an empty parameter store")
		}
	})
}
