// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package provider defines the upstream weather data source interface and the
// ordered fallback chain that isolates per-source failures.
package provider

import (
	"context"
	"time"

	"github.com/DaVinciHack/fast-planner-weather/internal/metar"
	"github.com/DaVinciHack/fast-planner-weather/internal/series"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

// Data is the normalized contribution of a single provider. Forecast-style
// providers fill Series, point-observation providers fill Observation.
type Data struct {
	Provider   string
	CapturedAt time.Time

	// Series holds an hourly forecast series keyed by upstream metric names.
	Series *series.Hourly

	// Observation is a parsed aerodrome-style report, with the reporting
	// station and its angular distance from the request point.
	Observation *metar.Observation
	Station     string
	StationDist float64
}

// Provider is implemented by each upstream weather data source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords wx.Coordinates) (*Data, error)
}
