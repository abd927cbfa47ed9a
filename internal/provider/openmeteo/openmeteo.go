// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package openmeteo implements the primary point-forecast provider on top of
// the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"fmt"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider"
	"github.com/DaVinciHack/fast-planner-weather/internal/series"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

const name = "open-meteo"

// HourlyMetrics are the parallel arrays requested from the forecast API.
// Wind speeds are requested in km/h and converted to knots during report
// assembly; visibility arrives in meters.
var HourlyMetrics = []string{
	"temperature_2m", "dew_point_2m", "wind_speed_10m", "wind_gusts_10m",
	"wind_direction_10m", "visibility", "pressure_msl", "weather_code",
	"cloud_cover", "cape",
}

// Provider fetches hourly point forecasts from Open-Meteo.
type Provider struct {
	client omgo.Client
	log    *logger.Logger
}

// New returns a new Open-Meteo forecast provider.
func New(log *logger.Logger) (*Provider, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	return &Provider{client: client, log: log}, nil
}

// NewWithClient returns a provider using a pre-built omgo client, mainly for
// pointing tests at a stub API endpoint.
func NewWithClient(client omgo.Client, log *logger.Logger) *Provider {
	return &Provider{client: client, log: log}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return name
}

// Fetch retrieves the hourly forecast series for the given coordinates.
func (p *Provider) Fetch(ctx context.Context, coords wx.Coordinates) (*provider.Data, error) {
	loc, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo location from coordinates: %w", err)
	}

	opts := &omgo.Options{
		Timezone:      "UTC",
		WindspeedUnit: "kmh",
		HourlyMetrics: HourlyMetrics,
	}
	forecast, err := p.client.Forecast(ctx, loc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast from Open-Meteo API: %w", err)
	}
	if len(forecast.HourlyTimes) == 0 {
		return nil, fmt.Errorf("Open-Meteo API returned an empty hourly series")
	}

	return &provider.Data{
		Provider:   name,
		CapturedAt: time.Now().UTC(),
		Series: &series.Hourly{
			Times:   forecast.HourlyTimes,
			Metrics: forecast.HourlyMetrics,
		},
	}, nil
}
