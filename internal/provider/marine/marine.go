// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package marine implements the wave forecast provider on top of the
// Open-Meteo marine API.
package marine

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/DaVinciHack/fast-planner-weather/internal/http"
	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider"
	"github.com/DaVinciHack/fast-planner-weather/internal/series"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

const (
	name               = "open-meteo-marine"
	defaultAPIEndpoint = "https://marine-api.open-meteo.com/v1/marine"
	apiTimeout         = time.Second * 10
)

// HourlyMetrics are the wave parameters requested from the marine API.
var HourlyMetrics = []string{"wave_height", "wave_direction", "wave_period"}

// Provider fetches hourly wave forecasts for a point.
type Provider struct {
	endpoint string
	http     *http.Client
	log      *logger.Logger
}

type resTime struct {
	time.Time
}

type response struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    struct {
		Time          []resTime `json:"time"`
		WaveHeight    []float64 `json:"wave_height"`
		WaveDirection []float64 `json:"wave_direction"`
		WavePeriod    []float64 `json:"wave_period"`
	} `json:"hourly"`
}

// New returns a new marine wave provider.
func New(httpClient *http.Client, log *logger.Logger) (*Provider, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Provider{endpoint: defaultAPIEndpoint, http: httpClient, log: log}, nil
}

// NewWithEndpoint returns a marine provider against a non-default endpoint,
// mainly for tests.
func NewWithEndpoint(endpoint string, httpClient *http.Client, log *logger.Logger) (*Provider, error) {
	p, err := New(httpClient, log)
	if err != nil {
		return nil, err
	}
	p.endpoint = endpoint
	return p, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return name
}

// Fetch retrieves the hourly wave series for the given coordinates.
func (p *Provider) Fetch(ctx context.Context, coords wx.Coordinates) (*provider.Data, error) {
	res := new(response)

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	query.Set("longitude", fmt.Sprintf("%f", coords.Lon))
	query.Set("hourly", strings.Join(HourlyMetrics, ","))
	query.Set("timezone", "UTC")

	code, err := p.http.GetWithTimeout(ctx, p.endpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wave data from marine API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("marine API returned non-positive response code: %d", code)
	}
	if len(res.Hourly.Time) == 0 {
		return nil, fmt.Errorf("marine API returned an empty hourly series")
	}

	times := make([]time.Time, len(res.Hourly.Time))
	for i, ts := range res.Hourly.Time {
		times[i] = ts.Time
	}

	return &provider.Data{
		Provider:   name,
		CapturedAt: time.Now().UTC(),
		Series: &series.Hourly{
			Times: times,
			Metrics: map[string][]float64{
				"wave_height":    res.Hourly.WaveHeight,
				"wave_direction": res.Hourly.WaveDirection,
				"wave_period":    res.Hourly.WavePeriod,
			},
		},
	}, nil
}

func (r *resTime) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty time")
	}
	if b[0] != '"' {
		return fmt.Errorf("invalid time format: %s", string(b))
	}

	apiTime, err := time.Parse("2006-01-02T15:04", string(b[1:len(b)-1]))
	if err != nil {
		return fmt.Errorf("failed to parse time: %w", err)
	}
	r.Time = apiTime

	return nil
}
