// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package awc implements the aerodrome-observation provider against the
// Aviation Weather Center data API. Stations are searched by a bounding box
// around the target coordinates and the closest reporting station wins, but
// never one beyond the angular-distance cutoff: an unbounded search could
// return a station hundreds of miles away and mislabel it as local weather.
package awc

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/DaVinciHack/fast-planner-weather/internal/http"
	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/metar"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

const (
	name               = "awc"
	defaultAPIEndpoint = "https://aviationweather.gov/api/data/metar"
	apiTimeout         = time.Second * 10

	// DefaultMaxDistanceDeg is the default angular-distance cutoff for
	// accepting a reporting station as local.
	DefaultMaxDistanceDeg = 1.5
)

type station struct {
	ICAOID string  `json:"icaoId"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	RawOb  string  `json:"rawOb"`
}

// Provider fetches aerodrome observations near a point.
type Provider struct {
	endpoint       string
	maxDistanceDeg float64
	http           *http.Client
	log            *logger.Logger
}

// New returns a new aerodrome-observation provider. A non-positive cutoff
// falls back to DefaultMaxDistanceDeg.
func New(httpClient *http.Client, log *logger.Logger, maxDistanceDeg float64) (*Provider, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if maxDistanceDeg <= 0 {
		maxDistanceDeg = DefaultMaxDistanceDeg
	}
	return &Provider{
		endpoint:       defaultAPIEndpoint,
		maxDistanceDeg: maxDistanceDeg,
		http:           httpClient,
		log:            log,
	}, nil
}

// NewWithEndpoint returns a provider against a non-default endpoint, mainly
// for tests.
func NewWithEndpoint(endpoint string, httpClient *http.Client, log *logger.Logger,
	maxDistanceDeg float64,
) (*Provider, error) {
	p, err := New(httpClient, log, maxDistanceDeg)
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

// Fetch searches the bounding box around the coordinates and returns the
// parsed observation of the closest station within the cutoff.
func (p *Provider) Fetch(ctx context.Context, coords wx.Coordinates) (*provider.Data, error) {
	var stations []station

	query := url.Values{}
	query.Set("bbox", fmt.Sprintf("%f,%f,%f,%f",
		coords.Lat-p.maxDistanceDeg, coords.Lon-p.maxDistanceDeg,
		coords.Lat+p.maxDistanceDeg, coords.Lon+p.maxDistanceDeg))
	query.Set("format", "json")

	code, err := p.http.GetWithTimeout(ctx, p.endpoint, &stations, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve observations from AWC API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("AWC API returned non-positive response code: %d", code)
	}

	closest, dist, ok := closestStation(stations, coords, p.maxDistanceDeg)
	if !ok {
		return nil, fmt.Errorf("no reporting station within %.1f degrees of %f,%f",
			p.maxDistanceDeg, coords.Lat, coords.Lon)
	}

	obs, err := metar.Parse(closest.RawOb)
	if err != nil {
		return nil, fmt.Errorf("failed to parse observation from station %s: %w", closest.ICAOID, err)
	}

	return &provider.Data{
		Provider:    name,
		CapturedAt:  time.Now().UTC(),
		Observation: obs,
		Station:     closest.ICAOID,
		StationDist: dist,
	}, nil
}

// closestStation picks the nearest station by angular distance, rejecting
// anything beyond the cutoff.
func closestStation(stations []station, coords wx.Coordinates, cutoff float64) (station, float64, bool) {
	var best station
	bestDist := math.MaxFloat64
	for _, s := range stations {
		if s.RawOb == "" {
			continue
		}
		dLat := s.Lat - coords.Lat
		dLon := s.Lon - coords.Lon
		dist := math.Sqrt(dLat*dLat + dLon*dLon)
		if dist < bestDist {
			best, bestDist = s, dist
		}
	}
	if bestDist > cutoff {
		return station{}, 0, false
	}
	return best, bestDist, true
}
