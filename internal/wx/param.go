// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package wx holds the core weather report types and the pure classification
// functions that derive operational risk from a populated report.
package wx

import (
	"math"
	"time"
)

// ParamType identifies a single weather parameter within a report.
type ParamType string

const (
	ParamWindSpeed     ParamType = "wind_speed"     // knots
	ParamWindGust      ParamType = "wind_gust"      // knots
	ParamWindDirection ParamType = "wind_direction" // degrees true
	ParamVisibility    ParamType = "visibility"     // statute miles
	ParamCeiling       ParamType = "ceiling"        // ft AGL, lowest BKN/OVC layer
	ParamTemperature   ParamType = "temperature"    // °C
	ParamDewpoint      ParamType = "dewpoint"       // °C
	ParamAltimeter     ParamType = "altimeter"      // inHg
	ParamWaveHeight    ParamType = "wave_height"    // meters
	ParamWaveDirection ParamType = "wave_direction" // degrees true
	ParamWavePeriod    ParamType = "wave_period"    // seconds
	ParamIcing         ParamType = "icing"          // ordinal intensity 0-4
	ParamTurbulence    ParamType = "turbulence"     // ordinal intensity 0-4
	ParamConvective    ParamType = "convective"     // thunderstorm activity flag
)

// UnlimitedCeiling is the effective ceiling recorded when the sky was observed
// and no broken or overcast layer exists.
const UnlimitedCeiling = 99999

// Parameter is a single captured weather value. Parameters are immutable once
// stored; a refresh produces a new report, never a mutation.
type Parameter struct {
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	CapturedAt time.Time `json:"capturedAt"`
}

// Store is a typed map of weather parameters.
type Store struct {
	params map[ParamType]Parameter
}

// NewStore returns an empty parameter store.
func NewStore() *Store {
	return &Store{params: make(map[ParamType]Parameter)}
}

// Set stores a parameter value. NaN values are ignored so that an absent
// upstream field never produces a placeholder. A parameter type can be set at
// most once; later writes for the same type are dropped.
func (s *Store) Set(typ ParamType, value float64, unit string, capturedAt time.Time) {
	if math.IsNaN(value) {
		return
	}
	if _, ok := s.params[typ]; ok {
		return
	}
	s.params[typ] = Parameter{Value: value, Unit: unit, CapturedAt: capturedAt}
}

// Get returns the stored parameter for the given type.
func (s *Store) Get(typ ParamType) (Parameter, bool) {
	p, ok := s.params[typ]
	return p, ok
}

// Value returns the numeric value for the given type.
func (s *Store) Value(typ ParamType) (float64, bool) {
	p, ok := s.params[typ]
	return p.Value, ok
}

// Len returns the number of stored parameters.
func (s *Store) Len() int {
	return len(s.params)
}

// Map returns a copy of the underlying parameter map for serialization.
func (s *Store) Map() map[ParamType]Parameter {
	out := make(map[ParamType]Parameter, len(s.params))
	for k, v := range s.params {
		out[k] = v
	}
	return out
}
