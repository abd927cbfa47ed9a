// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package wx

import (
	"math"
	"time"
)

// Coordinates is a WGS84 lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are finite and within range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// FlightCategory is the ICAO-style VFR/MVFR/IFR/LIFR classification. The zero
// value means the category has not (or could not) be determined.
type FlightCategory string

const (
	CategoryVFR  FlightCategory = "VFR"
	CategoryMVFR FlightCategory = "MVFR"
	CategoryIFR  FlightCategory = "IFR"
	CategoryLIFR FlightCategory = "LIFR"
)

// Status tags a report as usable or as an explicit no-data result.
type Status string

const (
	StatusOK     Status = "OK"
	StatusNoData Status = "NO_DATA"
)

// StatusForecastFallback is the detail attached to a report when a forecast
// hour could not be matched and current conditions are shown instead.
const StatusForecastFallback = "forecast unavailable, showing current conditions"

// LandingRecommendation is the helideck go/no-go assessment.
type LandingRecommendation string

const (
	LandingSuitable         LandingRecommendation = "SUITABLE"
	LandingMarginal         LandingRecommendation = "MARGINAL"
	LandingNotSuitable      LandingRecommendation = "NOT_SUITABLE"
	LandingInsufficientData LandingRecommendation = "INSUFFICIENT_DATA"
)

// HazardType identifies an operational weather hazard.
type HazardType string

const (
	HazardIcing      HazardType = "ICING"
	HazardTurbulence HazardType = "TURBULENCE"
	HazardConvective HazardType = "CONVECTIVE"
)

// Hazard is one identified flight hazard with its fixed operational guidance.
type Hazard struct {
	Type       HazardType `json:"type"`
	Severity   string     `json:"severity"`
	Impact     string     `json:"impact"`
	Mitigation string     `json:"mitigation"`
}

// RiskLevel is the aggregate operational risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Report is a normalized weather report for a single location and instant.
// Reports are never mutated after assembly; a refresh produces a new Report.
type Report struct {
	LocationID  string      `json:"locationId"`
	Coordinates Coordinates `json:"coordinates"`

	// Timestamp is the assembly time, ValidTime the instant the sample
	// describes (equal for current conditions).
	Timestamp time.Time `json:"timestamp"`
	ValidTime time.Time `json:"validTime"`

	Source string `json:"source"`
	Status Status `json:"status"`

	// StatusDetail carries the human-readable degradation notice, e.g. when
	// the requested forecast hour was unavailable.
	StatusDetail     string `json:"statusDetail,omitempty"`
	ForecastFallback bool   `json:"forecastFallback,omitempty"`

	Params *Store `json:"-"`

	FlightCategory FlightCategory `json:"flightCategory,omitempty"`
	Hazards        []Hazard       `json:"hazards,omitempty"`
	Risk           RiskLevel      `json:"risk,omitempty"`
}

// NewReport returns a report shell with an empty parameter store.
func NewReport(locationID string, coords Coordinates, source string) *Report {
	return &Report{
		LocationID:  locationID,
		Coordinates: coords,
		Timestamp:   time.Now().UTC(),
		Source:      source,
		Status:      StatusOK,
		Params:      NewStore(),
	}
}

// NoDataReport returns the explicit no-data result for a location. It is the
// only report shape producible without provider data.
func NoDataReport(locationID string, coords Coordinates) *Report {
	r := NewReport(locationID, coords, "")
	r.Status = StatusNoData
	return r
}

// RigReport extends Report with helideck and sea-state assessment for an
// offshore landing site.
type RigReport struct {
	Report

	HelideckStatus        string                `json:"helideckStatus"`
	SeaState              int                   `json:"seaState"`
	WaveHeight            float64               `json:"waveHeight"`
	PlatformMotion        string                `json:"platformMotion"`
	LandingRecommendation LandingRecommendation `json:"landingRecommendation"`
	AlternateRequired     bool                  `json:"alternateRequired"`
}
