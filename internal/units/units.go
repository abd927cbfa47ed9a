// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package units holds the unit conversions applied when normalizing upstream
// provider payloads into the report parameter set.
package units

// Conversion factors. Wind and distance factors are the exact constants used
// when normalizing provider payloads; do not "simplify" them.
const (
	KmhToKnots    = 0.539957
	MphToKnots    = 0.868976
	HPaToInHg     = 0.02953
	KmToStatute   = 0.621371
	MetersPerMile = 1609.34
)

// KmhToKt converts a wind speed from km/h to knots.
func KmhToKt(kmh float64) float64 {
	return kmh * KmhToKnots
}

// MphToKt converts a wind speed from mph to knots.
func MphToKt(mph float64) float64 {
	return mph * MphToKnots
}

// CelsiusToFahrenheit converts a temperature from °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// HPaToInchesHg converts a pressure from hPa to inches of mercury.
func HPaToInchesHg(hpa float64) float64 {
	return hpa * HPaToInHg
}

// KmToMiles converts a distance from kilometers to statute miles.
func KmToMiles(km float64) float64 {
	return km * KmToStatute
}

// MetersToMiles converts a distance from meters to statute miles.
func MetersToMiles(m float64) float64 {
	return m / MetersPerMile
}
