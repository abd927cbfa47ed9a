// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package units

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"km/h to knots", KmhToKt(100), 53.9957},
		{"mph to knots", MphToKt(100), 86.8976},
		{"celsius to fahrenheit", CelsiusToFahrenheit(20), 68},
		{"celsius to fahrenheit below zero", CelsiusToFahrenheit(-40), -40},
		{"hPa to inHg", HPaToInchesHg(1013.25), 29.921272},
		{"km to statute miles", KmToMiles(10), 6.21371},
		{"meters to statute miles", MetersToMiles(1609.34), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !almostEqual(tc.got, tc.want) {
				t.Errorf("expected %f, got %f", tc.want, tc.got)
			}
		})
	}
}

func TestZeroValues(t *testing.T) {
	t.Run("zero wind stays zero", func(t *testing.T) {
		if KmhToKt(0) != 0 || MphToKt(0) != 0 {
			t.Error("expected zero wind speed to convert to zero knots")
		}
	})
}
