// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package wx

import (
	"testing"
	"time"
)

func fptr(v float64) *float64 {
	return &v
}

func TestCalculateFlightCategory(t *testing.T) {
	t.Run("category follows the ICAO interval edges", func(t *testing.T) {
		tests := []struct {
			name    string
			ceiling *float64
			vis     *float64
			want    FlightCategory
		}{
			{"ceiling below 500 is LIFR", fptr(499), fptr(10), CategoryLIFR},
			{"ceiling exactly 500 is IFR", fptr(500), fptr(10), CategoryIFR},
			{"visibility below 1 is LIFR", fptr(5000), fptr(0.5), CategoryLIFR},
			{"visibility exactly 1 is IFR", fptr(5000), fptr(1), CategoryIFR},
			{"ceiling 999 is IFR", fptr(999), fptr(10), CategoryIFR},
			{"ceiling exactly 1000 is MVFR", fptr(1000), fptr(10), CategoryMVFR},
			{"visibility 2.9 is IFR", fptr(5000), fptr(2.9), CategoryIFR},
			{"visibility exactly 3 is MVFR", fptr(5000), fptr(3), CategoryMVFR},
			{"ceiling exactly 3000 is MVFR", fptr(3000), fptr(10), CategoryMVFR},
			{"ceiling 3001 with good visibility is VFR", fptr(3001), fptr(10), CategoryVFR},
			{"visibility exactly 5 is MVFR", fptr(5000), fptr(5), CategoryMVFR},
			{"visibility 5.1 with high ceiling is VFR", fptr(5000), fptr(5.1), CategoryVFR},
			{"absent ceiling depends on visibility alone", nil, fptr(10), CategoryVFR},
			{"absent ceiling with low visibility is LIFR", nil, fptr(0.25), CategoryLIFR},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if got := CalculateFlightCategory(tc.ceiling, tc.vis); got != tc.want {
					t.Errorf("expected category %s, got %s", tc.want, got)
				}
			})
		}
	})
	t.Run("missing visibility yields no category", func(t *testing.T) {
		if got := CalculateFlightCategory(fptr(200), nil); got != "" {
			t.Errorf("expected empty category, got %s", got)
		}
	})
	t.Run("worst input wins over the better one", func(t *testing.T) {
		// Good ceiling, terrible visibility must still be LIFR.
		if got := CalculateFlightCategory(fptr(5000), fptr(0.5)); got != CategoryLIFR {
			t.Errorf("expected LIFR, got %s", got)
		}
	})
}

func TestSeaState(t *testing.T) {
	t.Run("douglas scale steps", func(t *testing.T) {
		tests := []struct {
			height float64
			want   int
		}{
			{0.05, 0}, {0.09, 0}, {0.1, 1}, {0.49, 1}, {0.5, 2}, {1.0, 2},
			{1.25, 3}, {2.49, 3}, {2.5, 4}, {3.99, 4}, {5.0, 5}, {8.0, 6},
			{13.0, 7}, {14.0, 8}, {20.0, 8},
		}
		for _, tc := range tests {
			if got := SeaState(tc.height); got != tc.want {
				t.Errorf("expected sea state %d for %.2fm, got %d", tc.want, tc.height, got)
			}
		}
	})
	t.Run("sea state is non-decreasing in wave height", func(t *testing.T) {
		prev := -1
		for h := 0.0; h < 16; h += 0.05 {
			state := SeaState(h)
			if state < prev {
				t.Fatalf("sea state decreased from %d to %d at %.2fm", prev, state, h)
			}
			prev = state
		}
	})
}

func TestHelideckSuitability(t *testing.T) {
	t.Run("suitability degrades monotonically", func(t *testing.T) {
		tests := []struct {
			name                  string
			wind, vis, ceiling    *float64
			want                  LandingRecommendation
			wantAlternateRequired bool
		}{
			{"benign conditions", fptr(20), fptr(5), fptr(2000), LandingSuitable, false},
			{"boundary suitable", fptr(35), fptr(1), fptr(500), LandingSuitable, false},
			{"degraded conditions", fptr(40), fptr(0.8), fptr(300), LandingMarginal, true},
			{"boundary marginal", fptr(45), fptr(0.5), fptr(200), LandingMarginal, true},
			{"severe conditions", fptr(60), fptr(0.2), fptr(100), LandingNotSuitable, true},
			{"wind alone forces marginal", fptr(40), fptr(5), fptr(2000), LandingMarginal, true},
			{"wind alone forces not suitable", fptr(46), fptr(5), fptr(2000), LandingNotSuitable, true},
			{"missing wind", nil, fptr(5), fptr(2000), LandingInsufficientData, false},
			{"missing visibility", fptr(20), nil, fptr(2000), LandingInsufficientData, false},
			{"missing ceiling", fptr(20), fptr(5), nil, LandingInsufficientData, false},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				got := HelideckSuitability(tc.wind, tc.vis, tc.ceiling)
				if got != tc.want {
					t.Errorf("expected %s, got %s", tc.want, got)
				}
				if AlternateRequired(got) != tc.wantAlternateRequired {
					t.Errorf("expected alternate required to be %t for %s", tc.wantAlternateRequired, got)
				}
			})
		}
	})
}

func TestIdentifyHazards(t *testing.T) {
	now := time.Now()

	t.Run("no hazards on an empty store", func(t *testing.T) {
		if hazards := IdentifyHazards(NewStore()); len(hazards) != 0 {
			t.Errorf("expected no hazards, got %d", len(hazards))
		}
	})
	t.Run("light icing and turbulence are below the hazard bar", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamIcing, 2, "ordinal", now)
		store.Set(ParamTurbulence, 1, "ordinal", now)
		if hazards := IdentifyHazards(store); len(hazards) != 0 {
			t.Errorf("expected no hazards, got %v", hazards)
		}
	})
	t.Run("moderate intensities and convective flag each yield a hazard", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamIcing, 3, "ordinal", now)
		store.Set(ParamTurbulence, 2, "ordinal", now)
		store.Set(ParamConvective, 1, "flag", now)

		hazards := IdentifyHazards(store)
		if len(hazards) != 3 {
			t.Fatalf("expected 3 hazards, got %d", len(hazards))
		}
		wantTypes := []HazardType{HazardIcing, HazardTurbulence, HazardConvective}
		for i, want := range wantTypes {
			if hazards[i].Type != want {
				t.Errorf("expected hazard %d to be %s, got %s", i, want, hazards[i].Type)
			}
			if hazards[i].Impact == "" || hazards[i].Mitigation == "" {
				t.Errorf("expected hazard %s to carry impact and mitigation text", want)
			}
		}
		if hazards[0].Severity != "MODERATE" {
			t.Errorf("expected icing severity MODERATE, got %s", hazards[0].Severity)
		}
		if hazards[1].Severity != "MODERATE" {
			t.Errorf("expected turbulence severity MODERATE, got %s", hazards[1].Severity)
		}
	})
	t.Run("severe ordinals map to their severity names", func(t *testing.T) {
		store := NewStore()
		store.Set(ParamIcing, 4, "ordinal", now)
		store.Set(ParamTurbulence, 4, "ordinal", now)

		hazards := IdentifyHazards(store)
		if len(hazards) != 2 {
			t.Fatalf("expected 2 hazards, got %d", len(hazards))
		}
		if hazards[0].Severity != "SEVERE" {
			t.Errorf("expected icing severity SEVERE, got %s", hazards[0].Severity)
		}
		if hazards[1].Severity != "EXTREME" {
			t.Errorf("expected turbulence severity EXTREME, got %s", hazards[1].Severity)
		}
	})
}

func TestAssessRisk(t *testing.T) {
	hazard := []Hazard{{Type: HazardConvective}}

	tests := []struct {
		name    string
		wind    *float64
		vis     *float64
		wave    *float64
		hazards []Hazard
		want    RiskLevel
	}{
		{"no factors", fptr(10), fptr(6), fptr(1), nil, RiskLow},
		{"missing inputs contribute no factor", nil, nil, nil, nil, RiskLow},
		{"one factor", fptr(35), fptr(6), fptr(1), nil, RiskMedium},
		{"two factors", fptr(35), fptr(1), fptr(1), nil, RiskMedium},
		{"three factors", fptr(35), fptr(1), fptr(4), nil, RiskHigh},
		{"hazard counts as a factor", fptr(10), fptr(6), fptr(1), hazard, RiskMedium},
		{"all four factors", fptr(35), fptr(1), fptr(4), hazard, RiskHigh},
		{"boundary wind of 30 is not a factor", fptr(30), fptr(6), fptr(1), nil, RiskLow},
		{"boundary visibility of 2 is not a factor", fptr(10), fptr(2), fptr(1), nil, RiskLow},
		{"boundary wave of 3 is not a factor", fptr(10), fptr(6), fptr(3), nil, RiskLow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AssessRisk(tc.wind, tc.vis, tc.wave, tc.hazards); got != tc.want {
				t.Errorf("expected risk %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPlatformMotion(t *testing.T) {
	tests := []struct {
		name   string
		height *float64
		period *float64
		want   string
	}{
		{"missing wave height", nil, nil, "UNKNOWN"},
		{"calm sea", fptr(0.5), fptr(8), "LOW"},
		{"moderate sea", fptr(2), fptr(8), "MODERATE"},
		{"high sea", fptr(4), fptr(8), "HIGH"},
		{"short period aggravates motion", fptr(0.5), fptr(4), "MODERATE"},
		{"short period cannot exceed high", fptr(4), fptr(4), "HIGH"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlatformMotion(tc.height, tc.period); got != tc.want {
				t.Errorf("expected motion %s, got %s", tc.want, got)
			}
		})
	}
}
