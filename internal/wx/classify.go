// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package wx

// Classification thresholds. The flight category boundaries follow the ICAO
// style intervals: a boundary value always belongs to the better category.
const (
	lifrCeilingFt    = 500
	ifrCeilingFt     = 1000
	mvfrCeilingFt    = 3000
	lifrVisibilitySM = 1
	ifrVisibilitySM  = 3
	mvfrVisibilitySM = 5

	helideckWindSuitableKt    = 35
	helideckWindMarginalKt    = 45
	helideckVisSuitableSM     = 1
	helideckVisMarginalSM     = 0.5
	helideckCeilingSuitableFt = 500
	helideckCeilingMarginalFt = 200
	icingHazardOrdinal        = 3
	turbulenceHazardOrdinal   = 2
	riskWindKt                = 30
	riskVisibilitySM          = 2
	riskWaveHeightM           = 3
)

// CalculateFlightCategory derives the flight category from ceiling (ft AGL)
// and visibility (SM). A nil visibility means the category cannot be
// determined and the zero category is returned, never a guess. A nil ceiling
// means no broken or overcast layer exists and the sky is treated as
// unrestricted.
func CalculateFlightCategory(ceilingFt, visibilitySM *float64) FlightCategory {
	if visibilitySM == nil {
		return ""
	}
	vis := *visibilitySM
	ceiling := float64(UnlimitedCeiling)
	if ceilingFt != nil {
		ceiling = *ceilingFt
	}

	switch {
	case ceiling < lifrCeilingFt || vis < lifrVisibilitySM:
		return CategoryLIFR
	case ceiling < ifrCeilingFt || vis < ifrVisibilitySM:
		return CategoryIFR
	case ceiling <= mvfrCeilingFt || vis <= mvfrVisibilitySM:
		return CategoryMVFR
	default:
		return CategoryVFR
	}
}

// SeaState maps a significant wave height in meters onto the Douglas 0-8
// scale.
func SeaState(waveHeightM float64) int {
	switch {
	case waveHeightM < 0.1:
		return 0
	case waveHeightM < 0.5:
		return 1
	case waveHeightM < 1.25:
		return 2
	case waveHeightM < 2.5:
		return 3
	case waveHeightM < 4:
		return 4
	case waveHeightM < 6:
		return 5
	case waveHeightM < 9:
		return 6
	case waveHeightM < 14:
		return 7
	default:
		return 8
	}
}

// HelideckSuitability assesses deck landing conditions from wind (kt),
// visibility (SM) and ceiling (ft AGL). Any missing input yields
// INSUFFICIENT_DATA; defaults are never inferred.
func HelideckSuitability(windKt, visibilitySM, ceilingFt *float64) LandingRecommendation {
	if windKt == nil || visibilitySM == nil || ceilingFt == nil {
		return LandingInsufficientData
	}
	wind, vis, ceiling := *windKt, *visibilitySM, *ceilingFt

	if wind <= helideckWindSuitableKt && vis >= helideckVisSuitableSM && ceiling >= helideckCeilingSuitableFt {
		return LandingSuitable
	}
	if wind <= helideckWindMarginalKt && vis >= helideckVisMarginalSM && ceiling >= helideckCeilingMarginalFt {
		return LandingMarginal
	}
	return LandingNotSuitable
}

// AlternateRequired reports whether a recommendation mandates an alternate
// landing site.
func AlternateRequired(rec LandingRecommendation) bool {
	return rec == LandingMarginal || rec == LandingNotSuitable
}

var icingSeverity = [...]string{"NONE", "TRACE", "LIGHT", "MODERATE", "SEVERE"}

var turbulenceSeverity = [...]string{"NONE", "LIGHT", "MODERATE", "SEVERE", "EXTREME"}

// IdentifyHazards collects the operational hazards indicated by the stored
// icing, turbulence and convective parameters. Each hazard carries its fixed
// impact and mitigation guidance.
func IdentifyHazards(store *Store) []Hazard {
	var hazards []Hazard

	if v, ok := store.Value(ParamIcing); ok && int(v) >= icingHazardOrdinal {
		hazards = append(hazards, Hazard{
			Type:       HazardIcing,
			Severity:   ordinalName(icingSeverity[:], int(v)),
			Impact:     "Airframe and rotor icing; lift loss and added weight",
			Mitigation: "Avoid visible moisture below freezing level, use anti-ice equipped aircraft or delay departure",
		})
	}
	if v, ok := store.Value(ParamTurbulence); ok && int(v) >= turbulenceHazardOrdinal {
		hazards = append(hazards, Hazard{
			Type:       HazardTurbulence,
			Severity:   ordinalName(turbulenceSeverity[:], int(v)),
			Impact:     "Moderate or greater turbulence; handling and passenger injury risk on approach",
			Mitigation: "Reduce airspeed, secure cabin, consider alternate routing or arrival timing",
		})
	}
	if v, ok := store.Value(ParamConvective); ok && v > 0 {
		hazards = append(hazards, Hazard{
			Type:       HazardConvective,
			Severity:   "ACTIVE",
			Impact:     "Thunderstorm activity; lightning, windshear and downdraft risk",
			Mitigation: "Remain clear of convective cells, hold or divert until activity passes",
		})
	}

	return hazards
}

func ordinalName(names []string, ordinal int) string {
	if ordinal < 0 {
		ordinal = 0
	}
	if ordinal >= len(names) {
		ordinal = len(names) - 1
	}
	return names[ordinal]
}

// AssessRisk counts the applicable risk factors and maps the count onto a
// risk level. A missing input simply contributes no factor.
func AssessRisk(windKt, visibilitySM, waveHeightM *float64, hazards []Hazard) RiskLevel {
	factors := 0
	if windKt != nil && *windKt > riskWindKt {
		factors++
	}
	if visibilitySM != nil && *visibilitySM < riskVisibilitySM {
		factors++
	}
	if waveHeightM != nil && *waveHeightM > riskWaveHeightM {
		factors++
	}
	if len(hazards) > 0 {
		factors++
	}

	switch {
	case factors == 0:
		return RiskLow
	case factors <= 2:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// PlatformMotion gives a qualitative deck motion estimate from the sea state.
// Short wave periods aggravate heave, so a period below 6 seconds bumps the
// estimate one step.
func PlatformMotion(waveHeightM, wavePeriodS *float64) string {
	if waveHeightM == nil {
		return "UNKNOWN"
	}
	step := 0
	switch {
	case *waveHeightM < 1.5:
		step = 0
	case *waveHeightM < 3:
		step = 1
	default:
		step = 2
	}
	if wavePeriodS != nil && *wavePeriodS > 0 && *wavePeriodS < 6 && step < 2 {
		step++
	}
	return [...]string{"LOW", "MODERATE", "HIGH"}[step]
}
