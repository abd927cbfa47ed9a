// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package metar parses free-text aviation weather observation strings into
// typed fields. It understands both standard METAR wind groups and the
// slash-separated pseudo-observation layout used by offshore rig reports.
package metar

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/DaVinciHack/fast-planner-weather/internal/units"
)

// ErrEmptyInput is returned when the observation string is blank.
var ErrEmptyInput = errors.New("empty observation string")

// CloudCoverage is a cloud layer coverage code.
type CloudCoverage string

const (
	CoverageFew       CloudCoverage = "FEW"
	CoverageScattered CloudCoverage = "SCT"
	CoverageBroken    CloudCoverage = "BKN"
	CoverageOvercast  CloudCoverage = "OVC"
)

// CloudLayer is one parsed cloud layer.
type CloudLayer struct {
	Coverage   CloudCoverage
	AltitudeFt int
}

// Phenomenon is one parsed present-weather group.
type Phenomenon struct {
	Intensity   string // "-", "+" or "" for moderate
	Code        string // e.g. "RA", "TSRA", "FZFG"
	Description string
}

// Observation holds every field extracted from a raw observation string.
// Fields that failed to parse are nil; a partial parse never fails the whole
// observation.
type Observation struct {
	Raw string

	WindDirection *float64 // degrees true; nil for variable wind
	WindSpeed     *float64 // knots
	WindGust      *float64 // knots

	VisibilitySM  *float64
	TemperatureC  *float64
	DewpointC     *float64
	AltimeterInHg *float64

	CloudLayers []CloudLayer
	SkyObserved bool // true when a cloud group or clear-sky token was present
	Phenomena   []Phenomenon
}

var (
	// Rig-style slash wind: 174/12KT, 174/12G25KT. This form MUST be tried
	// before the standard group, whose regex would otherwise consume the
	// digits of the direction and speed across the slash.
	reWindSlash = regexp.MustCompile(`^(\d{3})/(\d{2,3})(?:G(\d{2,3}))?(KT|MPH)$`)

	// Standard wind: 21518KT, 21518G25KT, VRB05KT, 00000KT. Automated
	// coastal stations occasionally report in MPH; speeds normalize to
	// knots either way.
	reWindStd = regexp.MustCompile(`^(\d{3}|VRB)(\d{2,3})(?:G(\d{2,3}))?(KT|MPH)$`)

	// Variable wind direction range: 180V240 (carries no speed, ignored)
	reWindVar = regexp.MustCompile(`^\d{3}V\d{3}$`)

	// Visibility: 10SM, 1/2SM, M1/4SM
	reVisWhole = regexp.MustCompile(`^(\d{1,3})SM$`)
	reVisFrac  = regexp.MustCompile(`^M?(\d+)/(\d+)SM$`)

	// Temperature/dewpoint: 15/12, M05/M10
	reTempDew = regexp.MustCompile(`^(M?\d{2})/(M?\d{2})$`)

	// Altimeter: A2992 (hundredths of inHg) or Q1013 (hPa)
	reAltimeterA = regexp.MustCompile(`^A(\d{4})$`)
	reAltimeterQ = regexp.MustCompile(`^Q(\d{3,4})$`)

	// Cloud layer: BKN008, OVC015CB, FEW250
	reCloud = regexp.MustCompile(`^(FEW|SCT|BKN|OVC)(\d{3})(?:CB|TCU)?$`)

	// Present weather: optional intensity and descriptor plus phenomenon codes
	reWeather = regexp.MustCompile(
		`^([+-])?(VC)?(TS|SH|FZ|DR|BL|MI|BC|PR)?` +
			`(DZ|RA|SN|SG|IC|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PO|SQ|FC|SS|DS)?$`)
)

var clearSkyTokens = map[string]bool{
	"SKC": true, "CLR": true, "NSC": true, "NCD": true, "CAVOK": true,
}

var phenomenonNames = map[string]string{
	"DZ": "drizzle", "RA": "rain", "SN": "snow", "SG": "snow grains",
	"IC": "ice crystals", "PL": "ice pellets", "GR": "hail", "GS": "small hail",
	"UP": "unknown precipitation", "BR": "mist", "FG": "fog", "FU": "smoke",
	"VA": "volcanic ash", "DU": "dust", "SA": "sand", "HZ": "haze",
	"PO": "dust whirls", "SQ": "squalls", "FC": "funnel cloud",
	"SS": "sandstorm", "DS": "duststorm",
}

var descriptorNames = map[string]string{
	"TS": "thunderstorm", "SH": "showers", "FZ": "freezing", "DR": "drifting",
	"BL": "blowing", "MI": "shallow", "BC": "patches", "PR": "partial",
}

// Parse extracts all recognizable fields from a raw observation string.
// Unparseable groups are skipped field by field; only a blank input is an
// error.
func Parse(raw string) (*Observation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyInput
	}

	obs := &Observation{Raw: raw}

	// Remarks never contribute to the operational fields.
	body := raw
	if i := strings.Index(raw, " RMK "); i > 0 {
		body = raw[:i]
	}

	tokens := strings.Fields(body)
	prev := ""
	for _, token := range tokens {
		switch {
		case obs.parseWind(token):
		case obs.parseVisibility(token, prev):
		case obs.parseCloud(token):
		case obs.parseTempDew(token):
		case obs.parseAltimeter(token):
		case obs.parseWeather(token):
		case reWindVar.MatchString(token):
			// direction variability range, no speed information
		}
		prev = token
	}

	return obs, nil
}

// Ceiling returns the altitude of the lowest broken or overcast layer, or nil
// when no such layer exists. FEW and SCT layers never establish a ceiling.
func (o *Observation) Ceiling() *float64 {
	var ceiling *float64
	for _, layer := range o.CloudLayers {
		if layer.Coverage != CoverageBroken && layer.Coverage != CoverageOvercast {
			continue
		}
		alt := float64(layer.AltitudeFt)
		if ceiling == nil || alt < *ceiling {
			v := alt
			ceiling = &v
		}
	}
	return ceiling
}

// HasThunderstorm reports whether any present-weather group indicates
// thunderstorm activity.
func (o *Observation) HasThunderstorm() bool {
	for _, p := range o.Phenomena {
		if strings.Contains(p.Code, "TS") {
			return true
		}
	}
	return false
}

// HasFreezingPrecipitation reports whether freezing precipitation was
// observed, an icing indicator for the classification layer.
func (o *Observation) HasFreezingPrecipitation() bool {
	for _, p := range o.Phenomena {
		if strings.Contains(p.Code, "FZ") {
			return true
		}
	}
	return false
}

func (o *Observation) parseWind(token string) bool {
	if o.WindSpeed != nil {
		return false
	}

	// Slash form first: the rig convention 174/12G25KT must not be consumed
	// by the standard-form pattern.
	if m := reWindSlash.FindStringSubmatch(token); m != nil {
		dir, _ := strconv.ParseFloat(m[1], 64)
		o.WindDirection = &dir
		o.setWindSpeed(m[2], m[3], m[4])
		return true
	}
	if m := reWindStd.FindStringSubmatch(token); m != nil {
		if m[1] != "VRB" {
			dir, _ := strconv.ParseFloat(m[1], 64)
			o.WindDirection = &dir
		}
		o.setWindSpeed(m[2], m[3], m[4])
		return true
	}
	return false
}

func (o *Observation) setWindSpeed(speedStr, gustStr, unit string) {
	speed, _ := strconv.ParseFloat(speedStr, 64)
	if unit == "MPH" {
		speed = units.MphToKt(speed)
	}
	o.WindSpeed = &speed
	if gustStr != "" {
		gust, _ := strconv.ParseFloat(gustStr, 64)
		if unit == "MPH" {
			gust = units.MphToKt(gust)
		}
		o.WindGust = &gust
	}
}

func (o *Observation) parseVisibility(token, prev string) bool {
	if o.VisibilitySM != nil {
		return false
	}

	if m := reVisWhole.FindStringSubmatch(token); m != nil {
		vis, _ := strconv.ParseFloat(m[1], 64)
		o.VisibilitySM = &vis
		return true
	}
	if m := reVisFrac.FindStringSubmatch(token); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return false
		}
		vis := num / den
		// A leading whole-mile token turns "1 1/2SM" into 1.5.
		if whole, err := strconv.ParseFloat(prev, 64); err == nil && whole > 0 && whole < 10 {
			vis += whole
		}
		o.VisibilitySM = &vis
		return true
	}
	return false
}

func (o *Observation) parseCloud(token string) bool {
	if clearSkyTokens[token] {
		o.SkyObserved = true
		if token == "CAVOK" && o.VisibilitySM == nil {
			// CAVOK asserts visibility of 10 km or more.
			vis := units.KmToMiles(10)
			o.VisibilitySM = &vis
		}
		return true
	}
	if m := reCloud.FindStringSubmatch(token); m != nil {
		hundreds, _ := strconv.Atoi(m[2])
		o.CloudLayers = append(o.CloudLayers, CloudLayer{
			Coverage:   CloudCoverage(m[1]),
			AltitudeFt: hundreds * 100,
		})
		o.SkyObserved = true
		return true
	}
	return false
}

func (o *Observation) parseTempDew(token string) bool {
	if o.TemperatureC != nil {
		return false
	}
	m := reTempDew.FindStringSubmatch(token)
	if m == nil {
		return false
	}
	temp := parseSignedTemp(m[1])
	dew := parseSignedTemp(m[2])
	o.TemperatureC = &temp
	o.DewpointC = &dew
	return true
}

func parseSignedTemp(s string) float64 {
	neg := strings.HasPrefix(s, "M")
	v, _ := strconv.ParseFloat(strings.TrimPrefix(s, "M"), 64)
	if neg {
		return -v
	}
	return v
}

func (o *Observation) parseAltimeter(token string) bool {
	if o.AltimeterInHg != nil {
		return false
	}
	if m := reAltimeterA.FindStringSubmatch(token); m != nil {
		hundredths, _ := strconv.ParseFloat(m[1], 64)
		v := hundredths / 100
		o.AltimeterInHg = &v
		return true
	}
	if m := reAltimeterQ.FindStringSubmatch(token); m != nil {
		hpa, _ := strconv.ParseFloat(m[1], 64)
		v := units.HPaToInchesHg(hpa)
		o.AltimeterInHg = &v
		return true
	}
	return false
}

func (o *Observation) parseWeather(token string) bool {
	m := reWeather.FindStringSubmatch(token)
	if m == nil {
		return false
	}
	descriptor, code := m[3], m[4]
	if descriptor == "" && code == "" {
		return false
	}

	name := phenomenonNames[code]
	if descriptor != "" {
		if name == "" {
			name = descriptorNames[descriptor]
		} else {
			name = descriptorNames[descriptor] + " " + name
		}
	}

	o.Phenomena = append(o.Phenomena, Phenomenon{
		Intensity:   m[1],
		Code:        descriptor + code,
		Description: name,
	})
	return true
}
