// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/observability"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider"
	"github.com/DaVinciHack/fast-planner-weather/internal/series"
	"github.com/DaVinciHack/fast-planner-weather/internal/units"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

// ErrInvalidRigCoordinates is returned for rigs whose coordinates are
// structurally missing or out of range. Provider failures never produce this
// error; they degrade to INSUFFICIENT_DATA instead.
var ErrInvalidRigCoordinates = errors.New("invalid rig coordinates")

// Location is the canonical normalized location record. External records of
// any shape are mapped into this type at the system boundary; internal code
// never re-sniffs field variants.
type Location struct {
	ID          string
	Coordinates wx.Coordinates
}

// Rig is an offshore landing site (rig, platform or airport helideck).
type Rig struct {
	Name        string
	Coordinates wx.Coordinates
}

// Options control a report request.
type Options struct {
	// ArrivalTime selects the forecast sample for a future arrival. Nil
	// requests current conditions.
	ArrivalTime *time.Time
}

// Assembler orchestrates provider chain, sample selection, classification
// and caching into finished reports.
type Assembler struct {
	base     *provider.Chain
	marine   *provider.Chain
	selector *series.Selector
	clock    clockwork.Clock
	log      *logger.Logger
	metrics  *observability.Metrics

	locations *Cache[*wx.Report]
	rigs      *Cache[*wx.RigReport]
}

// NewAssembler wires a report assembler. The base chain produces the primary
// report data, the marine chain enriches rig reports with wave data and may
// be nil when no marine source is configured. NO_DATA reports are cached for
// ttlNoData instead of ttl so a recovered provider is retried sooner.
func NewAssembler(base, marine *provider.Chain, selector *series.Selector, ttl, ttlNoData time.Duration,
	clock clockwork.Clock, log *logger.Logger, metrics *observability.Metrics,
) *Assembler {
	return &Assembler{
		base:      base,
		marine:    marine,
		selector:  selector,
		clock:     clock,
		log:       log,
		metrics:   metrics,
		locations: NewCache[*wx.Report](ttl, ttlNoData, clock, metrics),
		rigs:      NewCache[*wx.RigReport](ttl, ttlNoData, clock, metrics),
	}
}

// WeatherForLocation returns the weather report for a location, from cache
// when fresh. Invalid coordinates yield a nil report and no error: absence of
// weather must never abort a caller's larger computation. When every provider
// fails the report carries the NO_DATA status instead of an error.
func (a *Assembler) WeatherForLocation(ctx context.Context, loc Location, opts Options) (*wx.Report, error) {
	if !loc.Coordinates.Valid() {
		a.log.Warn("invalid location coordinates, skipping weather lookup",
			"location", loc.ID, "lat", loc.Coordinates.Lat, "lon", loc.Coordinates.Lon)
		return nil, nil
	}

	if cached, ok := a.locations.Get(loc.Coordinates, opts); ok {
		return cached, nil
	}

	rep := a.assemble(ctx, loc.ID, loc.Coordinates, opts)
	a.metrics.ReportsAssembled.WithLabelValues("location", statusLabel(rep.Status)).Inc()
	a.locations.Put(loc.Coordinates, opts, rep, rep.Status == wx.StatusNoData)
	return rep, nil
}

// RigWeatherReport returns the rig weather report including helideck and
// sea-state assessment. Only structurally missing coordinates are an error;
// provider failures degrade to INSUFFICIENT_DATA.
func (a *Assembler) RigWeatherReport(ctx context.Context, rig Rig, opts Options) (*wx.RigReport, error) {
	if !rig.Coordinates.Valid() || (rig.Coordinates.Lat == 0 && rig.Coordinates.Lon == 0) {
		return nil, ErrInvalidRigCoordinates
	}

	if cached, ok := a.rigs.Get(rig.Coordinates, opts); ok {
		return cached, nil
	}

	base := a.assemble(ctx, rig.Name, rig.Coordinates, opts)
	rep := &wx.RigReport{Report: *base}

	a.mergeMarine(ctx, rep, opts)
	a.classifyRig(rep)

	a.metrics.ReportsAssembled.WithLabelValues("rig", statusLabel(rep.Status)).Inc()
	a.rigs.Put(rig.Coordinates, opts, rep, rep.Status == wx.StatusNoData)
	return rep, nil
}

// WeatherForAllRigs fans out one report request per rig concurrently and
// waits for all of them to settle. A failing rig is recorded and omitted;
// callers detect failures as missing keys.
func (a *Assembler) WeatherForAllRigs(ctx context.Context, rigs []Rig) map[string]*wx.RigReport {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		reports = make(map[string]*wx.RigReport, len(rigs))
	)

	for _, rig := range rigs {
		wg.Add(1)
		go func(rig Rig) {
			defer wg.Done()
			rep, err := a.RigWeatherReport(ctx, rig, Options{})
			if err != nil {
				a.metrics.BatchFailures.Inc()
				a.log.Warn("rig weather fetch failed, omitting from batch",
					"rig", rig.Name, logger.Err(err))
				return
			}
			mu.Lock()
			reports[rig.Name] = rep
			mu.Unlock()
		}(rig)
	}
	wg.Wait()

	return reports
}

// IsStale reports whether a report a caller holds is older than the
// staleness window.
func (a *Assembler) IsStale(rep *wx.Report) bool {
	if rep == nil {
		return true
	}
	return a.clock.Now().Sub(rep.Timestamp) > StalenessTTL
}

// SweepCaches removes expired entries from both report caches and returns
// the total eviction count.
func (a *Assembler) SweepCaches() int {
	return a.locations.Sweep() + a.rigs.Sweep()
}

// assemble runs the base provider chain and builds a classified report. It
// never returns nil; total provider failure yields a NO_DATA report.
func (a *Assembler) assemble(ctx context.Context, id string, coords wx.Coordinates, opts Options) *wx.Report {
	data, err := a.base.Fetch(ctx, coords)
	if err != nil {
		a.log.Warn("no provider returned weather data", "location", id, logger.Err(err))
		rep := wx.NoDataReport(id, coords)
		rep.Timestamp = a.clock.Now().UTC()
		return rep
	}

	rep := wx.NewReport(id, coords, data.Provider)
	rep.Timestamp = a.clock.Now().UTC()
	rep.ValidTime = rep.Timestamp

	switch {
	case data.Series != nil:
		a.populateFromSeries(rep, data, opts)
	case data.Observation != nil:
		populateFromObservation(rep, data)
	default:
		rep.Status = wx.StatusNoData
	}
	if rep.Status == wx.StatusNoData {
		return rep
	}

	a.classify(rep)
	return rep
}

// populateFromSeries selects the sample for the requested instant and maps
// the upstream metric names onto normalized parameters.
func (a *Assembler) populateFromSeries(rep *wx.Report, data *provider.Data, opts Options) {
	sample, err := a.selector.Select(*data.Series, opts.ArrivalTime)
	if err != nil {
		rep.Status = wx.StatusNoData
		return
	}
	if sample.Fallback {
		rep.ForecastFallback = true
		rep.StatusDetail = wx.StatusForecastFallback
	}
	rep.ValidTime = sample.Time
	at := data.CapturedAt

	if v, ok := sample.Values["temperature_2m"]; ok {
		rep.Params.Set(wx.ParamTemperature, v, "°C", at)
	}
	if v, ok := sample.Values["dew_point_2m"]; ok {
		rep.Params.Set(wx.ParamDewpoint, v, "°C", at)
	}
	if v, ok := sample.Values["wind_speed_10m"]; ok {
		rep.Params.Set(wx.ParamWindSpeed, units.KmhToKt(v), "kt", at)
	}
	if v, ok := sample.Values["wind_gusts_10m"]; ok {
		rep.Params.Set(wx.ParamWindGust, units.KmhToKt(v), "kt", at)
	}
	if v, ok := sample.Values["wind_direction_10m"]; ok {
		rep.Params.Set(wx.ParamWindDirection, v, "°", at)
	}
	if v, ok := sample.Values["visibility"]; ok {
		rep.Params.Set(wx.ParamVisibility, units.MetersToMiles(v), "SM", at)
	}
	if v, ok := sample.Values["pressure_msl"]; ok {
		rep.Params.Set(wx.ParamAltimeter, units.HPaToInchesHg(v), "inHg", at)
	}
	if v, ok := sample.Values["wave_height"]; ok {
		rep.Params.Set(wx.ParamWaveHeight, v, "m", at)
	}
	if v, ok := sample.Values["wave_direction"]; ok {
		rep.Params.Set(wx.ParamWaveDirection, v, "°", at)
	}
	if v, ok := sample.Values["wave_period"]; ok {
		rep.Params.Set(wx.ParamWavePeriod, v, "s", at)
	}

	// A forecast carries no ceiling; below half cloud cover the sky is
	// treated as unrestricted, above it the ceiling is simply unknown.
	if v, ok := sample.Values["cloud_cover"]; ok && v <= 50 {
		rep.Params.Set(wx.ParamCeiling, wx.UnlimitedCeiling, "ft", at)
	}

	code, hasCode := sample.Values["weather_code"]
	if hasCode {
		rep.Params.Set(wx.ParamConvective, convectiveFromCode(int(code)), "flag", at)
		rep.Params.Set(wx.ParamIcing, icingFromCode(int(code)), "ordinal", at)
	}
	speed, hasSpeed := sample.Values["wind_speed_10m"]
	gust, hasGust := sample.Values["wind_gusts_10m"]
	if hasSpeed && hasGust {
		rep.Params.Set(wx.ParamTurbulence,
			turbulenceFromGustFactor(units.KmhToKt(speed), units.KmhToKt(gust)), "ordinal", at)
	}
}

// populateFromObservation maps a parsed aerodrome observation onto
// normalized parameters.
func populateFromObservation(rep *wx.Report, data *provider.Data) {
	obs := data.Observation
	at := data.CapturedAt
	rep.Source = data.Provider + ":" + data.Station
	if data.StationDist > 0 {
		// Angular degrees approximate nautical miles at 60 NM per degree.
		rep.Source = fmt.Sprintf("%s:%s (%.0f NM)", data.Provider, data.Station, data.StationDist*60)
	}
	rep.ValidTime = at

	if obs.WindDirection != nil {
		rep.Params.Set(wx.ParamWindDirection, *obs.WindDirection, "°", at)
	}
	if obs.WindSpeed != nil {
		rep.Params.Set(wx.ParamWindSpeed, *obs.WindSpeed, "kt", at)
	}
	if obs.WindGust != nil {
		rep.Params.Set(wx.ParamWindGust, *obs.WindGust, "kt", at)
	}
	if obs.VisibilitySM != nil {
		rep.Params.Set(wx.ParamVisibility, *obs.VisibilitySM, "SM", at)
	}
	if obs.TemperatureC != nil {
		rep.Params.Set(wx.ParamTemperature, *obs.TemperatureC, "°C", at)
	}
	if obs.DewpointC != nil {
		rep.Params.Set(wx.ParamDewpoint, *obs.DewpointC, "°C", at)
	}
	if obs.AltimeterInHg != nil {
		rep.Params.Set(wx.ParamAltimeter, *obs.AltimeterInHg, "inHg", at)
	}

	if ceiling := obs.Ceiling(); ceiling != nil {
		rep.Params.Set(wx.ParamCeiling, *ceiling, "ft", at)
	} else if obs.SkyObserved {
		rep.Params.Set(wx.ParamCeiling, wx.UnlimitedCeiling, "ft", at)
	}

	if obs.HasThunderstorm() {
		rep.Params.Set(wx.ParamConvective, 1, "flag", at)
	}
	if obs.HasFreezingPrecipitation() {
		rep.Params.Set(wx.ParamIcing, 3, "ordinal", at)
	}
	if obs.WindSpeed != nil && obs.WindGust != nil {
		rep.Params.Set(wx.ParamTurbulence,
			turbulenceFromGustFactor(*obs.WindSpeed, *obs.WindGust), "ordinal", at)
	}
}

// classify derives flight category, hazards and risk from the populated
// parameters.
func (a *Assembler) classify(rep *wx.Report) {
	ceiling := paramPtr(rep.Params, wx.ParamCeiling)
	visibility := paramPtr(rep.Params, wx.ParamVisibility)

	// The category function treats a nil ceiling as unrestricted sky, which
	// is only justified when the sky was actually observed. Without any
	// ceiling parameter the category must consider ceiling unknown, so
	// classification is attempted only with both parameters present.
	if ceiling != nil && visibility != nil {
		effective := ceiling
		if *ceiling >= wx.UnlimitedCeiling {
			effective = nil
		}
		rep.FlightCategory = wx.CalculateFlightCategory(effective, visibility)
	}

	rep.Hazards = wx.IdentifyHazards(rep.Params)
	rep.Risk = wx.AssessRisk(
		paramPtr(rep.Params, wx.ParamWindSpeed),
		visibility,
		paramPtr(rep.Params, wx.ParamWaveHeight),
		rep.Hazards,
	)
}

// mergeMarine enriches a rig report with wave parameters from the marine
// chain. Marine failure is not fatal; the sea-state fields simply stay
// indeterminate.
func (a *Assembler) mergeMarine(ctx context.Context, rep *wx.RigReport, opts Options) {
	if a.marine == nil {
		return
	}
	data, err := a.marine.Fetch(ctx, rep.Coordinates)
	if err != nil || data.Series == nil {
		a.log.Warn("marine data unavailable for rig", "rig", rep.LocationID, logger.Err(err))
		return
	}
	sample, err := a.selector.Select(*data.Series, opts.ArrivalTime)
	if err != nil {
		return
	}
	at := data.CapturedAt
	if v, ok := sample.Values["wave_height"]; ok {
		rep.Params.Set(wx.ParamWaveHeight, v, "m", at)
	}
	if v, ok := sample.Values["wave_direction"]; ok {
		rep.Params.Set(wx.ParamWaveDirection, v, "°", at)
	}
	if v, ok := sample.Values["wave_period"]; ok {
		rep.Params.Set(wx.ParamWavePeriod, v, "s", at)
	}
}

// classifyRig derives the helideck and sea-state assessment for a rig report
// and refreshes the aggregate risk with the merged wave data.
func (a *Assembler) classifyRig(rep *wx.RigReport) {
	wind := paramPtr(rep.Params, wx.ParamWindSpeed)
	visibility := paramPtr(rep.Params, wx.ParamVisibility)
	ceiling := paramPtr(rep.Params, wx.ParamCeiling)
	waveHeight := paramPtr(rep.Params, wx.ParamWaveHeight)
	wavePeriod := paramPtr(rep.Params, wx.ParamWavePeriod)

	rep.LandingRecommendation = wx.HelideckSuitability(wind, visibility, ceiling)
	rep.AlternateRequired = wx.AlternateRequired(rep.LandingRecommendation)
	rep.HelideckStatus = string(rep.LandingRecommendation)
	rep.PlatformMotion = wx.PlatformMotion(waveHeight, wavePeriod)

	if waveHeight != nil {
		rep.WaveHeight = *waveHeight
		rep.SeaState = wx.SeaState(*waveHeight)
	} else {
		rep.SeaState = -1
	}

	// A no-data report keeps its empty risk fields; LOW would misstate
	// total ignorance as a safe assessment.
	if rep.Status != wx.StatusNoData {
		rep.Hazards = wx.IdentifyHazards(rep.Params)
		rep.Risk = wx.AssessRisk(wind, visibility, waveHeight, rep.Hazards)
	}
}

func paramPtr(store *wx.Store, typ wx.ParamType) *float64 {
	v, ok := store.Value(typ)
	if !ok {
		return nil
	}
	return &v
}

func statusLabel(status wx.Status) string {
	if status == wx.StatusNoData {
		return "no_data"
	}
	return "ok"
}

// Weather code groups from the WMO table used by the forecast provider.
func convectiveFromCode(code int) float64 {
	if code >= 95 && code <= 99 {
		return 1
	}
	return 0
}

func icingFromCode(code int) float64 {
	switch code {
	case 56, 57, 66, 67: // freezing drizzle and freezing rain
		return 3
	case 71, 73, 75, 77, 85, 86: // snow
		return 2
	default:
		return 0
	}
}

func turbulenceFromGustFactor(speedKt, gustKt float64) float64 {
	delta := gustKt - speedKt
	switch {
	case delta >= 25:
		return 3
	case delta >= 15:
		return 2
	case delta >= 8:
		return 1
	default:
		return 0
	}
}
