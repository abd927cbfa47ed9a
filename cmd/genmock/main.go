// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Command genmock generates a deterministic rig report fixture using the
// actual classification code, so test fixtures match real assembly behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/rig_report.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

var fixedTime = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the rig report fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rep := mockRigReport()
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling fixture: %w", err)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote rig report fixture to %s", *out)
	return nil
}

// mockRigReport builds a representative marginal-weather rig report. The
// classification fields are derived with the production code rather than
// hardcoded, so fixtures stay consistent with rule changes.
func mockRigReport() *wx.RigReport {
	base := wx.NewReport("Mock Rig Alpha", wx.Coordinates{Lat: 58.37, Lon: 1.91}, "MOCK")
	base.Timestamp = fixedTime
	base.ValidTime = fixedTime

	base.Params.Set(wx.ParamWindSpeed, 38, "kt", fixedTime)
	base.Params.Set(wx.ParamWindGust, 55, "kt", fixedTime)
	base.Params.Set(wx.ParamWindDirection, 290, "°", fixedTime)
	base.Params.Set(wx.ParamVisibility, 1.5, "SM", fixedTime)
	base.Params.Set(wx.ParamCeiling, 400, "ft", fixedTime)
	base.Params.Set(wx.ParamTemperature, 4.2, "°C", fixedTime)
	base.Params.Set(wx.ParamDewpoint, 3.8, "°C", fixedTime)
	base.Params.Set(wx.ParamAltimeter, 29.54, "inHg", fixedTime)
	base.Params.Set(wx.ParamWaveHeight, 4.5, "m", fixedTime)
	base.Params.Set(wx.ParamWavePeriod, 5.5, "s", fixedTime)
	base.Params.Set(wx.ParamTurbulence, 2, "ordinal", fixedTime)

	wind, _ := base.Params.Value(wx.ParamWindSpeed)
	vis, _ := base.Params.Value(wx.ParamVisibility)
	ceiling, _ := base.Params.Value(wx.ParamCeiling)
	wave, _ := base.Params.Value(wx.ParamWaveHeight)
	period, _ := base.Params.Value(wx.ParamWavePeriod)

	base.FlightCategory = wx.CalculateFlightCategory(&ceiling, &vis)
	base.Hazards = wx.IdentifyHazards(base.Params)
	base.Risk = wx.AssessRisk(&wind, &vis, &wave, base.Hazards)

	rec := wx.HelideckSuitability(&wind, &vis, &ceiling)
	return &wx.RigReport{
		Report:                *base,
		HelideckStatus:        string(rec),
		SeaState:              wx.SeaState(wave),
		WaveHeight:            wave,
		PlatformMotion:        wx.PlatformMotion(&wave, &period),
		LandingRecommendation: rec,
		AlternateRequired:     wx.AlternateRequired(rec),
	}
}
