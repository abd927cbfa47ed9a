// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package presenter renders assembled rig reports into the output formats
// consumed by dispatchers: a machine-readable summary, an aligned text block
// and a standalone HTML fragment.
package presenter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wneessen/go-moonphase"

	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

// Format selects the rendering of a rig report.
type Format string

const (
	FormatSummary Format = "summary"
	FormatText    Format = "text"
	FormatHTML    Format = "html"
)

// RigView wraps a rig report with presentation fields.
type RigView struct {
	wx.RigReport

	Name         string
	CategoryIcon string
	RiskIcon     string

	SunriseTime   time.Time
	SunsetTime    time.Time
	MoonPhase     string
	MoonPhaseIcon string

	Lines []Line
}

// Line is one label/value pair of the text rendering.
type Line struct {
	Label string
	Value string
}

// Summary is the compact machine-readable digest of a rig report.
type Summary struct {
	RigName        string         `json:"rigName"`
	Timestamp      time.Time      `json:"timestamp"`
	ValidTime      time.Time      `json:"validTime"`
	Coordinates    wx.Coordinates `json:"coordinates"`
	Weather        map[string]any `json:"weather"`
	HelideckStatus string         `json:"helideckStatus"`
	FlightCategory string         `json:"flightCategory,omitempty"`
	Risk           wx.RiskLevel   `json:"risk,omitempty"`
	Hazards        []wx.Hazard    `json:"hazards,omitempty"`
	Status         wx.Status      `json:"status"`
	StatusDetail   string         `json:"statusDetail,omitempty"`
	Sunrise        time.Time      `json:"sunrise"`
	Sunset         time.Time      `json:"sunset"`
	MoonPhase      string         `json:"moonPhase"`
}

type Presenter struct {
	html *template.Template
}

// New returns a presenter with the HTML template parsed and ready.
func New() (*Presenter, error) {
	tpl, err := template.New("rig").Funcs(htmlFuncMap()).Parse(rigHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rig report template: %w", err)
	}
	return &Presenter{html: tpl}, nil
}

// GenerateRigReport renders the report in the requested format.
func (p *Presenter) GenerateRigReport(rep *wx.RigReport, format Format) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("nil rig report")
	}
	view := p.buildView(rep)

	switch format {
	case FormatSummary, "":
		return p.renderSummary(view)
	case FormatText:
		return renderText(view), nil
	case FormatHTML:
		return p.renderHTML(view)
	default:
		return "", fmt.Errorf("unknown report format: %q", format)
	}
}

func (p *Presenter) buildView(rep *wx.RigReport) RigView {
	view := RigView{
		RigReport:    *rep,
		Name:         rep.LocationID,
		CategoryIcon: FlightCategoryIcon[rep.FlightCategory],
		RiskIcon:     RiskIcon[rep.Risk],
	}

	// Astro data is derived from the report's valid time, not from the wall
	// clock, so forecast reports carry the arrival day's sun times.
	at := rep.ValidTime
	if at.IsZero() {
		at = rep.Timestamp
	}
	view.SunriseTime, view.SunsetTime = sunrise.SunriseSunset(
		rep.Coordinates.Lat, rep.Coordinates.Lon, at.Year(), at.Month(), at.Day())

	m := moonphase.New(at)
	view.MoonPhase = m.PhaseName()
	view.MoonPhaseIcon = MoonPhaseIcon[view.MoonPhase]

	view.Lines = buildLines(view)
	return view
}

func (p *Presenter) renderSummary(view RigView) (string, error) {
	summary := Summary{
		RigName:        view.Name,
		Timestamp:      view.Timestamp,
		ValidTime:      view.ValidTime,
		Coordinates:    view.Coordinates,
		Weather:        weatherDigest(view.Params),
		HelideckStatus: view.HelideckStatus,
		FlightCategory: string(view.FlightCategory),
		Risk:           view.Risk,
		Hazards:        view.Hazards,
		Status:         view.Status,
		StatusDetail:   view.StatusDetail,
		Sunrise:        view.SunriseTime,
		Sunset:         view.SunsetTime,
		MoonPhase:      view.MoonPhase,
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal rig summary: %w", err)
	}
	return string(out), nil
}

func (p *Presenter) renderHTML(view RigView) (string, error) {
	var buf bytes.Buffer
	if err := p.html.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render rig report template: %w", err)
	}
	return buf.String(), nil
}

// weatherDigest flattens the parameter store into summary keys. Missing
// parameters stay absent rather than defaulting to zero.
func weatherDigest(store *wx.Store) map[string]any {
	digest := make(map[string]any)
	put := func(key string, typ wx.ParamType) {
		if v, ok := store.Value(typ); ok {
			digest[key] = v
		}
	}
	put("windSpeedKt", wx.ParamWindSpeed)
	put("windGustKt", wx.ParamWindGust)
	put("windDirectionDeg", wx.ParamWindDirection)
	put("visibilitySM", wx.ParamVisibility)
	put("ceilingFt", wx.ParamCeiling)
	put("temperatureC", wx.ParamTemperature)
	put("dewpointC", wx.ParamDewpoint)
	put("altimeterInHg", wx.ParamAltimeter)
	put("waveHeightM", wx.ParamWaveHeight)
	put("wavePeriodS", wx.ParamWavePeriod)
	return digest
}

const rigHTMLTemplate = `<div class="rig-report rig-report-{{lc .Status}}">
  <h2>{{.Name}}</h2>
  <p class="coords">{{floatFormat .Coordinates.Lat 4}}, {{floatFormat .Coordinates.Lon 4}}</p>
  <p class="valid">Valid {{timeFormat .ValidTime "2006-01-02 15:04Z"}}</p>
  {{- if .StatusDetail}}
  <p class="detail">{{.StatusDetail}}</p>
  {{- end}}
  <table>
    {{- range .Lines}}
    <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
    {{- end}}
  </table>
  <p class="astro">{{.MoonPhaseIcon}} {{.MoonPhase}} &middot;
    &#8593;{{timeFormat .SunriseTime "15:04Z"}} &#8595;{{timeFormat .SunsetTime "15:04Z"}}</p>
</div>
`
