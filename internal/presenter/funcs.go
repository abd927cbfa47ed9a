// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/DaVinciHack/fast-planner-weather/internal/units"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

func htmlFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":  timeFormat,
		"floatFormat": floatFormat,
		"lc":          lcString,
		"uc":          strings.ToUpper,
	}
}

func timeFormat(val time.Time, layout string) string {
	return val.UTC().Format(layout)
}

func floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}

func lcString(val any) string {
	return strings.ToLower(fmt.Sprint(val))
}

// renderText produces the aligned plaintext block. Label column width is
// computed with display widths so icon-bearing values keep the columns
// straight in terminal output.
func renderText(view RigView) string {
	width := 0
	for _, line := range view.Lines {
		if w := runewidth.StringWidth(line.Label); w > width {
			width = w
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n", view.Name,
		floatFormat(view.Coordinates.Lat, 4), floatFormat(view.Coordinates.Lon, 4))
	fmt.Fprintf(&b, "Valid %s, source %s\n", timeFormat(view.ValidTime, "2006-01-02 15:04Z"), view.Source)
	if view.StatusDetail != "" {
		fmt.Fprintf(&b, "%s\n", view.StatusDetail)
	}
	for _, line := range view.Lines {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(line.Label))
		fmt.Fprintf(&b, "%s%s  %s\n", line.Label, pad, line.Value)
	}
	fmt.Fprintf(&b, "%s %s  sunrise %s  sunset %s\n", view.MoonPhaseIcon, view.MoonPhase,
		timeFormat(view.SunriseTime, "15:04Z"), timeFormat(view.SunsetTime, "15:04Z"))
	return b.String()
}

// buildLines assembles the label/value pairs shared by the text and HTML
// renderings. Missing parameters are skipped, not rendered as zeros.
func buildLines(view RigView) []Line {
	var lines []Line
	add := func(label, value string) {
		lines = append(lines, Line{Label: label, Value: value})
	}

	if wind := windLine(view.Params); wind != "" {
		add("Wind", wind)
	}
	if v, ok := view.Params.Value(wx.ParamVisibility); ok {
		add("Visibility", fmt.Sprintf("%s SM", floatFormat(v, 1)))
	}
	if v, ok := view.Params.Value(wx.ParamCeiling); ok {
		if v >= wx.UnlimitedCeiling {
			add("Ceiling", "unlimited")
		} else {
			add("Ceiling", fmt.Sprintf("%.0f ft", v))
		}
	}
	if t, ok := view.Params.Value(wx.ParamTemperature); ok {
		value := fmt.Sprintf("%s °C (%s °F)", floatFormat(t, 1),
			floatFormat(units.CelsiusToFahrenheit(t), 1))
		if d, ok := view.Params.Value(wx.ParamDewpoint); ok {
			value += fmt.Sprintf(" / %s °C", floatFormat(d, 1))
		}
		add("Temp/Dew", value)
	}
	if v, ok := view.Params.Value(wx.ParamAltimeter); ok {
		add("Altimeter", fmt.Sprintf("%s inHg", floatFormat(v, 2)))
	}
	if view.FlightCategory != "" {
		add("Category", strings.TrimSpace(view.CategoryIcon+" "+string(view.FlightCategory)))
	}
	if v, ok := view.Params.Value(wx.ParamWaveHeight); ok {
		add("Waves", fmt.Sprintf("%s m, sea state %d", floatFormat(v, 1), view.SeaState))
	}
	if view.PlatformMotion != "" {
		add("Deck motion", view.PlatformMotion)
	}
	add("Helideck", string(view.LandingRecommendation))
	if view.AlternateRequired {
		add("Alternate", "required")
	}
	if view.Risk != "" {
		add("Risk", strings.TrimSpace(view.RiskIcon+" "+string(view.Risk)))
	}
	for _, hazard := range view.Hazards {
		add("Hazard", fmt.Sprintf("%s %s: %s", hazard.Severity, hazard.Type, hazard.Mitigation))
	}
	return lines
}

func windLine(store *wx.Store) string {
	speed, ok := store.Value(wx.ParamWindSpeed)
	if !ok {
		return ""
	}
	dir := "VRB"
	if d, ok := store.Value(wx.ParamWindDirection); ok {
		dir = fmt.Sprintf("%03.0f°", d)
	}
	line := fmt.Sprintf("%s at %.0f kt", dir, speed)
	if g, ok := store.Value(wx.ParamWindGust); ok {
		line += fmt.Sprintf(", gusting %.0f kt", g)
	}
	return line
}
