// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/DaVinciHack/fast-planner-weather/internal/wx"

// MoonPhaseIcon maps moon phase names to their emoji representations.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// FlightCategoryIcon maps flight categories to the colored marker used in
// text and HTML output.
var FlightCategoryIcon = map[wx.FlightCategory]string{
	wx.CategoryVFR:  "🟢",
	wx.CategoryMVFR: "🔵",
	wx.CategoryIFR:  "🔴",
	wx.CategoryLIFR: "🟣",
}

// RiskIcon maps risk levels to the colored marker used in text and HTML
// output.
var RiskIcon = map[wx.RiskLevel]string{
	wx.RiskLow:    "🟢",
	wx.RiskMedium: "🟡",
	wx.RiskHigh:   "🔴",
}
