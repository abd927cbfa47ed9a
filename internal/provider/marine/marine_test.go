// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package marine

import (
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DaVinciHack/fast-planner-weather/internal/http"
	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

const testResponse = `{
	"latitude": 58.37,
	"longitude": 1.9,
	"hourly": {
		"time": ["2026-03-14T06:00", "2026-03-14T07:00"],
		"wave_height": [2.1, 2.4],
		"wave_direction": [250, 255],
		"wave_period": [7.5, 7.8]
	}
}`

func newTestLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelError, os.Stderr)
}

func TestNew(t *testing.T) {
	t.Run("new should create a provider", func(t *testing.T) {
		log := newTestLogger()
		p, err := New(http.New(log), log)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if p.Name() != "open-meteo-marine" {
			t.Errorf("expected provider name open-meteo-marine, got %s", p.Name())
		}
	})
	t.Run("new without http client should fail", func(t *testing.T) {
		if _, err := New(nil, newTestLogger()); err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
	t.Run("new without logger should fail", func(t *testing.T) {
		if _, err := New(http.New(newTestLogger()), nil); err == nil {
			t.Fatal("expected provider creation to fail")
		}
	})
}

func TestProvider_Fetch(t *testing.T) {
	log := newTestLogger()

	t.Run("fetch builds a wave series from the API payload", func(t *testing.T) {
		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if r.URL.Query().Get("hourly") != "wave_height,wave_direction,wave_period" {
				t.Errorf("unexpected hourly query: %q", r.URL.Query().Get("hourly"))
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(testResponse))
		}))
		defer server.Close()

		p, err := NewWithEndpoint(server.URL, http.New(log), log)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		data, err := p.Fetch(t.Context(), wx.Coordinates{Lat: 58.37, Lon: 1.9})
		if err != nil {
			t.Fatalf("failed to fetch: %s", err)
		}
		if data.Series == nil {
			t.Fatal("expected a wave series")
		}
		if len(data.Series.Times) != 2 {
			t.Errorf("expected 2 samples, got %d", len(data.Series.Times))
		}
		if got := data.Series.Metrics["wave_height"][1]; got != 2.4 {
			t.Errorf("expected wave height 2.4, got %f", got)
		}
		if got := data.Series.Metrics["wave_period"][0]; got != 7.5 {
			t.Errorf("expected wave period 7.5, got %f", got)
		}
	})
	t.Run("non-200 response should fail", func(t *testing.T) {
		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stdhttp.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		p, err := NewWithEndpoint(server.URL, http.New(log), log)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if _, err = p.Fetch(t.Context(), wx.Coordinates{Lat: 58.37, Lon: 1.9}); err == nil {
			t.Fatal("expected fetch to fail")
		}
	})
	t.Run("empty series should fail", func(t *testing.T) {
		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"hourly": {"time": []}}`))
		}))
		defer server.Close()

		p, err := NewWithEndpoint(server.URL, http.New(log), log)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if _, err = p.Fetch(t.Context(), wx.Coordinates{Lat: 58.37, Lon: 1.9}); err == nil {
			t.Fatal("expected fetch to fail on an empty series")
		}
	})
}
