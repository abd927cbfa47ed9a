// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package config loads the service configuration from an optional config
// file and FPWEATHER-prefixed environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
)

const configEnv = "FPWEATHER"

// Config represents the service configuration.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Cache struct {
		TTL       time.Duration `fig:"ttl" default:"10m"`
		NoDataTTL time.Duration `fig:"nodata_ttl" default:"1m"`
	} `fig:"cache"`

	Providers struct {
		Timeout time.Duration `fig:"timeout" default:"10s"`
		// Maximum angular distance to the closest reporting station, in
		// degrees. Stations further out are not representative offshore.
		StationCutoffDeg float64 `fig:"station_cutoff_deg" default:"1.5"`
		DisableStations  bool    `fig:"disable_stations"`
		DisableMarine    bool    `fig:"disable_marine"`
	} `fig:"providers"`

	Forecast struct {
		// Allowed values: fallback-current, nearest
		Policy        string        `fig:"policy" default:"fallback-current"`
		NearestWindow time.Duration `fig:"nearest_window" default:"2h"`
	} `fig:"forecast"`

	Intervals struct {
		CacheSweep time.Duration `fig:"cache_sweep" default:"5m"`
	} `fig:"intervals"`

	Metrics struct {
		Enabled    bool   `fig:"enabled"`
		ListenAddr string `fig:"listen_addr" default:"localhost:9191"`
	} `fig:"metrics"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 || c.Cache.NoDataTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("invalid provider timeout: %s", c.Providers.Timeout)
	}
	if c.Providers.StationCutoffDeg <= 0 {
		return fmt.Errorf("invalid station cutoff: %f", c.Providers.StationCutoffDeg)
	}
	if c.Forecast.Policy != "fallback-current" && c.Forecast.Policy != "nearest" {
		return fmt.Errorf("invalid forecast policy: %s", c.Forecast.Policy)
	}
	if c.Forecast.Policy == "nearest" && c.Forecast.NearestWindow <= 0 {
		return fmt.Errorf("invalid nearest window: %s", c.Forecast.NearestWindow)
	}
	if c.Intervals.CacheSweep <= 0 {
		return fmt.Errorf("invalid cache sweep interval: %s", c.Intervals.CacheSweep)
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return fmt.Errorf("metrics enabled without a listen address")
	}

	return nil
}
