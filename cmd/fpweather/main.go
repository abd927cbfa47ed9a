// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package main implements the fast-planner-weather service. Without flags it
// runs as a daemon; with -lat/-lon it produces a single rig report on stdout
// and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/DaVinciHack/fast-planner-weather/internal/config"
	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/presenter"
	"github.com/DaVinciHack/fast-planner-weather/internal/report"
	"github.com/DaVinciHack/fast-planner-weather/internal/service"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT,
		os.Interrupt)
	defer cancel()

	log := logger.New(slog.LevelError)

	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	lat := flag.Float64("lat", 0, "rig latitude for a one-shot report")
	lon := flag.Float64("lon", 0, "rig longitude for a one-shot report")
	rigName := flag.String("rig", "", "rig name for a one-shot report")
	format := flag.String("format", "summary", "one-shot output format: summary, text or html")
	arrival := flag.String("arrival", "", "arrival time (RFC 3339) for a forecast report")
	flag.Parse()

	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	log = logger.New(conf.LogLevel)
	serv, err := service.New(conf, log)
	if err != nil {
		log.Error("failed to initialize fast-planner-weather service", logger.Err(err))
		os.Exit(1)
	}

	if *lat != 0 || *lon != 0 {
		if err = oneShot(ctx, serv, *lat, *lon, *rigName, *format, *arrival); err != nil {
			log.Error("failed to generate rig report", logger.Err(err))
			os.Exit(1)
		}
		return
	}

	log.Info("starting fast-planner-weather service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to run fast-planner-weather service", logger.Err(err))
	}
	log.Info("shutting down fast-planner-weather service")
}

func oneShot(ctx context.Context, serv *service.Service, lat, lon float64, name, format, arrival string) error {
	if name == "" {
		name = fmt.Sprintf("%.4f,%.4f", lat, lon)
	}
	opts := report.Options{}
	if arrival != "" {
		at, err := time.Parse(time.RFC3339, arrival)
		if err != nil {
			return fmt.Errorf("invalid arrival time: %w", err)
		}
		opts.ArrivalTime = &at
	}

	rep, err := serv.RigWeatherReport(ctx, report.Rig{
		Name:        name,
		Coordinates: wx.Coordinates{Lat: lat, Lon: lon},
	}, opts)
	if err != nil {
		return err
	}

	out, err := serv.RenderRigReport(rep, presenter.Format(format))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "fast-planner-weather", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
