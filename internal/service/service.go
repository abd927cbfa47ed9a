// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package service wires configuration, providers, report assembly and the
// periodic maintenance jobs into a runnable unit.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DaVinciHack/fast-planner-weather/internal/config"
	"github.com/DaVinciHack/fast-planner-weather/internal/http"
	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/observability"
	"github.com/DaVinciHack/fast-planner-weather/internal/presenter"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider/awc"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider/marine"
	"github.com/DaVinciHack/fast-planner-weather/internal/provider/openmeteo"
	"github.com/DaVinciHack/fast-planner-weather/internal/report"
	"github.com/DaVinciHack/fast-planner-weather/internal/series"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

const metricsShutdownTimeout = 5 * time.Second

// Service is the assembled weather service.
type Service struct {
	config    *config.Config
	logger    *logger.Logger
	metrics   *observability.Metrics
	scheduler gocron.Scheduler
	assembler *report.Assembler
	presenter *presenter.Presenter
}

// New builds the full provider and assembly stack from the configuration.
func New(conf *config.Config, log *logger.Logger) (*Service, error) {
	return newService(conf, log, observability.NewMetrics())
}

// NewForTesting builds a service with an unregistered metrics set so tests
// can construct multiple instances.
func NewForTesting(conf *config.Config, log *logger.Logger) (*Service, error) {
	return newService(conf, log, observability.NewMetricsForTesting())
}

func newService(conf *config.Config, log *logger.Logger, metrics *observability.Metrics) (*Service, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	httpClient := http.New(log)

	forecasts, err := openmeteo.New(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast provider: %w", err)
	}
	baseProviders := []provider.Provider{forecasts}

	if !conf.Providers.DisableStations {
		stations, err := awc.New(httpClient, log, conf.Providers.StationCutoffDeg)
		if err != nil {
			return nil, fmt.Errorf("failed to create station provider: %w", err)
		}
		baseProviders = append(baseProviders, stations)
	}

	var marineChain *provider.Chain
	if !conf.Providers.DisableMarine {
		waves, err := marine.New(httpClient, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create marine provider: %w", err)
		}
		marineChain = provider.NewChain(log, metrics, conf.Providers.Timeout, waves)
	}

	baseChain := provider.NewChain(log, metrics, conf.Providers.Timeout, baseProviders...)
	selector := series.NewSelector(forecastPolicy(conf), conf.Forecast.NearestWindow)

	pres, err := presenter.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	return &Service{
		config:    conf,
		logger:    log,
		metrics:   metrics,
		scheduler: scheduler,
		assembler: report.NewAssembler(baseChain, marineChain, selector, conf.Cache.TTL,
			conf.Cache.NoDataTTL, clockwork.NewRealClock(), log, metrics),
		presenter: pres,
	}, nil
}

func forecastPolicy(conf *config.Config) series.Policy {
	if conf.Forecast.Policy == "nearest" {
		return series.PolicyNearest
	}
	return series.PolicyFallbackCurrent
}

// Run starts the maintenance jobs and the optional metrics listener, then
// blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if err := s.createScheduledJob(ctx, s.config.Intervals.CacheSweep, s.sweepCaches,
		"cache_sweep_job"); err != nil {
		return err
	}
	s.scheduler.Start()

	var metricsSrv *nethttp.Server
	if s.config.Metrics.Enabled {
		metricsSrv = s.startMetricsListener()
	}

	<-ctx.Done()

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to shut down metrics listener", logger.Err(err))
		}
	}
	return s.scheduler.Shutdown()
}

// WeatherForLocation returns the (possibly cached) report for a location.
func (s *Service) WeatherForLocation(ctx context.Context, loc report.Location, opts report.Options) (*wx.Report, error) {
	return s.assembler.WeatherForLocation(ctx, loc, opts)
}

// RigWeatherReport returns the (possibly cached) rig report including the
// helideck and sea-state assessment.
func (s *Service) RigWeatherReport(ctx context.Context, rig report.Rig, opts report.Options) (*wx.RigReport, error) {
	return s.assembler.RigWeatherReport(ctx, rig, opts)
}

// WeatherForAllRigs fetches reports for all rigs concurrently, omitting
// failures.
func (s *Service) WeatherForAllRigs(ctx context.Context, rigs []report.Rig) map[string]*wx.RigReport {
	return s.assembler.WeatherForAllRigs(ctx, rigs)
}

// RenderRigReport renders a rig report into the requested output format.
func (s *Service) RenderRigReport(rep *wx.RigReport, format presenter.Format) (string, error) {
	return s.presenter.GenerateRigReport(rep, format)
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

func (s *Service) sweepCaches(context.Context) {
	if evicted := s.assembler.SweepCaches(); evicted > 0 {
		s.logger.Debug("swept report caches", slog.Int("evicted", evicted))
	}
}

func (s *Service) startMetricsListener() *nethttp.Server {
	mux := nethttp.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &nethttp.Server{
		Addr:              s.config.Metrics.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		s.logger.Info("metrics listener started", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			s.logger.Error("metrics listener failed", logger.Err(err))
		}
	}()
	return srv
}
