// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

// Package observability holds the Prometheus metrics for the weather core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for provider fetches,
// report assembly and the report cache.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error,open}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	CacheLookups     *prometheus.CounterVec   // labels: result={hit,miss,expired}
	CacheEvictions   prometheus.Counter
	ReportsAssembled *prometheus.CounterVec // labels: kind={location,rig}, status={ok,no_data}
	BatchFailures    prometheus.Counter
}

// NewMetrics creates and registers all weather-core metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.CacheLookups,
		m.CacheEvictions,
		m.ReportsAssembled,
		m.BatchFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fpweather",
			Name:      "provider_requests_total",
			Help:      "Upstream provider fetches by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fpweather",
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fpweather",
			Name:      "report_cache_lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		CacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fpweather",
			Name:      "report_cache_evictions_total",
			Help:      "Expired report cache entries removed by the sweeper.",
		}),
		ReportsAssembled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fpweather",
			Name:      "reports_assembled_total",
			Help:      "Assembled weather reports by kind and status.",
		}, []string{"kind", "status"}),
		BatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fpweather",
			Name:      "batch_rig_failures_total",
			Help:      "Per-rig failures recorded during batch fetches.",
		}),
	}
}
