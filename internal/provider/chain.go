// SPDX-FileCopyrightText: The fast-planner-weather Authors
//
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/DaVinciHack/fast-planner-weather/internal/logger"
	"github.com/DaVinciHack/fast-planner-weather/internal/observability"
	"github.com/DaVinciHack/fast-planner-weather/internal/wx"
)

// ErrAllProvidersFailed is returned when every provider in a chain failed.
// Callers turn it into an explicit no-data result, never into a fabricated
// report.
var ErrAllProvidersFailed = errors.New("all providers in the chain failed")

// DefaultTimeout bounds a single provider call within the chain.
const DefaultTimeout = time.Second * 10

// Chain executes providers in priority order until one returns usable data.
// Every call is bounded by a timeout and guarded by a circuit breaker; a
// provider failure is logged and the chain advances.
type Chain struct {
	providers []Provider
	breakers  map[string]*gobreaker.CircuitBreaker
	timeout   time.Duration
	log       *logger.Logger
	metrics   *observability.Metrics
}

// NewChain returns a Chain over the given providers in priority order.
func NewChain(log *logger.Logger, metrics *observability.Metrics, timeout time.Duration,
	providers ...Provider,
) *Chain {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	breakers := make(map[string]*gobreaker.CircuitBreaker, len(providers))
	for _, p := range providers {
		breakers[p.Name()] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    p.Name(),
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
	}
	return &Chain{
		providers: providers,
		breakers:  breakers,
		timeout:   timeout,
		log:       log,
		metrics:   metrics,
	}
}

// Providers returns the chained provider names in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Fetch walks the chain and returns the first usable result. Timeouts,
// non-2xx responses, malformed payloads and open breakers are all treated
// alike: log, count, advance. Only when the whole chain is exhausted does it
// return ErrAllProvidersFailed.
func (c *Chain) Fetch(ctx context.Context, coords wx.Coordinates) (*Data, error) {
	for _, p := range c.providers {
		data, err := c.fetchOne(ctx, p, coords)
		if err != nil {
			outcome := "error"
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				outcome = "open"
			}
			c.metrics.ProviderRequests.WithLabelValues(p.Name(), outcome).Inc()
			c.log.Warn("provider fetch failed, advancing to next provider",
				"provider", p.Name(), logger.Err(err))
			continue
		}
		if data == nil {
			c.metrics.ProviderRequests.WithLabelValues(p.Name(), "error").Inc()
			c.log.Warn("provider returned no data, advancing to next provider",
				"provider", p.Name())
			continue
		}
		c.metrics.ProviderRequests.WithLabelValues(p.Name(), "success").Inc()
		return data, nil
	}
	return nil, ErrAllProvidersFailed
}

func (c *Chain) fetchOne(ctx context.Context, p Provider, coords wx.Coordinates) (*Data, error) {
	breaker := c.breakers[p.Name()]
	started := time.Now()
	result, err := breaker.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return p.Fetch(callCtx, coords)
	})
	c.metrics.ProviderDuration.WithLabelValues(p.Name()).Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	data, ok := result.(*Data)
	if !ok {
		return nil, fmt.Errorf("provider %s: unexpected result type", p.Name())
	}
	return data, nil
}
