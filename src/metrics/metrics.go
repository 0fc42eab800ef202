// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package metrics exposes cycle reports as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
)

// Cycle outcome label values.
const (
	OutcomePublished    = "published"
	OutcomeEmpty        = "empty"
	OutcomePublishError = "publish_error"
	OutcomeAborted      = "aborted"
)

// Collector implements [autodns.Observer] and keeps its metrics in a
// private registry.
type Collector struct {
	registry *prometheus.Registry

	serverUp       *prometheus.GaugeVec
	serverLatency  *prometheus.GaugeVec
	serverSelected *prometheus.GaugeVec
	cycles         *prometheus.CounterVec
	cycleDuration  prometheus.Histogram
	lastPublish    prometheus.Gauge

	mu       sync.Mutex
	selected map[string]struct{}
}

// New creates a collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		serverUp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "autodns_server_up",
				Help: "DNS server reachable (1) or not (0) in the last cycle",
			},
			[]string{"name", "address"},
		),
		serverLatency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "autodns_server_latency_seconds",
				Help: "DNS server latency measured in the last benchmark cycle",
			},
			[]string{"name", "address"},
		),
		serverSelected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "autodns_server_selected",
				Help: "Position (1-based) of the server in the published resolver list, 0 when not selected",
			},
			[]string{"address"},
		),
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autodns_cycles_total",
				Help: "Total number of DNS cycles by outcome",
			},
			[]string{"outcome"},
		),
		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "autodns_cycle_duration_seconds",
				Help:    "Wall-clock duration of a DNS cycle",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		lastPublish: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "autodns_last_publish_timestamp_seconds",
				Help: "Unix time of the last successful resolver file update",
			},
		),
		selected: make(map[string]struct{}),
	}

	c.registry.MustRegister(
		c.serverUp,
		c.serverLatency,
		c.serverSelected,
		c.cycles,
		c.cycleDuration,
		c.lastPublish,
	)

	// Pre-create the outcome series so they export as zero.
	for _, o := range []string{OutcomePublished, OutcomeEmpty, OutcomePublishError, OutcomeAborted} {
		c.cycles.WithLabelValues(o)
	}
	return c
}

// ObserveCycle records a cycle report.
func (c *Collector) ObserveCycle(report autodns.CycleReport) {
	c.cycles.WithLabelValues(Outcome(report)).Inc()
	c.cycleDuration.Observe(report.Duration.Seconds())

	for _, r := range report.Results {
		up := 0.0
		if r.Online {
			up = 1
		}
		c.serverUp.WithLabelValues(r.Name, r.Address).Set(up)

		if r.Timed {
			c.serverLatency.WithLabelValues(r.Name, r.Address).Set(r.Latency.Seconds())
		} else if report.Mode == autodns.ModeBenchmark {
			c.serverLatency.DeleteLabelValues(r.Name, r.Address)
		}
	}

	if !report.Published {
		return
	}

	c.lastPublish.Set(float64(report.Started.Add(report.Duration).Unix()))

	c.mu.Lock()
	defer c.mu.Unlock()
	for addr := range c.selected {
		c.serverSelected.WithLabelValues(addr).Set(0)
	}
	for i, addr := range report.Selection {
		c.serverSelected.WithLabelValues(addr).Set(float64(i + 1))
		c.selected[addr] = struct{}{}
	}
}

// Outcome classifies a cycle report into one of the outcome label values.
func Outcome(report autodns.CycleReport) string {
	switch {
	case report.Published:
		return OutcomePublished
	case errors.Is(report.Err, autodns.ErrEmptySelection):
		return OutcomeEmpty
	case errors.Is(report.Err, autodns.ErrPublish):
		return OutcomePublishError
	default:
		return OutcomeAborted
	}
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns an HTTP handler serving the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
