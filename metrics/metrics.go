// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics contains the collectors recorded by the HTTP filters.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthDecisions   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charsheet_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "charsheet_http_request_duration_seconds",
				Help:    "HTTP request latency by route and method",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"route", "method"},
		),
		AuthDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charsheet_auth_decisions_total",
				Help: "Access token checks by outcome (granted, denied, error)",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.AuthDecisions)
	return m
}

// NewRegistry returns a registry holding the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}
