// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes the Prometheus instruments of the authentication service.
//
// A nil *Metrics is valid and records nothing, so components can be
// constructed without instrumentation in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "uniportal"

// Authentication channels.
const (
	ChannelLogin    = "login"
	ChannelRegister = "register"
	ChannelNative   = "native"
)

// Authentication outcomes. They mirror the credential error taxonomy.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeNotFound      = "not_found"
	OutcomeInvalidSecret = "invalid_secret"
	OutcomeConflict      = "conflict"
	OutcomeError         = "error"
)

// Guard decisions.
const (
	DecisionPass     = "pass"
	DecisionRedirect = "redirect"
)

// Metrics holds the registered instruments.
type Metrics struct {
	registry        *prometheus.Registry
	authAttempts    *prometheus.CounterVec
	guardDecisions  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a private registry with process and Go runtime collectors
// and registers the service instruments on it.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		authAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "auth_attempts_total",
			Help:      "Credential checks by channel, requested role and outcome",
		}, []string{"channel", "role", "outcome"}),

		guardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "route_guard_total",
			Help:      "Route guard decisions on protected paths",
		}, []string{"decision"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status code",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
}

// AuthAttempt records one credential check.
func (m *Metrics) AuthAttempt(channel, role, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(channel, role, outcome).Inc()
}

// GuardDecision records one route guard decision.
func (m *Metrics) GuardDecision(decision string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(decision).Inc()
}

// ObserveRequest records the latency of a finished request.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
