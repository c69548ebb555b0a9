// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	outcomeOK           = "ok"
	outcomeInvalidInput = "invalid_input"
	outcomeNoMatch      = "no_match"
	outcomeError        = "error"
)

type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recommendations *prometheus.CounterVec
	clusters        *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method", "route"},
		),
		recommendations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendations_total",
				Help: "Recommendation requests by outcome",
			},
			[]string{"outcome"},
		),
		clusters: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendation_cluster_assignments_total",
				Help: "Successful recommendations by assigned cluster",
			},
			[]string{"cluster"},
		),
	}
}

func (m *metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *metrics) observeRecommendation(outcome string, cluster int) {
	m.recommendations.WithLabelValues(outcome).Inc()
	if outcome == outcomeOK {
		m.clusters.WithLabelValues(strconv.Itoa(cluster)).Inc()
	}
}
