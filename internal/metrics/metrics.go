// Package metrics exposes Prometheus instrumentation for the HTTP layer
// and the transfer lifecycle. Everything registers on the default registry
// and is served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransfersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transfers_created_total",
			Help: "Total number of transfers created",
		},
	)

	TransfersDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transfers_dispatched_total",
			Help: "Total number of transfers dispatched",
		},
	)

	TransfersReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transfers_received_total",
			Help: "Total number of transfers received",
		},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Total number of receive notifications that failed to send",
		},
	)

	LoginFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of failed login attempts",
		},
	)
)
