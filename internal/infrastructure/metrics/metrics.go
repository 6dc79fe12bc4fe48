// Package metrics holds the process-wide Prometheus collectors served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmdesk_sync_runs_total",
			Help: "Closed-ticket sync runs by trigger and final status",
		},
		[]string{"trigger", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crmdesk_sync_duration_seconds",
			Help:    "Wall time of closed-ticket sync runs",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"trigger"},
	)

	TicketsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crmdesk_sync_tickets_imported_total",
			Help: "Tickets written by the reconciler",
		},
	)

	TicketFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crmdesk_sync_ticket_failures_total",
			Help: "Tickets that could not be fetched or reconciled",
		},
	)

	DetailFetchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crmdesk_freshdesk_detail_fetches_in_flight",
			Help: "Ticket detail requests currently outstanding",
		},
	)

	RemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmdesk_freshdesk_requests_total",
			Help: "Freshdesk API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	RemoteLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crmdesk_freshdesk_request_duration_seconds",
			Help:    "Freshdesk API call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crmdesk_circuit_breaker_state",
			Help: "0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmdesk_circuit_breaker_transitions_total",
			Help: "Circuit breaker state changes",
		},
		[]string{"name", "from", "to"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmdesk_http_requests_total",
			Help: "Inbound HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crmdesk_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordRemoteCall(endpoint, outcome string, elapsed time.Duration) {
	RemoteRequests.WithLabelValues(endpoint, outcome).Inc()
	RemoteLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
