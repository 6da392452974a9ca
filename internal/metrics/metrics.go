// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_api_requests_total",
			Help: "Total number of requests sent to the Geosnap backend",
		},
		[]string{"method", "route", "status_class"}, // status_class: 2xx, 4xx, 5xx, network
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geosnap_api_request_duration_seconds",
			Help:    "Duration of backend requests in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geosnap_api_requests_in_flight",
			Help: "Number of backend requests awaiting a response",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Query Cache Metrics
	QueryCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_query_cache_hits_total",
			Help: "Fresh cache entries served without a refetch",
		},
		[]string{"resource"},
	)

	QueryCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_query_cache_misses_total",
			Help: "Cache lookups that triggered a fetch",
		},
		[]string{"resource"},
	)

	QueryCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_query_cache_invalidations_total",
			Help: "Entries marked stale by a mutation",
		},
		[]string{"resource"},
	)

	// Flow Metrics
	Redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_redemptions_total",
			Help: "Redemption attempts by result",
		},
		[]string{"result"},
	)

	ApprovalActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_approval_actions_total",
			Help: "Admin approve/reject actions by outcome",
		},
		[]string{"action", "outcome"},
	)

	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_session_events_total",
			Help: "Session lifecycle events (login, logout, rehydrate, invalidate)",
		},
		[]string{"event"},
	)

	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_geocode_lookups_total",
			Help: "Place name lookups by result (hit, found, not_found, error)",
		},
		[]string{"result"},
	)

	PollRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geosnap_poll_runs_total",
			Help: "Background poller iterations by result",
		},
		[]string{"poller", "result"},
	)

	WalletBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geosnap_wallet_balance",
			Help: "Last observed wallet balance",
		},
	)

	PendingPhotos = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geosnap_admin_pending_photos",
			Help: "Last observed number of photos awaiting moderation",
		},
	)
)

// RecordAPIRequest records a backend request. statusCode 0 means the request
// never produced a response.
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, StatusClass(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks requests in flight
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// StatusClass buckets an HTTP status into "2xx", "4xx", ... or "network".
func StatusClass(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "network"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}

// RecordCacheLookup records a query cache hit or miss.
func RecordCacheLookup(resource string, hit bool) {
	if hit {
		QueryCacheHits.WithLabelValues(resource).Inc()
		return
	}
	QueryCacheMisses.WithLabelValues(resource).Inc()
}

// RecordCacheInvalidation records a mutation-driven invalidation.
func RecordCacheInvalidation(resource string) {
	QueryCacheInvalidations.WithLabelValues(resource).Inc()
}

// RecordRedemption records the result of a redemption attempt.
func RecordRedemption(result string) {
	Redemptions.WithLabelValues(result).Inc()
}

// RecordApprovalAction records an approve or reject outcome.
func RecordApprovalAction(action, outcome string) {
	ApprovalActions.WithLabelValues(action, outcome).Inc()
}

// RecordSessionEvent records a session lifecycle event.
func RecordSessionEvent(event string) {
	SessionEvents.WithLabelValues(event).Inc()
}

// RecordGeocodeLookup records a geocoder lookup result.
func RecordGeocodeLookup(result string) {
	GeocodeLookups.WithLabelValues(result).Inc()
}

// RecordPollRun records one background poll iteration.
func RecordPollRun(poller string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	PollRuns.WithLabelValues(poller, result).Inc()
}
