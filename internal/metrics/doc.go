// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package metrics provides Prometheus instrumentation for the Geosnap client.

Every collector is registered on the default registry through promauto, so
`geosnap watch --metrics-addr :9464` can expose them with promhttp.Handler.
One-shot CLI commands record into the same collectors; nothing is exported
unless the endpoint is enabled.

# Available Metrics

Backend API:
  - geosnap_api_requests_total: Requests sent to the backend (counter)
    Labels: method, route, status_class
  - geosnap_api_request_duration_seconds: Request latency (histogram)
    Labels: method, route
  - geosnap_api_requests_in_flight: Requests awaiting a response (gauge)

Circuit Breaker:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

Query Cache:
  - geosnap_query_cache_hits_total / geosnap_query_cache_misses_total
    Labels: resource
  - geosnap_query_cache_invalidations_total: Labels: resource

Flows:
  - geosnap_redemptions_total: Labels: result
    (success, invalid, failed)
  - geosnap_approval_actions_total: Labels: action, outcome
  - geosnap_session_events_total: Labels: event
  - geosnap_geocode_lookups_total: Labels: result
  - geosnap_poll_runs_total: Labels: poller, result

# Usage

	start := time.Now()
	resp, err := doRequest()
	metrics.RecordAPIRequest("GET", "/users/wallet", statusCode, time.Since(start))

Route labels are route templates ("/admin/photos/{id}/approve"), never raw
paths, so label cardinality stays bounded.
*/
package metrics
