// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{401, "4xx"},
		{409, "4xx"},
		{503, "5xx"},
		{0, "network"},
		{999, "network"},
	}
	for _, tt := range tests {
		if got := StatusClass(tt.code); got != tt.want {
			t.Errorf("StatusClass(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

// TestRecordAPIRequest tests backend request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/users/redeem", "4xx"))

	RecordAPIRequest("POST", "/users/redeem", 400, 20*time.Millisecond)
	RecordAPIRequest("POST", "/users/redeem", 422, 20*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/users/redeem", "4xx"))
	if after-before != 2 {
		t.Errorf("4xx counter delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("in flight = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("in flight = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(QueryCacheHits.WithLabelValues("walletBalance"))
	misses := testutil.ToFloat64(QueryCacheMisses.WithLabelValues("walletBalance"))

	RecordCacheLookup("walletBalance", true)
	RecordCacheLookup("walletBalance", false)
	RecordCacheLookup("walletBalance", false)

	if got := testutil.ToFloat64(QueryCacheHits.WithLabelValues("walletBalance")) - hits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(QueryCacheMisses.WithLabelValues("walletBalance")) - misses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

func TestRecordPollRun(t *testing.T) {
	okBefore := testutil.ToFloat64(PollRuns.WithLabelValues("wallet", "success"))
	errBefore := testutil.ToFloat64(PollRuns.WithLabelValues("wallet", "error"))

	RecordPollRun("wallet", nil)
	RecordPollRun("wallet", errors.New("boom"))

	if got := testutil.ToFloat64(PollRuns.WithLabelValues("wallet", "success")) - okBefore; got != 1 {
		t.Errorf("success delta = %v", got)
	}
	if got := testutil.ToFloat64(PollRuns.WithLabelValues("wallet", "error")) - errBefore; got != 1 {
		t.Errorf("error delta = %v", got)
	}
}

func TestFlowCounters(t *testing.T) {
	r := testutil.ToFloat64(Redemptions.WithLabelValues("success"))
	a := testutil.ToFloat64(ApprovalActions.WithLabelValues("approve", "already_resolved"))
	s := testutil.ToFloat64(SessionEvents.WithLabelValues("login"))
	g := testutil.ToFloat64(GeocodeLookups.WithLabelValues("not_found"))
	i := testutil.ToFloat64(QueryCacheInvalidations.WithLabelValues("pendingPhotos"))

	RecordRedemption("success")
	RecordApprovalAction("approve", "already_resolved")
	RecordSessionEvent("login")
	RecordGeocodeLookup("not_found")
	RecordCacheInvalidation("pendingPhotos")

	checks := []struct {
		name string
		got  float64
	}{
		{"redemptions", testutil.ToFloat64(Redemptions.WithLabelValues("success")) - r},
		{"approvals", testutil.ToFloat64(ApprovalActions.WithLabelValues("approve", "already_resolved")) - a},
		{"session", testutil.ToFloat64(SessionEvents.WithLabelValues("login")) - s},
		{"geocode", testutil.ToFloat64(GeocodeLookups.WithLabelValues("not_found")) - g},
		{"invalidations", testutil.ToFloat64(QueryCacheInvalidations.WithLabelValues("pendingPhotos")) - i},
	}
	for _, c := range checks {
		if c.got != 1 {
			t.Errorf("%s delta = %v, want 1", c.name, c.got)
		}
	}
}
