// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/geosnap/internal/config"
)

func newTestGeocoder(t *testing.T, h http.HandlerFunc, rps float64) (*Nominatim, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	n, err := New(config.GeocoderConfig{
		URL:          srv.URL,
		UserAgent:    "geosnap-test/1.0",
		RateLimitRPS: rps,
		CacheSize:    16,
		CacheTTL:     time.Hour,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return n, &calls
}

func TestSearch(t *testing.T) {
	n, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Hampi" || q.Get("format") != "json" || q.Get("limit") != "1" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "geosnap-test/1.0" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"15.3350","lon":"76.4600","display_name":"Hampi, Karnataka, India"}]`))
	}, 100)

	r, err := n.Search(context.Background(), "  Hampi ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if r.Lat != 15.335 || r.Lon != 76.46 {
		t.Errorf("coords = %v,%v", r.Lat, r.Lon)
	}
	if r.DisplayName != "Hampi, Karnataka, India" {
		t.Errorf("DisplayName = %q", r.DisplayName)
	}
	if p := r.Point(); p.Lat() != 15.335 || p.Lon() != 76.46 {
		t.Errorf("Point() = %+v", p)
	}

	if _, err := n.Search(context.Background(), "hampi"); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Errorf("calls = %d, want 1 with the second lookup cached", got)
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr error
	}{
		{"no match", `[]`, http.StatusOK, ErrPlaceNotFound},
		{"server error", ``, http.StatusServiceUnavailable, nil},
		{"bad json", `{`, http.StatusOK, nil},
		{"bad latitude", `[{"lat":"north","lon":"1"}]`, http.StatusOK, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, 100)

			_, err := n.Search(context.Background(), "Atlantis")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchNotFoundIsNotCached(t *testing.T) {
	n, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, 100)

	for i := 0; i < 2; i++ {
		if _, err := n.Search(context.Background(), "Nowhere"); !errors.Is(err, ErrPlaceNotFound) {
			t.Fatalf("err = %v", err)
		}
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	n, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {}, 100)
	if _, err := n.Search(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("err = %v", err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("blank query should not be sent")
	}
}

func TestSearchRespectsRateLimit(t *testing.T) {
	n, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}, 1)

	if _, err := n.Search(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := n.Search(ctx, "second"); err == nil {
		t.Error("second lookup within a second should wait past the deadline")
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(config.GeocoderConfig{URL: "not a url", UserAgent: "x"}); err == nil {
		t.Error("expected error for invalid URL")
	}
	if _, err := New(config.GeocoderConfig{URL: "https://nominatim.openstreetmap.org"}); err == nil {
		t.Error("expected error for missing user agent")
	}
}
