// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/config"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// maxResponseSize bounds how much of a search response is read.
const maxResponseSize = 1 << 20

var (
	// ErrPlaceNotFound means the search returned no match.
	//
	//nolint:staticcheck // shown to users as-is
	ErrPlaceNotFound = errors.New("Place not found")

	// ErrEmptyQuery is returned for a blank place name.
	ErrEmptyQuery = errors.New("geocode: empty query")
)

// Result is the best match for a query.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Point returns the match as a GeoJSON point.
func (r Result) Point() models.GeoPoint {
	return models.NewGeoPoint(r.Lat, r.Lon)
}

// searchHit is one element of Nominatim's JSON output. Coordinates arrive
// as strings.
type searchHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Nominatim is a rate-limited, caching geocoder.
//
// Thread Safety: Safe for concurrent use.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	results   *cache.LRU[Result]
}

// Option configures a Nominatim.
type Option func(*Nominatim)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(n *Nominatim) { n.client = hc }
}

// New creates a geocoder from cfg.
func New(cfg config.GeocoderConfig, opts ...Option) (*Nominatim, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("geocode: invalid url %q", cfg.URL)
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, errors.New("geocode: a user agent is required")
	}

	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	n := &Nominatim{
		baseURL:   strings.TrimRight(base.String(), "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		results:   cache.NewLRU[Result](cfg.CacheSize, cfg.CacheTTL),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Search returns the first match for query.
func (n *Nominatim) Search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrEmptyQuery
	}
	key := strings.ToLower(query)

	if r, ok := n.results.Get(key); ok {
		metrics.RecordGeocodeLookup("cache_hit")
		return r, nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("geocode: %w", err)
	}

	hits, err := n.fetch(ctx, query)
	if err != nil {
		metrics.RecordGeocodeLookup("error")
		logging.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("Geocoding failed")
		return Result{}, err
	}
	if len(hits) == 0 {
		metrics.RecordGeocodeLookup("not_found")
		return Result{}, ErrPlaceNotFound
	}

	r, err := hits[0].result()
	if err != nil {
		metrics.RecordGeocodeLookup("error")
		return Result{}, err
	}
	n.results.Add(key, r)
	metrics.RecordGeocodeLookup("found")
	logging.Ctx(ctx).Debug().
		Str("query", query).
		Float64("lat", r.Lat).
		Float64("lon", r.Lon).
		Msg("Location detected")
	return r, nil
}

func (h searchHit) result() (Result, error) {
	lat, err := strconv.ParseFloat(h.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocode: bad latitude %q: %w", h.Lat, err)
	}
	lon, err := strconv.ParseFloat(h.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocode: bad longitude %q: %w", h.Lon, err)
	}
	return Result{Lat: lat, Lon: lon, DisplayName: h.DisplayName}, nil
}

// fetch performs a single search request.
func (n *Nominatim) fetch(ctx context.Context, query string) ([]searchHit, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("geocode: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("geocode: failed to read response: %w", err)
	}

	var hits []searchHit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("geocode: failed to decode response: %w", err)
	}
	return hits, nil
}
