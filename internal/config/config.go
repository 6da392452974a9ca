// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package config loads Geosnap client configuration.
//
// Configuration is layered with koanf (highest priority wins):
//
//  1. Environment variables (GEOSNAP_API_URL, GEOSNAP_LOG_LEVEL, ...)
//  2. YAML config file (CONFIG_PATH, ./geosnap.yaml, $XDG_CONFIG_HOME/geosnap/config.yaml)
//  3. Built-in defaults
//
// The only value a user normally has to set is the backend base URL.
// Everything else is tuning for the HTTP adapter, the durable session store,
// the query cache and the background pollers.
package config

import (
	"time"
)

// Config is the root configuration.
type Config struct {
	API      APIConfig      `koanf:"api"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Session  SessionConfig  `koanf:"session"`
	Cache    CacheConfig    `koanf:"cache"`
	Wallet   WalletConfig   `koanf:"wallet"`
	Admin    AdminConfig    `koanf:"admin"`
	Geocoder GeocoderConfig `koanf:"geocoder"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Watch    WatchConfig    `koanf:"watch"`
}

// APIConfig configures the HTTP adapter that talks to the backend.
type APIConfig struct {
	// BaseURL is the backend REST root, e.g. https://api.example.com/api.
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`

	// RateLimitRPS caps outgoing requests per second. 0 disables the limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// BreakerConfig configures the circuit breaker wrapped around every request.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SessionConfig selects the durable storage for the auth session.
type SessionConfig struct {
	// Store is "badger" (persisted) or "memory" (lost at exit).
	Store string `koanf:"store"`
	Path  string `koanf:"path"`
}

// CacheConfig configures the query cache.
type CacheConfig struct {
	// StaleTime is how long a fetched resource is served without refetching.
	StaleTime time.Duration `koanf:"stale_time"`
}

// WalletConfig holds redemption and ledger settings.
type WalletConfig struct {
	// MinRedemption is the client-side pre-flight minimum. The backend
	// re-validates with its own configured minimum.
	MinRedemption string `koanf:"min_redemption"`
	PageSize      int    `koanf:"page_size"`
}

// AdminConfig holds approval queue settings.
type AdminConfig struct {
	PageSize int `koanf:"page_size"`
}

// GeocoderConfig configures the Nominatim geocoder used by photo upload.
type GeocoderConfig struct {
	URL          string        `koanf:"url"`
	UserAgent    string        `koanf:"user_agent"`
	RateLimitRPS float64       `koanf:"rate_limit_rps"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig configures the optional prometheus endpoint of `geosnap watch`.
type MetricsConfig struct {
	// Addr is a listen address such as ":9464". Empty disables the endpoint.
	Addr string `koanf:"addr"`
}

// WatchConfig configures the background pollers.
type WatchConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// Load reads configuration from defaults, the config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf("")
}
