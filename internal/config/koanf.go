// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped from environment variable names before mapping.
const envPrefix = "GEOSNAP_"

// defaultConfig returns the built-in defaults. Config file and environment
// variables are layered on top.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000/api",
			Timeout:        30 * time.Second,
			UserAgent:      "geosnap-cli/1.0",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Session: SessionConfig{
			Store: "badger",
			Path:  defaultSessionPath(),
		},
		Cache: CacheConfig{
			StaleTime: 30 * time.Second,
		},
		Wallet: WalletConfig{
			MinRedemption: "10",
			PageSize:      20,
		},
		Admin: AdminConfig{
			PageSize: 20,
		},
		Geocoder: GeocoderConfig{
			URL:          "https://nominatim.openstreetmap.org",
			UserAgent:    "geosnap-cli/1.0 (+https://github.com/tomtom215/geosnap)",
			RateLimitRPS: 1, // Nominatim usage policy: at most one request per second
			CacheSize:    256,
			CacheTTL:     24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Watch: WatchConfig{
			Interval: time.Minute,
		},
	}
}

// defaultSessionPath places the session database under the user config dir.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".geosnap", "session")
	}
	return filepath.Join(dir, "geosnap", "session")
}

// defaultConfigPaths lists the config files searched in order.
func defaultConfigPaths() []string {
	paths := []string{"geosnap.yaml", "geosnap.yml"}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths,
			filepath.Join(dir, "geosnap", "config.yaml"),
			filepath.Join(dir, "geosnap", "config.yml"),
		)
	}
	return paths
}

// LoadWithKoanf loads configuration with layered sources:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: explicitPath if set, else CONFIG_PATH, else the default paths
//  3. Environment variables: GEOSNAP_* (highest priority)
//
// The result is validated before it is returned.
func LoadWithKoanf(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile resolves which config file to read. An explicit path that
// does not exist is an error; missing default files are not.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	for _, path := range defaultConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// envMappings maps GEOSNAP_-stripped, lower-cased variable names to koanf paths.
var envMappings = map[string]string{
	"api_url":              "api.base_url",
	"api_base_url":         "api.base_url",
	"api_timeout":          "api.timeout",
	"api_user_agent":       "api.user_agent",
	"api_rate_limit_rps":   "api.rate_limit_rps",
	"api_rate_limit_burst": "api.rate_limit_burst",

	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	"session_store": "session.store",
	"session_path":  "session.path",

	"cache_stale_time": "cache.stale_time",

	"min_redemption":   "wallet.min_redemption",
	"wallet_page_size": "wallet.page_size",
	"admin_page_size":  "admin.page_size",

	"geocoder_url":       "geocoder.url",
	"geocoder_agent":     "geocoder.user_agent",
	"geocoder_rps":       "geocoder.rate_limit_rps",
	"geocoder_cache":     "geocoder.cache_size",
	"geocoder_cache_ttl": "geocoder.cache_ttl",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_addr":   "metrics.addr",
	"watch_interval": "watch.interval",
}

// envTransformFunc maps GEOSNAP_API_URL -> api.base_url.
// Unmapped variables return "" and are skipped so stray variables
// cannot pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
