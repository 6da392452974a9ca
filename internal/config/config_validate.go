// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/validation"
)

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateAPI,
		c.validateBreaker,
		c.validateSession,
		c.validateWallet,
		c.validateGeocoder,
		c.validateLogging,
	}
	var errs []error
	for _, v := range validators {
		if err := v(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Config) validateAPI() error {
	if err := validateHTTPURL("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", c.API.Timeout)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("api.rate_limit_rps must not be negative, got %v", c.API.RateLimitRPS)
	}
	if c.API.RateLimitRPS > 0 && c.API.RateLimitBurst < 1 {
		return fmt.Errorf("api.rate_limit_burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("breaker.timeout must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateSession() error {
	switch c.Session.Store {
	case "memory":
		return nil
	case "badger":
		if strings.TrimSpace(c.Session.Path) == "" {
			return fmt.Errorf("session.path is required when session.store is badger")
		}
		return nil
	default:
		return fmt.Errorf("session.store must be badger or memory, got %q", c.Session.Store)
	}
}

func (c *Config) validateWallet() error {
	min, err := c.MinRedemption()
	if err != nil {
		return err
	}
	if !min.IsPositive() {
		return fmt.Errorf("wallet.min_redemption must be positive, got %s", min)
	}
	if c.Wallet.PageSize < 1 || c.Wallet.PageSize > 100 {
		return fmt.Errorf("wallet.page_size must be between 1 and 100, got %d", c.Wallet.PageSize)
	}
	if c.Admin.PageSize < 1 || c.Admin.PageSize > 100 {
		return fmt.Errorf("admin.page_size must be between 1 and 100, got %d", c.Admin.PageSize)
	}
	return nil
}

func (c *Config) validateGeocoder() error {
	if err := validateHTTPURL("geocoder.url", c.Geocoder.URL); err != nil {
		return err
	}
	if strings.TrimSpace(c.Geocoder.UserAgent) == "" {
		return fmt.Errorf("geocoder.user_agent is required by the Nominatim usage policy")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.IsValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// MinRedemption parses wallet.min_redemption as a decimal amount.
func (c *Config) MinRedemption() (decimal.Decimal, error) {
	min, err := validation.ParseAmount(c.Wallet.MinRedemption)
	if err != nil {
		return decimal.Zero, fmt.Errorf("wallet.min_redemption %q is not a valid amount: %w", c.Wallet.MinRedemption, err)
	}
	return min, nil
}

func validateHTTPURL(name, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}
