// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package logging provides centralized zerolog-based structured logging for Geosnap.
//
// Every package in the client logs through this package rather than through
// the standard library log package, so the CLI, the background pollers and the
// HTTP adapter share one configured output.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Str("route", "/users/wallet").Msg("Balance fetched")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Session invalidated")
//
// # Configuration
//
// Level and format come from the koanf configuration (logging.level,
// logging.format, logging.caller) which in turn can be set with the
// GEOSNAP_LOG_LEVEL, GEOSNAP_LOG_FORMAT and GEOSNAP_LOG_CALLER environment
// variables.
//
// # Context Propagation
//
// The HTTP adapter stores a request ID in the context of every outgoing call
// and flows store a correlation ID per user action. Ctx(ctx) returns a logger
// that carries both:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("Redeem submitted")
//
// # Secrets
//
// Bearer tokens must never be logged verbatim. Use MaskToken:
//
//	logging.Debug().Str("token", logging.MaskToken(tok)).Msg("Session restored")
//
// # slog Integration
//
// NewSlogLogger returns a *slog.Logger backed by zerolog for libraries that
// require slog (sutureslog in internal/supervisor).
package logging
