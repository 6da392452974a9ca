// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package client is the HTTP adapter every resource API goes through.

Client Features:
  - Bearer token injection from a TokenSource (the session manager)
  - Envelope unwrapping: {success, data, message, pagination}
  - Typed errors: ValidationError, APIError (auth, not found, conflict,
    server) and NetworkError, all matchable with errors.Is
  - Forced logout on 401/403 through an AuthFailureFunc
  - Circuit breaker (sony/gobreaker) that only counts network failures and
    5xx responses; 4xx answers are the backend doing its job
  - Optional client-side rate limiting (golang.org/x/time/rate)
  - X-Request-ID on every request and Idempotency-Key on request
  - Multipart uploads for photos, profile photos and blog covers
  - Prometheus metrics and zerolog debug logging per request

The client never retries on its own. A failed call is retried only when the
user repeats the action.

Example:

	c, err := client.New(cfg, client.WithTokenSource(sessions),
	    client.WithAuthFailureHandler(sessions.HandleAuthFailure))
	if err != nil {
	    return err
	}
	var balance models.WalletBalance
	if _, err := c.Get(ctx, "/users/wallet", nil, &balance); err != nil {
	    fmt.Println(client.UserMessage(err, "Failed to load wallet balance"))
	}
*/
package client
