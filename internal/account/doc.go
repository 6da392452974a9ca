// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package account runs the sign-in, sign-up and profile flows on top of
// the session manager.
//
// The query cache is cleared whenever the session changes hands: login,
// logout, or the backend rejecting the token. Cached wallet and queue
// data never outlives the user it was fetched for.
package account
