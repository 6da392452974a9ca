// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package geocode turns a place name typed during photo upload into
// coordinates using a Nominatim search endpoint.
//
// Nominatim's public instance allows at most one request per second and
// requires an identifying User-Agent. Requests go through a token-bucket
// limiter and recent answers are kept in an LRU so retyping the same place
// does not hit the service again.
package geocode
