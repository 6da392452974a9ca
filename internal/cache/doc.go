// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package cache holds client-side caches.

# Query cache

QueryCache is the read side of every resource service. Entries are keyed by
resource and parameters and hold {data, status, error, fetchedAt}:

	key := cache.Key("transactions", models.PageQuery{Page: 2, Limit: 20})
	page, err := cache.Fetch(ctx, qc, key, func(ctx context.Context) (*models.Page[models.Transaction], error) {
	    return svc.Transactions(ctx, q)
	})

Fetch serves a fresh entry without calling fn and refetches stale or
missing ones. Successful writes call Invalidate with the resource names
they affect, which drops every key of those resources:

	qc.Invalidate("walletBalance", "transactions")

A failed fetch keeps the previous data and records the error. A fetch that
was already running when its resource got invalidated returns its result
to the caller but does not store it as fresh.

# LRU

LRU is a bounded, TTL-aware least-recently-used map used for lookups that
are expensive to repeat, such as geocoding queries.
*/
package cache
