// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package services adapts Geosnap components to suture.Service.
//
//   - PollerService runs a PollFunc on a fixed interval
//   - BalanceWatcher and QueueWatcher are the PollFuncs of `geosnap watch`
//   - MetricsService serves the Prometheus scrape endpoint with graceful shutdown
//
// Every service implements fmt.Stringer so suture's event log names it.
package services
