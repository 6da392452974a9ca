// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package store holds transient, in-memory client state that is not
// persisted: the photo browser's selection, filter and view mode, and
// generic UI state such as the sidebar, modal and theme.
//
// Both stores are safe for concurrent use. Every change replaces the whole
// state and is delivered to subscribers after the lock is released, so a
// subscriber may read or mutate the store it was called from.
package store
