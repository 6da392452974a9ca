// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package flow has the pieces shared by the user-facing flows in wallet and
// admin.
//
// A Scope tracks whether the screen that started an operation is still
// around. Results that settle after the scope is closed are dropped: the
// request itself is never cancelled, only the local state update and the
// notification are suppressed.
//
// A Notifier shows the one-line success or failure message every mutation
// ends with.
package flow
