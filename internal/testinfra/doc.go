// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package testinfra provides an in-process fake of the Geosnap backend.
//
// FakeBackend is a chi router behind an httptest.Server that keeps users,
// wallets, the moderation queue and settings in memory. Tests drive the
// real client stack against it:
//
//	func TestRedeem(t *testing.T) {
//	    fb := testinfra.NewFakeBackend(t)
//	    u := fb.AddUser("Asha", "asha@example.com", "secret1", models.RoleUser)
//	    fb.SetBalance(u.ID, "25")
//
//	    c, _ := client.New(cfg(fb.URL()), client.WithTokenSource(...))
//	    ...
//	}
//
// # Fault injection
//
//   - FailNext makes the next matching request fail with a given status
//   - Hold parks matching requests until released, so tests can observe
//     in-flight state
//   - Count and Captures report what the client actually sent
package testinfra
