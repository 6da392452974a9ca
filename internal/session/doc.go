// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package session owns "who is logged in".

A Manager holds the session triple {user, token, isAuthenticated} and is the
only writer of it. Every mutation writes through to durable Storage first
and only then flips the in-memory state, so a crash can never leave the
process believing it is logged in without a token that survives a restart.

Storage backends:
  - BadgerStorage: persisted under session.path (default)
  - MemoryStorage: lost at exit, used by tests and --ephemeral runs

The persisted value lives under the single key "auth-storage":

	{"state":{"user":{...},"token":"...","isAuthenticated":true},"version":0}

Init rehydrates it at startup. A value that cannot be decoded, that breaks
isAuthenticated == (token != null), or whose JWT has already expired is
discarded and the session starts logged out.

The Manager implements client.TokenSource, and HandleAuthFailure has the
client.AuthFailureFunc signature, so a 401/403 from the backend ends the
session and tells listeners to send the user to /login.

Route guards RequireAuth and RequireAdmin decide whether a command may run
for a given State and where to redirect otherwise.
*/
package session
