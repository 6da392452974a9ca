// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package session

// Redirect targets used by the guards.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the outcome of a route guard.
type Decision struct {
	Allowed  bool
	Redirect string
}

// RequireAuth allows authenticated sessions and sends everyone else to
// the login page.
func RequireAuth(s State) Decision {
	if !s.IsAuthenticated {
		return Decision{Redirect: LoginPath}
	}
	return Decision{Allowed: true}
}

// RequireAdmin allows admin and superadmin sessions. Anonymous users go to
// the login page, signed-in non-admins go home.
func RequireAdmin(s State) Decision {
	if d := RequireAuth(s); !d.Allowed {
		return d
	}
	if s.User == nil || !s.User.IsAdmin() {
		return Decision{Redirect: HomePath}
	}
	return Decision{Allowed: true}
}
