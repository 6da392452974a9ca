// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package session

import (
	"testing"

	"github.com/tomtom215/geosnap/internal/models"
)

func TestGuards(t *testing.T) {
	user := &models.User{ID: "u", Role: models.RoleUser}
	admin := &models.User{ID: "a", Role: models.RoleAdmin}
	super := &models.User{ID: "s", Role: models.RoleSuperAdmin}

	tests := []struct {
		name      string
		state     State
		wantAuth  Decision
		wantAdmin Decision
	}{
		{"anonymous", State{}, Decision{Redirect: LoginPath}, Decision{Redirect: LoginPath}},
		{"user", State{User: user, Token: "t", IsAuthenticated: true}, Decision{Allowed: true}, Decision{Redirect: HomePath}},
		{"admin", State{User: admin, Token: "t", IsAuthenticated: true}, Decision{Allowed: true}, Decision{Allowed: true}},
		{"superadmin", State{User: super, Token: "t", IsAuthenticated: true}, Decision{Allowed: true}, Decision{Allowed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequireAuth(tt.state); got != tt.wantAuth {
				t.Errorf("RequireAuth = %+v, want %+v", got, tt.wantAuth)
			}
			if got := RequireAdmin(tt.state); got != tt.wantAdmin {
				t.Errorf("RequireAdmin = %+v, want %+v", got, tt.wantAdmin)
			}
		})
	}
}
