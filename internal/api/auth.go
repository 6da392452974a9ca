// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
)

// AuthService covers /auth.
type AuthService struct {
	d Doer
}

// Register creates an account and returns the new session credentials.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := check(&req); err != nil {
		return nil, err
	}
	return send[models.AuthPayload](ctx, s.d, http.MethodPost, "/auth/register", "", req)
}

// Login exchanges credentials for a user and bearer token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthPayload, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := check(&req); err != nil {
		return nil, err
	}
	return send[models.AuthPayload](ctx, s.d, http.MethodPost, "/auth/login", "", req)
}

// Me returns the user the current token belongs to.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	return getOne[models.User](ctx, s.d, "/auth/me", "")
}

// ForgotPassword asks the backend to mail a reset link. The returned
// string is the backend's confirmation message.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	req := models.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := check(&req); err != nil {
		return "", err
	}
	resp, err := s.d.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/auth/forgot-password", Body: req}, nil)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
