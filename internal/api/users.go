// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/validation"
)

// UsersService covers /users profile endpoints. Wallet endpoints under
// /users live in WalletService.
type UsersService struct {
	d Doer
}

// UpdateProfile changes profile fields and returns the updated user.
func (s *UsersService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	upd.Name = validation.SanitizeInput(upd.Name)
	upd.Bio = validation.SanitizeInput(upd.Bio)
	if err := check(&upd); err != nil {
		return nil, err
	}
	return send[models.User](ctx, s.d, http.MethodPut, "/users/profile", "", upd)
}

// UploadProfilePhoto replaces the profile photo.
func (s *UsersService) UploadProfilePhoto(ctx context.Context, photo Upload) (*models.User, error) {
	if err := checkImages("profilePhoto", []Upload{photo}); err != nil {
		return nil, err
	}
	form := client.NewForm()
	addFiles(form, "profilePhoto", []Upload{photo})

	var user models.User
	if _, err := s.d.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/users/profile-photo", Form: form}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteProfilePhoto removes the profile photo.
func (s *UsersService) DeleteProfilePhoto(ctx context.Context) error {
	_, err := s.d.Do(ctx, &client.Request{Method: http.MethodDelete, Path: "/users/profile-photo"}, nil)
	return err
}
