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
	"github.com/tomtom215/geosnap/internal/validation"
)

// Doer sends one backend request. *client.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *client.Request, out any) (*client.Response, error)
}

// API bundles every resource service.
type API struct {
	Auth         *AuthService
	Users        *UsersService
	Photos       *PhotosService
	Places       *PlacesService
	Blogs        *BlogsService
	Wallet       *WalletService
	Admin        *AdminService
	GooglePhotos *GooglePhotosService
}

// New wires every service to d.
func New(d Doer) *API {
	return &API{
		Auth:         &AuthService{d: d},
		Users:        &UsersService{d: d},
		Photos:       &PhotosService{d: d},
		Places:       &PlacesService{d: d},
		Blogs:        &BlogsService{d: d},
		Wallet:       &WalletService{d: d},
		Admin:        &AdminService{d: d},
		GooglePhotos: &GooglePhotosService{d: d},
	}
}

// check validates a request model and converts the first failure into a
// client.ValidationError.
func check(v any) error {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	first := verr.First()
	if first == nil {
		return client.NewValidationError("", "invalid", verr.Error())
	}
	return client.NewValidationError(first.Field(), first.Tag(), first.Error())
}

// requireID rejects blank document ids before they turn into odd paths.
func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return client.NewValidationError(field, "required", field+" is required")
	}
	return nil
}

// getPage fetches one page of a paginated list.
func getPage[T any](ctx context.Context, d Doer, req *client.Request) (*models.Page[T], error) {
	var items []T
	resp, err := d.Do(ctx, req, &items)
	if err != nil {
		return nil, err
	}
	page := &models.Page[T]{Items: items}
	if resp.Pagination != nil {
		page.Pagination = *resp.Pagination
	} else {
		page.Pagination = models.Pagination{CurrentPage: 1, TotalPages: 1, Total: len(items), Limit: len(items)}
	}
	return page, nil
}

// getOne fetches a single document.
func getOne[T any](ctx context.Context, d Doer, path, route string) (*T, error) {
	var out T
	if _, err := d.Do(ctx, &client.Request{Method: http.MethodGet, Path: path, Route: route}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// send issues a mutating call with a JSON body and decodes the data.
func send[T any](ctx context.Context, d Doer, method, path, route string, body any) (*T, error) {
	var out T
	if _, err := d.Do(ctx, &client.Request{Method: method, Path: path, Route: route, Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
