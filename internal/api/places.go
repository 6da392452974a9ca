// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
)

// PlacesService covers /places.
type PlacesService struct {
	d Doer
}

// List returns places, optionally filtered by search text or city.
func (s *PlacesService) List(ctx context.Context, q models.PlaceQuery) (*models.Page[models.Place], error) {
	v := client.PageParams(q.PageQuery)
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.City != "" {
		v.Set("city", q.City)
	}
	return getPage[models.Place](ctx, s.d, &client.Request{Method: http.MethodGet, Path: "/places", Query: v})
}

// ForMap returns the places inside a map viewport.
func (s *PlacesService) ForMap(ctx context.Context, b models.MapBounds) ([]models.Place, error) {
	if err := check(&b); err != nil {
		return nil, err
	}
	v := url.Values{}
	v.Set("north", strconv.FormatFloat(b.North, 'f', -1, 64))
	v.Set("south", strconv.FormatFloat(b.South, 'f', -1, 64))
	v.Set("east", strconv.FormatFloat(b.East, 'f', -1, 64))
	v.Set("west", strconv.FormatFloat(b.West, 'f', -1, 64))

	var places []models.Place
	if _, err := s.d.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/places/map", Query: v}, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Get returns one place.
func (s *PlacesService) Get(ctx context.Context, id string) (*models.Place, error) {
	if err := requireID("placeId", id); err != nil {
		return nil, err
	}
	return getOne[models.Place](ctx, s.d, "/places/"+id, "/places/{id}")
}

// Photos returns the approved photos of a place.
func (s *PlacesService) Photos(ctx context.Context, id string, q models.PageQuery) (*models.Page[models.Photo], error) {
	if err := requireID("placeId", id); err != nil {
		return nil, err
	}
	return getPage[models.Photo](ctx, s.d, &client.Request{
		Method: http.MethodGet,
		Path:   "/places/" + id + "/photos",
		Route:  "/places/{id}/photos",
		Query:  client.PageParams(q),
	})
}
