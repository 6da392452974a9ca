// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package gallery

import (
	"context"

	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/models"
)

// Places returns a page of places.
func (g *Gallery) Places(ctx context.Context, q models.PlaceQuery) (*models.Page[models.Place], error) {
	q.PageQuery = q.PageQuery.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourcePlaces, q), func(ctx context.Context) (*models.Page[models.Place], error) {
		return g.places.List(ctx, q)
	})
}

// PlacesIn returns the places inside b.
func (g *Gallery) PlacesIn(ctx context.Context, b models.MapBounds) ([]models.Place, error) {
	return cache.Fetch(ctx, g.qc, cache.Key(ResourcePlacesMap, b), func(ctx context.Context) ([]models.Place, error) {
		return g.places.ForMap(ctx, b)
	})
}

// Place returns one place.
func (g *Gallery) Place(ctx context.Context, id string) (*models.Place, error) {
	return cache.Fetch(ctx, g.qc, cache.Key(ResourcePlace, id), func(ctx context.Context) (*models.Place, error) {
		return g.places.Get(ctx, id)
	})
}

// PlacePhotos returns a page of the photos taken at a place.
func (g *Gallery) PlacePhotos(ctx context.Context, id string, q models.PageQuery) (*models.Page[models.Photo], error) {
	q = q.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourcePlacePhotos, id, q), func(ctx context.Context) (*models.Page[models.Photo], error) {
		return g.places.Photos(ctx, id, q)
	})
}
