// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package gallery

import (
	"context"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/geocode"
	"github.com/tomtom215/geosnap/internal/models"
)

// Query cache resources.
const (
	ResourcePhotos      = "photos"
	ResourceMyPhotos    = "myPhotos"
	ResourcePhoto       = "photo"
	ResourceMapPlaces   = "mapPlaces"
	ResourcePlaces      = "places"
	ResourcePlacesMap   = "placesMap"
	ResourcePlace       = "place"
	ResourcePlacePhotos = "placePhotos"
	ResourceBlogs       = "blogs"
	ResourceMyBlogs     = "myBlogs"
	ResourceBlog        = "blog"
)

// MapPhotoLimit is how many places the map view asks for.
const MapPhotoLimit = 1000

// PhotoBackend is the photos API.
type PhotoBackend interface {
	List(ctx context.Context, q models.PhotoQuery) (*models.Page[models.Photo], error)
	Mine(ctx context.Context, q models.PhotoQuery) (*models.Page[models.Photo], error)
	Get(ctx context.Context, id string) (*models.Photo, error)
	Upload(ctx context.Context, meta models.PhotoUpload, files []api.Upload) ([]models.Photo, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (*api.LikeResult, error)
	PlacesWithPhotos(ctx context.Context, status string, limit int) ([]models.Place, error)
}

// PlaceBackend is the places API.
type PlaceBackend interface {
	List(ctx context.Context, q models.PlaceQuery) (*models.Page[models.Place], error)
	ForMap(ctx context.Context, b models.MapBounds) ([]models.Place, error)
	Get(ctx context.Context, id string) (*models.Place, error)
	Photos(ctx context.Context, id string, q models.PageQuery) (*models.Page[models.Photo], error)
}

// BlogBackend is the blogs API.
type BlogBackend interface {
	List(ctx context.Context, q models.PageQuery) (*models.Page[models.Blog], error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	ByPlace(ctx context.Context, placeID string, q models.PageQuery) (*models.Page[models.Blog], error)
	Mine(ctx context.Context, q models.PageQuery) (*models.Page[models.Blog], error)
	Create(ctx context.Context, in models.BlogInput, covers []api.Upload) (*models.Blog, error)
	Update(ctx context.Context, id string, in models.BlogInput, covers []api.Upload) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*models.Blog, error)
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) (geocode.Result, error)
}

// Gallery serves photos, places and blogs.
//
// Thread Safety: Safe for concurrent use.
type Gallery struct {
	photos   PhotoBackend
	places   PlaceBackend
	blogs    BlogBackend
	geocoder Geocoder
	qc       *cache.QueryCache
	notify   flow.Notifier
}

// Option configures a Gallery.
type Option func(*Gallery)

// WithNotifier sets where success and failure messages go.
func WithNotifier(n flow.Notifier) Option {
	return func(g *Gallery) { g.notify = n }
}

// WithGeocoder enables uploads to places given only by name.
func WithGeocoder(gc Geocoder) Option {
	return func(g *Gallery) { g.geocoder = gc }
}

// New creates a Gallery over the API modules.
func New(a *api.API, qc *cache.QueryCache, opts ...Option) *Gallery {
	return NewWithBackends(a.Photos, a.Places, a.Blogs, qc, opts...)
}

// NewWithBackends creates a Gallery over explicit backends.
func NewWithBackends(photos PhotoBackend, places PlaceBackend, blogs BlogBackend, qc *cache.QueryCache, opts ...Option) *Gallery {
	g := &Gallery{
		photos: photos,
		places: places,
		blogs:  blogs,
		qc:     qc,
		notify: flow.LogNotifier{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// mutated finishes a mutation: invalidate on success and notify either way.
func (g *Gallery) mutated(err error, okMsg, failMsg string, resources ...string) error {
	if err != nil {
		g.notify.Error(userMessage(err, failMsg))
		return err
	}
	g.qc.Invalidate(resources...)
	if okMsg != "" {
		g.notify.Success(okMsg)
	}
	return nil
}
