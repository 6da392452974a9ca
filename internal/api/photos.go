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

// PhotosService covers /photos.
type PhotosService struct {
	d Doer
}

// LikeResult is the data of POST /photos/{id}/like.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

func photoQuery(q models.PhotoQuery) url.Values {
	v := client.PageParams(q.PageQuery)
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.PlaceID != "" {
		v.Set("placeId", q.PlaceID)
	}
	if q.City != "" {
		v.Set("city", q.City)
	}
	return v
}

// List returns approved public photos.
func (s *PhotosService) List(ctx context.Context, q models.PhotoQuery) (*models.Page[models.Photo], error) {
	q.PageQuery = q.PageQuery.Normalize()
	if err := check(&q); err != nil {
		return nil, err
	}
	return getPage[models.Photo](ctx, s.d, &client.Request{Method: http.MethodGet, Path: "/photos", Query: photoQuery(q)})
}

// Mine returns the current user's uploads in any approval state.
func (s *PhotosService) Mine(ctx context.Context, q models.PhotoQuery) (*models.Page[models.Photo], error) {
	q.PageQuery = q.PageQuery.Normalize()
	if err := check(&q); err != nil {
		return nil, err
	}
	return getPage[models.Photo](ctx, s.d, &client.Request{Method: http.MethodGet, Path: "/photos/my", Query: photoQuery(q)})
}

// Get returns one photo.
func (s *PhotosService) Get(ctx context.Context, id string) (*models.Photo, error) {
	if err := requireID("photoId", id); err != nil {
		return nil, err
	}
	return getOne[models.Photo](ctx, s.d, "/photos/"+id, "/photos/{id}")
}

// Upload sends one or more photos taken at the given place. Each file goes
// in its own "photo" part.
func (s *PhotosService) Upload(ctx context.Context, meta models.PhotoUpload, files []Upload) ([]models.Photo, error) {
	if len(files) == 0 {
		return nil, client.NewValidationError("photo", "required", "Select files")
	}
	if err := check(&meta); err != nil {
		return nil, err
	}
	if err := checkImages("photo", files); err != nil {
		return nil, err
	}

	form := client.NewForm().
		Field("latitude", strconv.FormatFloat(meta.Latitude, 'f', -1, 64)).
		Field("longitude", strconv.FormatFloat(meta.Longitude, 'f', -1, 64)).
		Field("placeId", meta.PlaceID).
		Field("placeName", meta.PlaceName)
	addFiles(form, "photo", files)

	var photos []models.Photo
	if _, err := s.d.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/photos/upload", Form: form}, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Delete removes one of the current user's photos.
func (s *PhotosService) Delete(ctx context.Context, id string) error {
	if err := requireID("photoId", id); err != nil {
		return err
	}
	_, err := s.d.Do(ctx, &client.Request{Method: http.MethodDelete, Path: "/photos/" + id, Route: "/photos/{id}"}, nil)
	return err
}

// Like toggles the current user's like on a photo.
func (s *PhotosService) Like(ctx context.Context, id string) (*LikeResult, error) {
	if err := requireID("photoId", id); err != nil {
		return nil, err
	}
	return send[LikeResult](ctx, s.d, http.MethodPost, "/photos/"+id+"/like", "/photos/{id}/like", nil)
}

// PlacesWithPhotos returns places that have photos in the given status,
// for the map view.
func (s *PhotosService) PlacesWithPhotos(ctx context.Context, status string, limit int) ([]models.Place, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var places []models.Place
	if _, err := s.d.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/photos/places", Query: q}, &places); err != nil {
		return nil, err
	}
	return places, nil
}
