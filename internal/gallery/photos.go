// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package gallery

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/geocode"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/models"
)

// Photo messages.
const (
	MsgUploaded        = "Photo uploaded successfully! Waiting for approval."
	MsgUploadFailed    = "Failed to upload photo"
	MsgDeleted         = "Photo deleted successfully"
	MsgDeleteFailed    = "Failed to delete photo"
	MsgLiked           = "Photo liked!"
	MsgLikeFailed      = "Failed to like photo"
	MsgLocationFound   = "Location detected"
	MsgLocationFailed  = "Failed to detect location"
	MsgSelectPlace     = "Select or add a place"
	MsgPlaceNotFound   = "Place not found"
)

func userMessage(err error, fallback string) string {
	return client.UserMessage(err, fallback)
}

// Photos returns a page of public photos.
func (g *Gallery) Photos(ctx context.Context, q models.PhotoQuery) (*models.Page[models.Photo], error) {
	q.PageQuery = q.PageQuery.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourcePhotos, q), func(ctx context.Context) (*models.Page[models.Photo], error) {
		return g.photos.List(ctx, q)
	})
}

// MyPhotos returns a page of the current user's photos in any status.
func (g *Gallery) MyPhotos(ctx context.Context, q models.PhotoQuery) (*models.Page[models.Photo], error) {
	q.PageQuery = q.PageQuery.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourceMyPhotos, q), func(ctx context.Context) (*models.Page[models.Photo], error) {
		return g.photos.Mine(ctx, q)
	})
}

// Photo returns one photo.
func (g *Gallery) Photo(ctx context.Context, id string) (*models.Photo, error) {
	return cache.Fetch(ctx, g.qc, cache.Key(ResourcePhoto, id), func(ctx context.Context) (*models.Photo, error) {
		return g.photos.Get(ctx, id)
	})
}

// MapPlaces returns the places with approved photos shown on the map.
func (g *Gallery) MapPlaces(ctx context.Context) ([]models.Place, error) {
	return cache.Fetch(ctx, g.qc, ResourceMapPlaces, func(ctx context.Context) ([]models.Place, error) {
		return g.photos.PlacesWithPhotos(ctx, models.ApprovalApproved, MapPhotoLimit)
	})
}

// Target says where uploaded photos were taken: an existing place, or a
// new place name to geocode.
type Target struct {
	PlaceID   string
	PlaceName string
}

// Locate resolves target to an upload request.
func (g *Gallery) Locate(ctx context.Context, target Target) (models.PhotoUpload, error) {
	target.PlaceID = strings.TrimSpace(target.PlaceID)
	target.PlaceName = strings.TrimSpace(target.PlaceName)

	switch {
	case target.PlaceID != "":
		place, err := g.Place(ctx, target.PlaceID)
		if err != nil {
			return models.PhotoUpload{}, err
		}
		return models.PhotoUpload{
			Latitude:  place.Location.Lat(),
			Longitude: place.Location.Lon(),
			PlaceID:   place.ID,
			PlaceName: place.Name,
		}, nil

	case target.PlaceName != "":
		if g.geocoder == nil {
			return models.PhotoUpload{}, client.NewValidationError("placeId", "required", MsgSelectPlace)
		}
		r, err := g.geocoder.Search(ctx, target.PlaceName)
		if errors.Is(err, geocode.ErrPlaceNotFound) {
			g.notify.Error(MsgPlaceNotFound)
			return models.PhotoUpload{}, client.NewValidationError("placeName", "geocode", MsgPlaceNotFound)
		}
		if err != nil {
			g.notify.Error(MsgLocationFailed)
			return models.PhotoUpload{}, err
		}
		g.notify.Success(MsgLocationFound)
		return models.PhotoUpload{
			Latitude:  r.Lat,
			Longitude: r.Lon,
			PlaceName: target.PlaceName,
		}, nil

	default:
		g.notify.Error(MsgSelectPlace)
		return models.PhotoUpload{}, client.NewValidationError("placeId", "required", MsgSelectPlace)
	}
}

// Upload locates target and uploads files there.
func (g *Gallery) Upload(ctx context.Context, target Target, files []api.Upload) ([]models.Photo, error) {
	meta, err := g.Locate(ctx, target)
	if err != nil {
		return nil, err
	}
	photos, err := g.photos.Upload(ctx, meta, files)
	if err := g.mutated(err, MsgUploaded, MsgUploadFailed, ResourcePhotos, ResourceMyPhotos, ResourceMapPlaces); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().
		Int("count", len(photos)).
		Str("place", meta.PlaceName).
		Msg("Photos uploaded")
	return photos, nil
}

// DeletePhoto deletes one of the current user's photos.
func (g *Gallery) DeletePhoto(ctx context.Context, id string) error {
	err := g.photos.Delete(ctx, id)
	return g.mutated(err, MsgDeleted, MsgDeleteFailed, ResourcePhotos, ResourceMyPhotos, ResourceMapPlaces, ResourcePhoto)
}

// Like toggles the current user's like.
func (g *Gallery) Like(ctx context.Context, id string) (*api.LikeResult, error) {
	res, err := g.photos.Like(ctx, id)
	if err := g.mutated(err, MsgLiked, MsgLikeFailed, ResourcePhotos, ResourcePhoto); err != nil {
		return nil, err
	}
	return res, nil
}
