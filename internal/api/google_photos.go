// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/geosnap/internal/models"
)

// GooglePhotosService covers /google-photos album import.
type GooglePhotosService struct {
	d Doer
}

// ValidateLink asks the backend whether a shared album can be read.
func (s *GooglePhotosService) ValidateLink(ctx context.Context, shareLink string) (*models.AlbumLinkCheck, error) {
	req := models.AlbumLinkRequest{ShareLink: strings.TrimSpace(shareLink)}
	if err := check(&req); err != nil {
		return nil, err
	}
	return send[models.AlbumLinkCheck](ctx, s.d, http.MethodPost, "/google-photos/validate-link", "", req)
}

// Sync imports the album's photos into the moderation queue.
func (s *GooglePhotosService) Sync(ctx context.Context, shareLink string) (*models.SyncResult, error) {
	req := models.AlbumLinkRequest{ShareLink: strings.TrimSpace(shareLink)}
	if err := check(&req); err != nil {
		return nil, err
	}
	return send[models.SyncResult](ctx, s.d, http.MethodPost, "/google-photos/sync", "", req)
}

// Status returns counts for the photos imported so far.
func (s *GooglePhotosService) Status(ctx context.Context) (*models.SyncStatus, error) {
	return getOne[models.SyncStatus](ctx, s.d, "/google-photos/sync-status", "")
}
