// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/models"
)

// ResourceSyncStatus is the cached Google Photos import summary.
const ResourceSyncStatus = "syncStatus"

// Album import messages.
const (
	MsgEnterAlbumLink = "Please enter album link"
	MsgAlbumValid     = "Album link is valid!"
	MsgAlbumInvalid   = "Invalid album link. Make sure it's publicly shared."
	MsgValidateFirst  = "Please validate the link first"
	MsgSyncFailed     = "Failed to sync photos"
)

// ErrNotValidated is returned by Sync before the link passed Validate.
var ErrNotValidated = errors.New("album link not validated")

// AlbumBackend is the Google Photos import API.
type AlbumBackend interface {
	ValidateLink(ctx context.Context, shareLink string) (*models.AlbumLinkCheck, error)
	Sync(ctx context.Context, shareLink string) (*models.SyncResult, error)
	Status(ctx context.Context) (*models.SyncStatus, error)
}

// Album imports a shared Google Photos album. A link must pass Validate
// before Sync sends it; changing the link resets that.
//
// Thread Safety: Safe for concurrent use.
type Album struct {
	backend AlbumBackend
	qc      *cache.QueryCache
	notify  flow.Notifier

	mu        sync.Mutex
	link      string
	validated bool
	title     string
}

// NewAlbum creates an album importer. notify may be nil.
func NewAlbum(backend AlbumBackend, qc *cache.QueryCache, notify flow.Notifier) *Album {
	if notify == nil {
		notify = flow.LogNotifier{}
	}
	return &Album{backend: backend, qc: qc, notify: notify}
}

// SetLink changes the link and clears any earlier validation.
func (a *Album) SetLink(link string) {
	link = strings.TrimSpace(link)
	a.mu.Lock()
	defer a.mu.Unlock()
	if link != a.link {
		a.link, a.validated, a.title = link, false, ""
	}
}

// Validated reports whether the current link passed Validate, and the
// album title the backend reported.
func (a *Album) Validated() (bool, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.validated, a.title
}

// Validate checks the current link with the backend.
func (a *Album) Validate(ctx context.Context) (*models.AlbumLinkCheck, error) {
	a.mu.Lock()
	link := a.link
	a.mu.Unlock()
	if link == "" {
		a.notify.Error(MsgEnterAlbumLink)
		return nil, client.NewValidationError("shareLink", "required", MsgEnterAlbumLink)
	}

	check, err := a.backend.ValidateLink(ctx, link)
	if err == nil && !check.Valid {
		err = client.NewValidationError("shareLink", "album", MsgAlbumInvalid)
	}

	a.mu.Lock()
	current := a.link == link
	if current {
		a.validated = err == nil
		if err == nil {
			a.title = check.AlbumTitle
		}
	}
	a.mu.Unlock()

	if err != nil {
		a.notify.Error(linkMessage(err))
		return nil, err
	}
	a.notify.Success(MsgAlbumValid)
	return check, nil
}

// Sync imports the validated album. The imported photos join the
// moderation queue, and the form resets on success.
func (a *Album) Sync(ctx context.Context) (*models.SyncResult, error) {
	a.mu.Lock()
	link, ok := a.link, a.validated
	a.mu.Unlock()
	if !ok {
		a.notify.Error(MsgValidateFirst)
		return nil, ErrNotValidated
	}

	res, err := a.backend.Sync(ctx, link)
	if err != nil {
		a.notify.Error(client.UserMessage(err, MsgSyncFailed))
		return nil, err
	}
	a.SetLink("")
	a.qc.Invalidate(ResourceSyncStatus, ResourceMyPhotos)
	a.notify.Success(fmt.Sprintf("Successfully synced %d photos!", res.Synced))
	return res, nil
}

// Status returns the import summary.
func (a *Album) Status(ctx context.Context) (*models.SyncStatus, error) {
	return cache.Fetch(ctx, a.qc, ResourceSyncStatus, a.backend.Status)
}

// linkMessage prefers the backend's reason for a rejected link. Local
// format checks get the generic hint.
func linkMessage(err error) string {
	var aerr *client.APIError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	return MsgAlbumInvalid
}
