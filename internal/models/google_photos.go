// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import "time"

// AlbumLinkRequest is the body of the Google Photos validate and sync calls.
type AlbumLinkRequest struct {
	ShareLink string `json:"shareLink" validate:"required,gphotos_link"`
}

// AlbumLinkCheck is the data of POST /google-photos/validate-link.
type AlbumLinkCheck struct {
	Valid      bool   `json:"valid"`
	AlbumTitle string `json:"albumTitle,omitempty"`
	PhotoCount int    `json:"photoCount,omitempty"`
}

// SyncResult is the data of POST /google-photos/sync.
type SyncResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SyncStatus is the data of GET /google-photos/sync-status.
type SyncStatus struct {
	TotalSynced     int        `json:"totalSynced"`
	PendingApproval int        `json:"pendingApproval"`
	Approved        int        `json:"approved"`
	Rejected        int        `json:"rejected"`
	LastSyncAt      *time.Time `json:"lastSyncAt,omitempty"`
}
