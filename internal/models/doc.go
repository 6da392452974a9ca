// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package models defines the data structures exchanged with the Geosnap backend.

Key Components:

  - Envelope: the backend's {success, data, message, pagination} wrapper
  - User, Session payloads: AuthPayload returned by login and registration
  - Photo, PendingPhoto: uploaded photos and the admin moderation view
  - Place, GeoPoint: geotagged places for the map
  - Blog: travel blog posts
  - WalletBalance, Transaction: the reward wallet and its ledger
  - AdminStats, RewardSettings, WatermarkSettings: admin dashboard
  - SyncStatus, SyncResult: Google Photos album import

Money is decimal.Decimal throughout. Amounts are decoded from JSON numbers or
strings and encoded as JSON numbers, which is what the backend expects.

References to other documents (userId, placeId, photoId, authorId) may arrive
either as a bare id string or as a populated object; Ref accepts both.

Request models carry `validate` tags checked by internal/validation before
anything is sent.
*/
package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts go out as JSON numbers ("amount": 25), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
