// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package api holds one typed service per backend resource. Each method maps
to exactly one REST call made through the HTTP adapter in internal/client.

Services:
  - Auth: register, login, current user, forgot password
  - Users: profile and profile photo
  - Photos: browse, upload, delete, like, places-with-photos
  - Places: list, map viewport, detail, photos of a place
  - Blogs: list, detail, by place, create, update, delete, publish, mine
  - Wallet: balance, transactions, redeem, storefront balance
  - Admin: stats, pending queue, approve, reject, reward and watermark settings
  - GooglePhotos: album link validation, sync, sync status

Request models are validated locally first; a failing request returns a
*client.ValidationError and nothing is sent.
*/
package api
