// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package gallery is the read-through layer for photos, places and blogs.
//
// Reads go through the query cache keyed by resource and parameters.
// Mutations invalidate what they change:
//
//	upload, delete photo   photos, myPhotos, mapPlaces
//	like                   photos
//	blog create/update/... blogs, myBlogs
//
// Uploads resolve their location first, from a known place or by geocoding
// a new place name.
package gallery
