// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"fmt"
	"time"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type,omitempty"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a point from latitude and longitude.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lon, lat}}
}

// Lat returns the latitude.
func (g GeoPoint) Lat() float64 { return g.Coordinates[1] }

// Lon returns the longitude.
func (g GeoPoint) Lon() float64 { return g.Coordinates[0] }

// String formats the point as "lat, lon" with six decimals.
func (g GeoPoint) String() string {
	return fmt.Sprintf("%.6f, %.6f", g.Lat(), g.Lon())
}

// Place is a geotagged location that photos and blogs attach to.
type Place struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country,omitempty"`
	Location    GeoPoint  `json:"location"`
	PhotoCount  int       `json:"photoCount"`
	TotalViews  int       `json:"totalViews,omitempty"`
	CoverPhoto  string    `json:"coverPhoto,omitempty"`
	Photos      []Photo   `json:"photos,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// MapBounds is the viewport passed to GET /places/map.
type MapBounds struct {
	North float64 `json:"north" validate:"latitude"`
	South float64 `json:"south" validate:"latitude,ltefield=North"`
	East  float64 `json:"east" validate:"longitude"`
	West  float64 `json:"west" validate:"longitude"`
}

// Contains reports whether the point lies inside the bounds. Bounds that
// cross the antimeridian (West > East) are handled.
func (b MapBounds) Contains(p GeoPoint) bool {
	lat, lon := p.Lat(), p.Lon()
	if lat < b.South || lat > b.North {
		return false
	}
	if b.West <= b.East {
		return lon >= b.West && lon <= b.East
	}
	return lon >= b.West || lon <= b.East
}

// PlaceQuery filters GET /places.
type PlaceQuery struct {
	PageQuery
	Search string `json:"search,omitempty"`
	City   string `json:"city,omitempty"`
}
