// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Photo approval states.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Dimensions is an image size in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ExifData holds the EXIF fields the backend extracts.
type ExifData struct {
	Camera string `json:"camera,omitempty"`
}

// Photo is an uploaded travel photo.
type Photo struct {
	ID              string          `json:"_id"`
	UserID          Ref             `json:"userId"`
	PlaceID         Ref             `json:"placeId,omitempty"`
	PlaceName       string          `json:"placeName,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	Country         string          `json:"country,omitempty"`
	Location        GeoPoint        `json:"location,omitempty"`
	OriginalURL     string          `json:"originalUrl,omitempty"`
	WatermarkedURL  string          `json:"watermarkedUrl,omitempty"`
	ThumbnailURL    string          `json:"thumbnailUrl,omitempty"`
	MediumURL       string          `json:"mediumUrl,omitempty"`
	FileName        string          `json:"fileName,omitempty"`
	FileSize        int64           `json:"fileSize,omitempty"`
	Dimensions      Dimensions      `json:"dimensions,omitempty"`
	Source          string          `json:"source,omitempty"`
	ExifData        *ExifData       `json:"exifData,omitempty"`
	ApprovalStatus  string          `json:"approvalStatus"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	RewardAmount    decimal.Decimal `json:"rewardAmount,omitempty"`
	Likes           int             `json:"likes,omitempty"`
	Views           int             `json:"views,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PendingPhoto is a photo in the admin moderation queue.
type PendingPhoto struct {
	ID             string     `json:"_id"`
	UserID         Ref        `json:"userId"`
	PlaceName      string     `json:"placeName,omitempty"`
	City           string     `json:"city,omitempty"`
	Location       GeoPoint   `json:"location,omitempty"`
	OriginalURL    string     `json:"originalUrl"`
	ThumbnailURL   string     `json:"thumbnailUrl,omitempty"`
	Dimensions     Dimensions `json:"dimensions,omitempty"`
	FileSize       int64      `json:"fileSize,omitempty"`
	Source         string     `json:"source,omitempty"`
	ApprovalStatus string     `json:"approvalStatus,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Uploader returns the uploading user.
func (p PendingPhoto) Uploader() Ref {
	return p.UserID
}

// Where returns a short place description such as "Baga Beach, Goa".
func (p PendingPhoto) Where() string {
	switch {
	case p.PlaceName != "" && p.City != "" && p.PlaceName != p.City:
		return p.PlaceName + ", " + p.City
	case p.PlaceName != "":
		return p.PlaceName
	default:
		return p.City
	}
}

// PhotoQuery filters GET /photos and GET /photos/my.
type PhotoQuery struct {
	PageQuery
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	PlaceID string `json:"placeId,omitempty"`
	City    string `json:"city,omitempty"`
}

// PhotoUpload describes the non-file fields of POST /photos/upload.
type PhotoUpload struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	PlaceID   string  `json:"placeId,omitempty"`
	PlaceName string  `json:"placeName,omitempty" validate:"required_without=PlaceID"`
}
