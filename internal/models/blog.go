// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import "time"

// Blog states.
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

// Blog is a travel blog post.
type Blog struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	AuthorID    Ref        `json:"authorId"`
	PlaceID     Ref        `json:"placeId,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CoverImage  string     `json:"coverImage,omitempty"`
	CoverImages []string   `json:"coverImages,omitempty"`
	Status      string     `json:"status"`
	Views       int        `json:"views,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BlogInput holds the form fields of POST /blogs and PUT /blogs/{id}.
// Cover images are attached separately as files.
type BlogInput struct {
	Title   string   `json:"title" validate:"required,min=3,max=200"`
	Content string   `json:"content" validate:"required"`
	PlaceID string   `json:"placeId,omitempty"`
	Tags    []string `json:"tags,omitempty" validate:"max=10,dive,min=1,max=30"`
	Status  string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}
