// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/validation"
)

// BlogsService covers /blogs.
type BlogsService struct {
	d Doer
}

// List returns published blogs.
func (s *BlogsService) List(ctx context.Context, q models.PageQuery) (*models.Page[models.Blog], error) {
	return getPage[models.Blog](ctx, s.d, &client.Request{Method: http.MethodGet, Path: "/blogs", Query: client.PageParams(q)})
}

// Get returns one blog.
func (s *BlogsService) Get(ctx context.Context, id string) (*models.Blog, error) {
	if err := requireID("blogId", id); err != nil {
		return nil, err
	}
	return getOne[models.Blog](ctx, s.d, "/blogs/"+id, "/blogs/{id}")
}

// ByPlace returns the blogs written about a place.
func (s *BlogsService) ByPlace(ctx context.Context, placeID string, q models.PageQuery) (*models.Page[models.Blog], error) {
	if err := requireID("placeId", placeID); err != nil {
		return nil, err
	}
	return getPage[models.Blog](ctx, s.d, &client.Request{
		Method: http.MethodGet,
		Path:   "/blogs/place/" + placeID,
		Route:  "/blogs/place/{placeId}",
		Query:  client.PageParams(q),
	})
}

// Mine returns the current user's blogs, drafts included.
func (s *BlogsService) Mine(ctx context.Context, q models.PageQuery) (*models.Page[models.Blog], error) {
	return getPage[models.Blog](ctx, s.d, &client.Request{Method: http.MethodGet, Path: "/blogs/my/blogs", Query: client.PageParams(q)})
}

// Create writes a new blog with optional cover images.
func (s *BlogsService) Create(ctx context.Context, in models.BlogInput, covers []Upload) (*models.Blog, error) {
	form, err := blogForm(in, covers)
	if err != nil {
		return nil, err
	}
	var blog models.Blog
	if _, err := s.d.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/blogs", Form: form}, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// Update replaces a blog's fields and, when given, its cover images.
func (s *BlogsService) Update(ctx context.Context, id string, in models.BlogInput, covers []Upload) (*models.Blog, error) {
	if err := requireID("blogId", id); err != nil {
		return nil, err
	}
	form, err := blogForm(in, covers)
	if err != nil {
		return nil, err
	}
	var blog models.Blog
	if _, err := s.d.Do(ctx, &client.Request{Method: http.MethodPut, Path: "/blogs/" + id, Route: "/blogs/{id}", Form: form}, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// Delete removes a blog.
func (s *BlogsService) Delete(ctx context.Context, id string) error {
	if err := requireID("blogId", id); err != nil {
		return err
	}
	_, err := s.d.Do(ctx, &client.Request{Method: http.MethodDelete, Path: "/blogs/" + id, Route: "/blogs/{id}"}, nil)
	return err
}

// Publish moves a draft to published.
func (s *BlogsService) Publish(ctx context.Context, id string) (*models.Blog, error) {
	if err := requireID("blogId", id); err != nil {
		return nil, err
	}
	return send[models.Blog](ctx, s.d, http.MethodPost, "/blogs/"+id+"/publish", "/blogs/{id}/publish", nil)
}

func blogForm(in models.BlogInput, covers []Upload) (*client.Form, error) {
	in.Title = validation.SanitizeInput(in.Title)
	if err := check(&in); err != nil {
		return nil, err
	}
	if err := validation.ValidateBlogContent(in.Content); err != nil {
		return nil, client.NewValidationError("content", "min", err.Error())
	}
	if err := checkImages("coverImages", covers); err != nil {
		return nil, err
	}

	form := client.NewForm().
		Field("title", in.Title).
		Field("content", in.Content).
		Field("placeId", in.PlaceID).
		Field("status", in.Status).
		Field("tags", strings.Join(in.Tags, ","))
	addFiles(form, "coverImages", covers)
	return form, nil
}
