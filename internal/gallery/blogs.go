// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package gallery

import (
	"context"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/models"
)

// Blog messages.
const (
	MsgBlogCreated       = "Blog created successfully!"
	MsgBlogCreateFailed  = "Failed to create blog"
	MsgBlogUpdated       = "Blog updated successfully!"
	MsgBlogUpdateFailed  = "Failed to update blog"
	MsgBlogDeleted       = "Blog deleted successfully"
	MsgBlogDeleteFailed  = "Failed to delete blog"
	MsgBlogPublished     = "Blog published successfully!"
	MsgBlogPublishFailed = "Failed to publish blog"
)

// Blogs returns a page of published blogs.
func (g *Gallery) Blogs(ctx context.Context, q models.PageQuery) (*models.Page[models.Blog], error) {
	q = q.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourceBlogs, q), func(ctx context.Context) (*models.Page[models.Blog], error) {
		return g.blogs.List(ctx, q)
	})
}

// BlogsAt returns a page of the blogs written about a place.
func (g *Gallery) BlogsAt(ctx context.Context, placeID string, q models.PageQuery) (*models.Page[models.Blog], error) {
	q = q.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourceBlogs, "place", placeID, q), func(ctx context.Context) (*models.Page[models.Blog], error) {
		return g.blogs.ByPlace(ctx, placeID, q)
	})
}

// MyBlogs returns a page of the current user's blogs, drafts included.
func (g *Gallery) MyBlogs(ctx context.Context, q models.PageQuery) (*models.Page[models.Blog], error) {
	q = q.Normalize()
	return cache.Fetch(ctx, g.qc, cache.Key(ResourceMyBlogs, q), func(ctx context.Context) (*models.Page[models.Blog], error) {
		return g.blogs.Mine(ctx, q)
	})
}

// Blog returns one blog.
func (g *Gallery) Blog(ctx context.Context, id string) (*models.Blog, error) {
	return cache.Fetch(ctx, g.qc, cache.Key(ResourceBlog, id), func(ctx context.Context) (*models.Blog, error) {
		return g.blogs.Get(ctx, id)
	})
}

// CreateBlog writes a new blog.
func (g *Gallery) CreateBlog(ctx context.Context, in models.BlogInput, covers []api.Upload) (*models.Blog, error) {
	b, err := g.blogs.Create(ctx, in, covers)
	if err := g.mutated(err, MsgBlogCreated, MsgBlogCreateFailed, ResourceBlogs, ResourceMyBlogs); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBlog edits one of the current user's blogs.
func (g *Gallery) UpdateBlog(ctx context.Context, id string, in models.BlogInput, covers []api.Upload) (*models.Blog, error) {
	b, err := g.blogs.Update(ctx, id, in, covers)
	if err := g.mutated(err, MsgBlogUpdated, MsgBlogUpdateFailed, ResourceBlogs, ResourceMyBlogs, ResourceBlog); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBlog removes one of the current user's blogs.
func (g *Gallery) DeleteBlog(ctx context.Context, id string) error {
	err := g.blogs.Delete(ctx, id)
	return g.mutated(err, MsgBlogDeleted, MsgBlogDeleteFailed, ResourceBlogs, ResourceMyBlogs, ResourceBlog)
}

// PublishBlog makes a draft public.
func (g *Gallery) PublishBlog(ctx context.Context, id string) (*models.Blog, error) {
	b, err := g.blogs.Publish(ctx, id)
	if err := g.mutated(err, MsgBlogPublished, MsgBlogPublishFailed, ResourceBlogs, ResourceMyBlogs, ResourceBlog); err != nil {
		return nil, err
	}
	return b, nil
}
