// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"github.com/goccy/go-json"
)

// Envelope is the wrapper every backend response uses.
//
// Example success:
//
//	{"success": true, "data": {"balance": 125.5}}
//
// Example paginated list:
//
//	{"success": true, "data": [...], "pagination": {"currentPage": 1, "totalPages": 3, "total": 52, "limit": 20}}
//
// Example failure:
//
//	{"success": false, "message": "Insufficient balance"}
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Code       string          `json:"code,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination describes one page of a server-side paginated list.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}

// HasMore reports whether a page after CurrentPage exists.
func (p *Pagination) HasMore() bool {
	return p != nil && p.CurrentPage < p.TotalPages
}

// Page is a decoded list page.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// PageQuery holds the page/limit parameters shared by list endpoints.
type PageQuery struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=100"`
}

// Default pagination used when a caller leaves the fields zero.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Normalize fills zero fields with the defaults.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}
