// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package store

import (
	"fmt"
	"sync"

	"github.com/tomtom215/geosnap/internal/models"
)

// Filter restricts the photo browser by approval status.
type Filter string

// Photo filters.
const (
	FilterAll      Filter = "all"
	FilterPending  Filter = models.ApprovalPending
	FilterApproved Filter = models.ApprovalApproved
	FilterRejected Filter = models.ApprovalRejected
)

// ParseFilter validates a filter name. Empty means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterApproved, FilterRejected:
		return f, nil
	default:
		return "", fmt.Errorf("unknown photo filter %q (want all, pending, approved or rejected)", s)
	}
}

// Status returns the approval status to query for, "" for FilterAll.
func (f Filter) Status() string {
	if f == FilterAll {
		return ""
	}
	return string(f)
}

// ViewMode is how the photo browser lays out results.
type ViewMode string

// View modes.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode validates a view mode name. Empty means ViewGrid.
func ParseViewMode(s string) (ViewMode, error) {
	switch v := ViewMode(s); v {
	case "":
		return ViewGrid, nil
	case ViewGrid, ViewList:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view mode %q (want grid or list)", s)
	}
}

// PhotoState is a snapshot of the photo browser.
type PhotoState struct {
	Selected *models.Photo
	Filter   Filter
	View     ViewMode
}

// Photos is the photo browser store.
type Photos struct {
	mu    sync.RWMutex
	state PhotoState
	subs  listeners[PhotoState]
}

// NewPhotos returns a store showing all photos in a grid.
func NewPhotos() *Photos {
	return &Photos{state: PhotoState{Filter: FilterAll, View: ViewGrid}}
}

// State returns a copy of the current state.
func (p *Photos) State() PhotoState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.state
	if s.Selected != nil {
		photo := *s.Selected
		s.Selected = &photo
	}
	return s
}

// Select marks photo as the selected one.
func (p *Photos) Select(photo models.Photo) {
	p.update(func(s *PhotoState) { s.Selected = &photo })
}

// ClearSelection deselects the current photo.
func (p *Photos) ClearSelection() {
	p.update(func(s *PhotoState) { s.Selected = nil })
}

// SetFilter changes the approval-status filter.
func (p *Photos) SetFilter(f Filter) {
	p.update(func(s *PhotoState) { s.Filter = f })
}

// SetView changes the layout.
func (p *Photos) SetView(v ViewMode) {
	p.update(func(s *PhotoState) { s.View = v })
}

// Subscribe calls fn with the new state after every change.
func (p *Photos) Subscribe(fn func(PhotoState)) (unsubscribe func()) {
	return p.subs.add(fn)
}

func (p *Photos) update(fn func(*PhotoState)) {
	p.mu.Lock()
	fn(&p.state)
	p.mu.Unlock()
	p.subs.notify(p.State())
}
