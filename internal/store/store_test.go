// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package store

import (
	"sync"
	"testing"

	"github.com/tomtom215/geosnap/internal/models"
)

func TestPhotosDefaultsAndSelection(t *testing.T) {
	p := NewPhotos()

	s := p.State()
	if s.Filter != FilterAll || s.View != ViewGrid || s.Selected != nil {
		t.Fatalf("initial state = %+v", s)
	}

	p.Select(models.Photo{ID: "p1", PlaceName: "Hampi"})
	s = p.State()
	if s.Selected == nil || s.Selected.ID != "p1" {
		t.Fatalf("Selected = %+v", s.Selected)
	}

	s.Selected.PlaceName = "changed"
	if p.State().Selected.PlaceName != "Hampi" {
		t.Error("State should return a copy of the selected photo")
	}

	p.ClearSelection()
	if p.State().Selected != nil {
		t.Error("ClearSelection should deselect")
	}
}

func TestPhotosFilterAndView(t *testing.T) {
	p := NewPhotos()
	var got []PhotoState
	unsubscribe := p.Subscribe(func(s PhotoState) { got = append(got, s) })

	p.SetFilter(FilterPending)
	p.SetView(ViewList)
	unsubscribe()
	p.SetFilter(FilterRejected)

	if len(got) != 2 {
		t.Fatalf("listener calls = %d, want 2", len(got))
	}
	if got[1].Filter != FilterPending || got[1].View != ViewList {
		t.Errorf("last notified state = %+v", got[1])
	}
	if p.State().Filter != FilterRejected {
		t.Error("store should still change after unsubscribe")
	}
}

func TestParseFilterAndView(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		status  string
		wantErr bool
	}{
		{"", FilterAll, "", false},
		{"all", FilterAll, "", false},
		{"pending", FilterPending, "pending", false},
		{"approved", FilterApproved, "approved", false},
		{"rejected", FilterRejected, "rejected", false},
		{"deleted", "", "", true},
	}
	for _, tt := range tests {
		f, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) err = %v", tt.in, err)
			continue
		}
		if f != tt.want || f.Status() != tt.status {
			t.Errorf("ParseFilter(%q) = %q (status %q)", tt.in, f, f.Status())
		}
	}

	if v, err := ParseViewMode("list"); err != nil || v != ViewList {
		t.Errorf("ParseViewMode(list) = %q, %v", v, err)
	}
	if v, _ := ParseViewMode(""); v != ViewGrid {
		t.Errorf("ParseViewMode(\"\") = %q", v)
	}
	if _, err := ParseViewMode("masonry"); err == nil {
		t.Error("ParseViewMode should reject unknown modes")
	}
}

func TestUIStore(t *testing.T) {
	u := NewUI()
	if s := u.State(); !s.SidebarOpen || s.Theme != ThemeLight || s.ModalOpen {
		t.Fatalf("initial state = %+v", s)
	}

	u.ToggleSidebar()
	if u.State().SidebarOpen {
		t.Error("ToggleSidebar should close an open sidebar")
	}
	u.SetSidebar(true)
	if !u.State().SidebarOpen {
		t.Error("SetSidebar(true) should open")
	}

	u.OpenModal("photo p1")
	if s := u.State(); !s.ModalOpen || s.ModalContent != "photo p1" {
		t.Errorf("after OpenModal = %+v", s)
	}
	u.CloseModal()
	if s := u.State(); s.ModalOpen || s.ModalContent != "" {
		t.Errorf("after CloseModal = %+v", s)
	}

	u.SetTheme(ThemeDark)
	if u.State().Theme != ThemeDark {
		t.Error("SetTheme should switch to dark")
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("ParseTheme should reject unknown themes")
	}
}

func TestSubscriberMayCallBack(t *testing.T) {
	u := NewUI()
	var seen UIState
	u.Subscribe(func(s UIState) { seen = u.State() })

	u.SetTheme(ThemeDark)
	if seen.Theme != ThemeDark {
		t.Errorf("subscriber read %+v", seen)
	}
}

func TestStoresConcurrentUse(t *testing.T) {
	p := NewPhotos()
	u := NewUI()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.SetView(ViewList)
				p.Select(models.Photo{ID: "p"})
				_ = p.State()
				u.ToggleSidebar()
				_ = u.State()
			}
		}(i)
	}
	wg.Wait()
}
