// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package store

import (
	"fmt"
	"sync"
)

// Theme is the colour scheme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name. Empty means ThemeLight.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// UIState is a snapshot of the UI store.
type UIState struct {
	SidebarOpen  bool
	ModalOpen    bool
	ModalContent string
	Theme        Theme
}

// UI holds layout state shared across commands.
type UI struct {
	mu    sync.RWMutex
	state UIState
	subs  listeners[UIState]
}

// NewUI returns a store with the sidebar open and the light theme.
func NewUI() *UI {
	return &UI{state: UIState{SidebarOpen: true, Theme: ThemeLight}}
}

// State returns the current state.
func (u *UI) State() UIState {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

// ToggleSidebar flips the sidebar.
func (u *UI) ToggleSidebar() {
	u.update(func(s *UIState) { s.SidebarOpen = !s.SidebarOpen })
}

// SetSidebar opens or closes the sidebar.
func (u *UI) SetSidebar(open bool) {
	u.update(func(s *UIState) { s.SidebarOpen = open })
}

// OpenModal shows content in the modal.
func (u *UI) OpenModal(content string) {
	u.update(func(s *UIState) {
		s.ModalOpen = true
		s.ModalContent = content
	})
}

// CloseModal hides the modal and drops its content.
func (u *UI) CloseModal() {
	u.update(func(s *UIState) {
		s.ModalOpen = false
		s.ModalContent = ""
	})
}

// SetTheme changes the colour scheme.
func (u *UI) SetTheme(t Theme) {
	u.update(func(s *UIState) { s.Theme = t })
}

// Subscribe calls fn with the new state after every change.
func (u *UI) Subscribe(fn func(UIState)) (unsubscribe func()) {
	return u.subs.add(fn)
}

func (u *UI) update(fn func(*UIState)) {
	u.mu.Lock()
	fn(&u.state)
	s := u.state
	u.mu.Unlock()
	u.subs.notify(s)
}
