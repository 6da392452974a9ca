// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package flow

import "sync"

// Scope is a liveness flag for the owner of in-flight operations.
// The zero value is open.
type Scope struct {
	mu     sync.Mutex
	closed bool
}

// NewScope returns an open scope.
func NewScope() *Scope {
	return &Scope{}
}

// Alive reports whether the scope is still open. A nil scope is always open.
func (s *Scope) Alive() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Close marks the scope as gone. It is safe to call more than once.
func (s *Scope) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Apply runs fn if the scope is open and reports whether it ran. Close
// waits for a running fn, so no fn starts or is still running once Close
// has returned.
func (s *Scope) Apply(fn func()) bool {
	if s == nil {
		fn()
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	return true
}
