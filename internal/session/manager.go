// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// StorageKey is the durable storage key holding the session.
const StorageKey = "auth-storage"

// storageVersion is written alongside the state for future migrations.
const storageVersion = 0

var (
	// ErrEmptyToken is returned by Login when the token is blank.
	ErrEmptyToken = errors.New("session: empty token")

	// ErrNotAuthenticated is returned by UpdateUser without a session.
	ErrNotAuthenticated = errors.New("session: not authenticated")
)

// State is the session triple. IsAuthenticated is true exactly when Token
// is non-empty.
type State struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Reason says why the session changed.
type Reason string

// Session change reasons.
const (
	ReasonRehydrated  Reason = "rehydrated"
	ReasonLogin       Reason = "login"
	ReasonLogout      Reason = "logout"
	ReasonInvalidated Reason = "invalidated"
	ReasonUserUpdated Reason = "user_updated"
)

// Event is delivered to listeners after every change.
type Event struct {
	Reason Reason
	State  State
	// Redirect is set when the user should be sent somewhere, e.g. to the
	// login page after the backend rejected the token.
	Redirect string
}

// persisted is the stored document.
type persisted struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

type persistedState struct {
	User            *models.User `json:"user"`
	Token           *string      `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Manager owns the session.
//
// Thread Safety: Safe for concurrent use. Mutations are serialized so the
// stored and in-memory copies always agree; the last writer wins.
type Manager struct {
	storage Storage
	now     func() time.Time

	writeMu sync.Mutex // serializes storage write + memory update

	mu        sync.RWMutex
	state     State
	listeners map[int]func(Event)
	nextID    int
}

// NewManager creates a logged-out manager over storage. Call Init to
// rehydrate a stored session.
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage:   storage,
		now:       time.Now,
		listeners: make(map[int]func(Event)),
	}
}

// Init rehydrates the session from storage. Unusable stored data is
// removed and the session starts logged out; only a storage read failure
// is returned.
func (m *Manager) Init(ctx context.Context) error {
	state, err := m.rehydrate(ctx)
	if err != nil || !state.IsAuthenticated {
		return err
	}
	metrics.RecordSessionEvent(string(ReasonRehydrated))
	logging.Debug().Str("user_id", state.User.ID).Msg("Session rehydrated")
	m.emit(Event{Reason: ReasonRehydrated, State: state.clone()})
	return nil
}

func (m *Manager) rehydrate(ctx context.Context) (State, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	data, err := m.storage.Load(ctx, StorageKey)
	if errors.Is(err, ErrNotStored) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}

	state, reason := decodeState(data, m.now())
	if reason != "" {
		logging.Warn().Str("reason", reason).Msg("Discarding stored session")
		metrics.RecordSessionEvent("discarded")
		if err := m.storage.Delete(ctx, StorageKey); err != nil {
			logging.Warn().Err(err).Msg("Failed to remove discarded session")
		}
		return State{}, nil
	}
	m.set(state)
	return state, nil
}

// decodeState parses a stored document. A non-empty reason means the
// document must be discarded.
func decodeState(data []byte, now time.Time) (State, string) {
	var doc persisted
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, "corrupt"
	}
	ps := doc.State
	hasToken := ps.Token != nil && *ps.Token != ""
	if ps.IsAuthenticated != hasToken {
		return State{}, "inconsistent"
	}
	if !hasToken {
		return State{}, ""
	}
	if ps.User == nil {
		return State{}, "missing user"
	}
	if tokenExpired(*ps.Token, now) {
		return State{}, "expired"
	}
	return State{User: ps.User, Token: *ps.Token, IsAuthenticated: true}, ""
}

// tokenExpired reports whether token is a JWT whose exp has passed. The
// signature is not checked; tokens that are not JWTs never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}

func encodeState(s State) ([]byte, error) {
	doc := persisted{Version: storageVersion}
	if s.IsAuthenticated {
		token := s.Token
		doc.State = persistedState{User: s.User, Token: &token, IsAuthenticated: true}
	}
	return json.Marshal(doc)
}

// Login stores {user, token} durably and then marks the session
// authenticated. A storage failure is returned and leaves the current
// session untouched.
func (m *Manager) Login(ctx context.Context, user models.User, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	next := State{User: &user, Token: token, IsAuthenticated: true}

	m.writeMu.Lock()
	if err := m.persist(ctx, next); err != nil {
		m.writeMu.Unlock()
		metrics.RecordSessionEvent("persist_failed")
		return err
	}
	m.set(next)
	m.writeMu.Unlock()

	metrics.RecordSessionEvent(string(ReasonLogin))
	logging.Ctx(ctx).Info().
		Str("user_id", user.ID).
		Str("role", user.Role).
		Str("token", logging.MaskToken(token)).
		Msg("Session started")
	m.emit(Event{Reason: ReasonLogin, State: next.clone()})
	return nil
}

// Logout removes the stored session and resets to logged out. It is safe
// to call without a session. Memory is cleared even when the storage
// delete fails; that error is returned.
func (m *Manager) Logout(ctx context.Context) error {
	return m.end(ctx, ReasonLogout, "")
}

// HandleAuthFailure ends the session after the backend rejected its token.
// It has the client.AuthFailureFunc signature.
func (m *Manager) HandleAuthFailure(ctx context.Context, statusCode int, message string) {
	logging.Ctx(ctx).Warn().
		Int("status", statusCode).
		Str("message", message).
		Msg("Session invalidated by backend")
	if err := m.end(ctx, ReasonInvalidated, LoginPath); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to clear stored session")
	}
}

func (m *Manager) end(ctx context.Context, reason Reason, redirect string) error {
	m.writeMu.Lock()
	var storeErr error
	if err := m.storage.Delete(ctx, StorageKey); err != nil {
		storeErr = fmt.Errorf("delete stored session: %w", err)
	}
	m.mu.Lock()
	was := m.state.IsAuthenticated
	m.state = State{}
	m.mu.Unlock()
	m.writeMu.Unlock()

	if was {
		metrics.RecordSessionEvent(string(reason))
		logging.Ctx(ctx).Info().Str("reason", string(reason)).Msg("Session ended")
		m.emit(Event{Reason: reason, State: State{}, Redirect: redirect})
	}
	return storeErr
}

// UpdateUser replaces the session user, keeping the token.
func (m *Manager) UpdateUser(ctx context.Context, user models.User) error {
	next, err := m.replaceUser(ctx, user)
	if err != nil {
		return err
	}
	m.emit(Event{Reason: ReasonUserUpdated, State: next.clone()})
	return nil
}

func (m *Manager) replaceUser(ctx context.Context, user models.User) (State, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	cur := m.Snapshot()
	if !cur.IsAuthenticated {
		return State{}, ErrNotAuthenticated
	}
	next := State{User: &user, Token: cur.Token, IsAuthenticated: true}
	if err := m.persist(ctx, next); err != nil {
		return State{}, err
	}
	m.set(next)
	return next, nil
}

func (m *Manager) persist(ctx context.Context, s State) error {
	data, err := encodeState(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.storage.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (m *Manager) set(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// Token returns the bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsAuthenticated
}

// OnChange registers fn for session events and returns a function that
// removes it. fn runs on the goroutine that made the change, after the
// change is complete, so it may call back into the Manager.
func (m *Manager) OnChange(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) emit(ev Event) {
	m.mu.RLock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Dispose drops every listener. The storage is owned by the caller.
func (m *Manager) Dispose() {
	m.mu.Lock()
	m.listeners = make(map[int]func(Event))
	m.mu.Unlock()
}
