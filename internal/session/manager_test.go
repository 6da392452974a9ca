// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/testinfra"
)

// flakyStorage wraps MemoryStorage with injectable failures.
type flakyStorage struct {
	*MemoryStorage
	saveErr   error
	deleteErr error
}

func (s *flakyStorage) Save(ctx context.Context, key string, value []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryStorage.Save(ctx, key, value)
}

func (s *flakyStorage) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.MemoryStorage.Delete(ctx, key)
}

var asha = models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func assertLoggedOut(t *testing.T, s State) {
	t.Helper()
	if s.User != nil || s.Token != "" || s.IsAuthenticated {
		t.Errorf("state = %+v, want logged out", s)
	}
}

func TestLoginRoundTripAndReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")
	ctx := context.Background()
	token := signed(t, time.Now().Add(time.Hour))

	store := openBadger(t, dir)
	m := NewManager(store)
	if err := m.Init(ctx); err != nil {
		t.Fatal(err)
	}
	assertLoggedOut(t, m.Snapshot())

	if err := m.Login(ctx, asha, token); err != nil {
		t.Fatalf("Login: %v", err)
	}
	got := m.Snapshot()
	if got.User == nil || *got.User != asha || got.Token != token || !got.IsAuthenticated {
		t.Fatalf("after login = %+v", got)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// simulated restart
	store = openBadger(t, dir)
	defer store.Close()
	reloaded := NewManager(store)
	var events []Event
	reloaded.OnChange(func(ev Event) { events = append(events, ev) })
	if err := reloaded.Init(ctx); err != nil {
		t.Fatal(err)
	}
	again := reloaded.Snapshot()
	if again.User == nil || *again.User != asha || again.Token != token || !again.IsAuthenticated {
		t.Errorf("after reload = %+v", again)
	}
	if len(events) != 1 || events[0].Reason != ReasonRehydrated {
		t.Errorf("events = %+v", events)
	}
}

func TestPersistedFormat(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store)
	ctx := context.Background()

	if err := m.Login(ctx, asha, "opaque-token"); err != nil {
		t.Fatal(err)
	}
	raw, err := store.Load(ctx, StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		State struct {
			User            *models.User `json:"user"`
			Token           *string      `json:"token"`
			IsAuthenticated bool         `json:"isAuthenticated"`
		} `json:"state"`
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.State.Token == nil || *doc.State.Token != "opaque-token" || !doc.State.IsAuthenticated {
		t.Errorf("stored state = %s", raw)
	}
	if doc.Version == nil || *doc.Version != 0 {
		t.Errorf("stored version missing: %s", raw)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store)
	ctx := context.Background()

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout without session: %v", err)
	}

	if err := m.Login(ctx, asha, "tok"); err != nil {
		t.Fatal(err)
	}
	var ended int
	m.OnChange(func(ev Event) {
		if ev.Reason == ReasonLogout {
			ended++
		}
	})
	for range 2 {
		if err := m.Logout(ctx); err != nil {
			t.Fatalf("Logout: %v", err)
		}
		assertLoggedOut(t, m.Snapshot())
	}
	if ended != 1 {
		t.Errorf("logout events = %d, want 1", ended)
	}
	if _, err := store.Load(ctx, StorageKey); !errors.Is(err, ErrNotStored) {
		t.Errorf("stored session should be gone, Load = %v", err)
	}
}

func TestLoginStorageFailurePropagates(t *testing.T) {
	store := &flakyStorage{MemoryStorage: NewMemoryStorage()}
	m := NewManager(store)
	ctx := context.Background()

	if err := m.Login(ctx, asha, "first"); err != nil {
		t.Fatal(err)
	}

	quota := errors.New("quota exceeded")
	store.saveErr = quota
	other := models.User{ID: "u2", Name: "Ravi"}
	err := m.Login(ctx, other, "second")
	if !errors.Is(err, quota) {
		t.Fatalf("Login err = %v, want quota error", err)
	}
	got := m.Snapshot()
	if got.Token != "first" || got.User.ID != "u1" {
		t.Errorf("failed login changed memory: %+v", got)
	}

	if err := m.Login(ctx, asha, ""); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("empty token err = %v", err)
	}
}

func TestLogoutStorageFailureStillClearsMemory(t *testing.T) {
	store := &flakyStorage{MemoryStorage: NewMemoryStorage()}
	m := NewManager(store)
	ctx := context.Background()
	if err := m.Login(ctx, asha, "tok"); err != nil {
		t.Fatal(err)
	}

	store.deleteErr = errors.New("disk gone")
	if err := m.Logout(ctx); err == nil {
		t.Error("Logout should report the storage error")
	}
	assertLoggedOut(t, m.Snapshot())
	if m.Token() != "" || m.IsAuthenticated() {
		t.Error("accessors should report logged out")
	}
}

func TestInitDiscardsUnusableSessions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"corrupt", `{"state":`},
		{"authenticated without token", `{"state":{"user":{"_id":"u1"},"token":null,"isAuthenticated":true},"version":0}`},
		{"token without flag", `{"state":{"user":{"_id":"u1"},"token":"t","isAuthenticated":false},"version":0}`},
		{"token without user", `{"state":{"user":null,"token":"t","isAuthenticated":true},"version":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStorage()
			ctx := context.Background()
			if err := store.Save(ctx, StorageKey, []byte(tt.raw)); err != nil {
				t.Fatal(err)
			}
			m := NewManager(store)
			if err := m.Init(ctx); err != nil {
				t.Fatalf("Init: %v", err)
			}
			assertLoggedOut(t, m.Snapshot())
			if _, err := store.Load(ctx, StorageKey); !errors.Is(err, ErrNotStored) {
				t.Errorf("unusable session should be removed, Load = %v", err)
			}
		})
	}
}

func TestInitExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	m := NewManager(store)
	if err := m.Login(ctx, asha, signed(t, time.Now().Add(time.Minute))); err != nil {
		t.Fatal(err)
	}

	later := NewManager(store)
	later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if err := later.Init(ctx); err != nil {
		t.Fatal(err)
	}
	assertLoggedOut(t, later.Snapshot())

	// Non-JWT tokens carry no expiry and are kept.
	if err := m.Login(ctx, asha, "opaque"); err != nil {
		t.Fatal(err)
	}
	kept := NewManager(store)
	if err := kept.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if kept.Token() != "opaque" {
		t.Errorf("opaque token dropped: %+v", kept.Snapshot())
	}
}

func TestUpdateUser(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store)
	ctx := context.Background()

	if err := m.UpdateUser(ctx, asha); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("UpdateUser logged out = %v", err)
	}

	if err := m.Login(ctx, asha, "tok"); err != nil {
		t.Fatal(err)
	}
	renamed := asha
	renamed.Name = "Asha K"
	if err := m.UpdateUser(ctx, renamed); err != nil {
		t.Fatal(err)
	}
	if got := m.Snapshot(); got.User.Name != "Asha K" || got.Token != "tok" {
		t.Errorf("after update = %+v", got)
	}

	reloaded := NewManager(store)
	if err := reloaded.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Snapshot(); got.User.Name != "Asha K" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager(NewMemoryStorage())
	if err := m.Login(context.Background(), asha, "tok"); err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot()
	snap.User.Name = "mutated"
	if m.Snapshot().User.Name != "Asha" {
		t.Error("Snapshot must not expose internal state")
	}
}

func TestOnChangeUnsubscribeAndDispose(t *testing.T) {
	m := NewManager(NewMemoryStorage())
	ctx := context.Background()
	var a, b int
	unsubscribe := m.OnChange(func(Event) { a++ })
	m.OnChange(func(Event) { b++ })

	_ = m.Login(ctx, asha, "tok")
	unsubscribe()
	_ = m.Logout(ctx)
	m.Dispose()
	_ = m.Login(ctx, asha, "tok")

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestBackendRejectionEndsSession(t *testing.T) {
	fb := testinfra.NewFakeBackend(t)
	u := fb.AddUser("Asha", "asha@example.com", "secret1", models.RoleUser)
	ctx := context.Background()

	m := NewManager(NewMemoryStorage())
	c, err := client.New(fb.Config(),
		client.WithTokenSource(m),
		client.WithAuthFailureHandler(m.HandleAuthFailure),
	)
	if err != nil {
		t.Fatal(err)
	}
	a := api.New(c)

	// token signed by someone else: the backend answers 401
	if err := m.Login(ctx, u, signed(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	var redirect string
	m.OnChange(func(ev Event) {
		if ev.Reason == ReasonInvalidated {
			redirect = ev.Redirect
		}
	})

	_, err = a.Wallet.Balance(ctx)
	if !errors.Is(err, client.ErrAuth) {
		t.Fatalf("Balance err = %v, want ErrAuth", err)
	}
	assertLoggedOut(t, m.Snapshot())
	if redirect != LoginPath {
		t.Errorf("redirect = %q, want %s", redirect, LoginPath)
	}

	// a valid session keeps working
	if err := m.Login(ctx, u, fb.Login(u)); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Wallet.Balance(ctx); err != nil {
		t.Fatalf("Balance with valid token: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Error("valid session should remain")
	}
}
