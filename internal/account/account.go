// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package account

import (
	"context"
	"errors"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/session"
)

// ResourceUser is the cached current user.
const ResourceUser = "user"

// Account messages.
const (
	MsgLoggedIn          = "Login successful!"
	MsgLoginFailed       = "Login failed"
	MsgRegistered        = "Registration successful!"
	MsgRegisterFailed    = "Registration failed"
	MsgLoggedOut         = "Logged out successfully"
	MsgResetSent         = "Password reset link sent to your email!"
	MsgResetFailed       = "Failed to send reset link"
	MsgProfileUpdated    = "Profile updated successfully"
	MsgProfileFailed     = "Failed to update profile"
	MsgPhotoUpdated      = "Profile photo updated"
	MsgPhotoRemoved      = "Profile photo removed"
	MsgProfilePhotoError = "Failed to update profile photo"
)

// AuthBackend is the /auth API.
type AuthBackend interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthPayload, error)
	Me(ctx context.Context) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
}

// ProfileBackend is the /users profile API.
type ProfileBackend interface {
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	UploadProfilePhoto(ctx context.Context, photo api.Upload) (*models.User, error)
	DeleteProfilePhoto(ctx context.Context) error
}

// Account ties the auth API to the session.
//
// Thread Safety: Safe for concurrent use.
type Account struct {
	auth    AuthBackend
	profile ProfileBackend
	mgr     *session.Manager
	qc      *cache.QueryCache
	notify  flow.Notifier
	unsub   func()
}

// Option configures an Account.
type Option func(*Account)

// WithNotifier sets where success and failure messages go.
func WithNotifier(n flow.Notifier) Option {
	return func(a *Account) { a.notify = n }
}

// New creates an Account and subscribes it to session changes. Call Close
// to unsubscribe.
func New(auth AuthBackend, profile ProfileBackend, mgr *session.Manager, qc *cache.QueryCache, opts ...Option) *Account {
	a := &Account{
		auth:    auth,
		profile: profile,
		mgr:     mgr,
		qc:      qc,
		notify:  flow.LogNotifier{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.unsub = mgr.OnChange(a.onSessionChange)
	return a
}

func (a *Account) onSessionChange(ev session.Event) {
	switch ev.Reason {
	case session.ReasonLogin, session.ReasonLogout, session.ReasonInvalidated:
		a.qc.Clear()
	}
}

// Close stops following session changes.
func (a *Account) Close() {
	a.unsub()
}

// Session returns the current session.
func (a *Account) Session() session.State {
	return a.mgr.Snapshot()
}

// Login signs in and stores the session.
func (a *Account) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload, err := a.auth.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err == nil {
		err = a.mgr.Login(ctx, payload.User, payload.Token)
	}
	if err != nil {
		a.notify.Error(client.UserMessage(err, MsgLoginFailed))
		return nil, err
	}
	a.notify.Success(MsgLoggedIn)
	return &payload.User, nil
}

// Register creates an account and signs in as it.
func (a *Account) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	payload, err := a.auth.Register(ctx, req)
	if err == nil {
		err = a.mgr.Login(ctx, payload.User, payload.Token)
	}
	if err != nil {
		a.notify.Error(client.UserMessage(err, MsgRegisterFailed))
		return nil, err
	}
	a.notify.Success(MsgRegistered)
	return &payload.User, nil
}

// Logout ends the session. The in-memory session and cache are cleared
// even when removing the stored copy fails; that error is returned.
func (a *Account) Logout(ctx context.Context) error {
	err := a.mgr.Logout(ctx)
	a.qc.Clear()
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Stored session could not be removed")
	}
	a.notify.Success(MsgLoggedOut)
	return err
}

// Me returns the current user from the backend and refreshes the stored
// copy when it changed.
func (a *Account) Me(ctx context.Context) (*models.User, error) {
	if !a.mgr.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}
	user, err := cache.Fetch(ctx, a.qc, ResourceUser, a.auth.Me)
	if err != nil {
		return nil, err
	}
	if cur := a.mgr.Snapshot().User; cur == nil || *cur != *user {
		if err := a.mgr.UpdateUser(ctx, *user); err != nil && !errors.Is(err, session.ErrNotAuthenticated) {
			return nil, err
		}
	}
	return user, nil
}

// ForgotPassword asks the backend to mail a reset link.
func (a *Account) ForgotPassword(ctx context.Context, email string) error {
	if _, err := a.auth.ForgotPassword(ctx, email); err != nil {
		a.notify.Error(client.UserMessage(err, MsgResetFailed))
		return err
	}
	a.notify.Success(MsgResetSent)
	return nil
}

// UpdateProfile changes name, phone or bio.
func (a *Account) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	user, err := a.profile.UpdateProfile(ctx, upd)
	return a.userChanged(ctx, user, err, MsgProfileUpdated, MsgProfileFailed)
}

// SetProfilePhoto replaces the profile photo.
func (a *Account) SetProfilePhoto(ctx context.Context, photo api.Upload) (*models.User, error) {
	user, err := a.profile.UploadProfilePhoto(ctx, photo)
	return a.userChanged(ctx, user, err, MsgPhotoUpdated, MsgProfilePhotoError)
}

// RemoveProfilePhoto deletes the profile photo.
func (a *Account) RemoveProfilePhoto(ctx context.Context) error {
	if err := a.profile.DeleteProfilePhoto(ctx); err != nil {
		a.notify.Error(client.UserMessage(err, MsgProfilePhotoError))
		return err
	}
	a.qc.Invalidate(ResourceUser)
	a.notify.Success(MsgPhotoRemoved)
	return nil
}

func (a *Account) userChanged(ctx context.Context, user *models.User, err error, okMsg, failMsg string) (*models.User, error) {
	if err == nil {
		err = a.mgr.UpdateUser(ctx, *user)
	}
	if err != nil {
		a.notify.Error(client.UserMessage(err, failMsg))
		return nil, err
	}
	a.qc.Invalidate(ResourceUser)
	a.notify.Success(okMsg)
	return user, nil
}
