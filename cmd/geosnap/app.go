// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/geosnap/internal/account"
	"github.com/tomtom215/geosnap/internal/admin"
	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/config"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/gallery"
	"github.com/tomtom215/geosnap/internal/geocode"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/session"
	"github.com/tomtom215/geosnap/internal/store"
	"github.com/tomtom215/geosnap/internal/wallet"
)

// App holds the wired client for one invocation.
type App struct {
	cfg    *config.Config
	out    io.Writer
	in     *bufio.Reader
	notify flow.Notifier

	storage  session.Storage
	session  *session.Manager
	qc       *cache.QueryCache
	api      *api.API
	account  *account.Account
	wallet   *wallet.Wallet
	admin    *admin.Dashboard
	gallery  *gallery.Gallery
	album    *gallery.Album
	photos   *store.Photos
	geocoder *geocode.Nominatim // nil when geocoder.url is unset
}

// newApp opens the session storage, restores the session and wires every
// flow to one HTTP client and one query cache.
func newApp(ctx context.Context, cfg *config.Config, e env) (*App, error) {
	min, err := cfg.MinRedemption()
	if err != nil {
		return nil, err
	}

	storage, err := e.openStorage(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}
	mgr := session.NewManager(storage)
	if err := mgr.Init(ctx); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	c, err := client.New(cfg,
		client.WithTokenSource(mgr),
		client.WithAuthFailureHandler(mgr.HandleAuthFailure),
	)
	if err != nil {
		mgr.Dispose()
		_ = storage.Close()
		return nil, err
	}

	app := &App{
		cfg:     cfg,
		out:     e.stdout,
		in:      bufio.NewReader(e.stdin),
		notify:  flow.NewWriterNotifier(e.stdout),
		storage: storage,
		session: mgr,
		qc:      cache.NewQueryCache(cfg.Cache.StaleTime),
		api:     api.New(c),
		photos:  store.NewPhotos(),
	}

	galleryOpts := []gallery.Option{gallery.WithNotifier(app.notify)}
	if strings.TrimSpace(cfg.Geocoder.URL) != "" {
		geo, err := geocode.New(cfg.Geocoder)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.geocoder = geo
		galleryOpts = append(galleryOpts, gallery.WithGeocoder(geo))
	}

	app.account = account.New(app.api.Auth, app.api.Users, mgr, app.qc, account.WithNotifier(app.notify))
	app.wallet = wallet.New(app.api.Wallet, app.qc,
		wallet.WithMinimum(min),
		wallet.WithPageSize(cfg.Wallet.PageSize),
		wallet.WithNotifier(app.notify),
	)
	app.admin = admin.New(app.api.Admin, app.qc,
		admin.WithPageSize(cfg.Admin.PageSize),
		admin.WithNotifier(app.notify),
	)
	app.gallery = gallery.New(app.api, app.qc, galleryOpts...)
	app.album = gallery.NewAlbum(app.api.GooglePhotos, app.qc, app.notify)

	logging.Debug().
		Str("api", c.BaseURL()).
		Bool("authenticated", mgr.IsAuthenticated()).
		Msg("Client ready")
	return app, nil
}

// Close releases the session storage.
func (a *App) Close() {
	if a.account != nil {
		a.account.Close()
	}
	a.session.Dispose()
	if err := a.storage.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing session storage")
	}
}

// prompt reads one line from stdin after printing label.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
