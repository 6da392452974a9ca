// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juju/gnuflag"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/session"
	"github.com/tomtom215/geosnap/internal/supervisor"
	"github.com/tomtom215/geosnap/internal/supervisor/services"
)

type watchCommand struct {
	interval    time.Duration
	duration    time.Duration
	metricsAddr string
}

func (c *watchCommand) Info() *Info {
	return &Info{
		Name:    "watch",
		Purpose: "poll the wallet (and the moderation queue for admins) and report changes",
		Guard:   session.RequireAuth,
	}
}

func (c *watchCommand) SetFlags(f *gnuflag.FlagSet) {
	f.DurationVar(&c.interval, "interval", 0, "poll interval (default watch.interval)")
	f.DurationVar(&c.duration, "for", 0, "stop after this long (default: until interrupted)")
	f.StringVar(&c.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (default metrics.addr)")
}

func (c *watchCommand) Init(args []string) error {
	if c.interval < 0 || c.duration < 0 {
		return usageErrorf("durations must not be negative")
	}
	return checkEmpty(args)
}

func (c *watchCommand) Run(ctx context.Context, app *App) error {
	interval := c.interval
	if interval == 0 {
		interval = app.cfg.Watch.Interval
	}
	addr := c.metricsAddr
	if addr == "" {
		addr = app.cfg.Metrics.Addr
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureBackoff:  interval,
		ShutdownTimeout: 10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	balance := services.NewBalanceWatcher(app.wallet, app.qc, app.notify)
	tree.AddPoller(services.NewPollerService("wallet", interval, balance.Poll))

	if app.session.Snapshot().User.IsAdmin() {
		queue := services.NewQueueWatcher(app.admin, app.qc, app.notify)
		tree.AddPoller(services.NewPollerService("moderation-queue", interval, queue.Poll))
	}

	if addr != "" {
		tree.AddEndpoint(services.NewMetricsService(addr, prometheus.DefaultGatherer))
	}

	if c.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.duration)
		defer cancel()
	}

	fmt.Fprintf(app.out, "Watching every %s (Ctrl-C to stop)\n", interval)
	err = tree.Serve(ctx)
	if ctx.Err() != nil && (err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil
	}
	return err
}
