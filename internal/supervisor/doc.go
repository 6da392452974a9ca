// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package supervisor runs the long-lived parts of `geosnap watch` under suture v4.

The tree has two layers so a failing metrics listener cannot stop the pollers
and a poller stuck in backoff cannot take the listener down:

	RootSupervisor ("geosnap")
	├── PollerSupervisor ("poller-layer")
	│   ├── wallet             (services.BalanceWatcher)
	│   └── moderation-queue   (services.QueueWatcher, admins only)
	└── EndpointSupervisor ("endpoint-layer")
	    └── metrics-server     (services.MetricsService, if metrics.addr is set)

Supervisor events (start, failure, backoff) are logged through sutureslog,
which writes into the zerolog logger via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddPoller(services.NewPollerService("wallet", interval, watcher.Poll))
	tree.AddEndpoint(services.NewMetricsService(":9464", prometheus.DefaultGatherer))
	return tree.Serve(ctx)

A poll that fails is logged and counted in geosnap_poll_runs_total; the
poller keeps its schedule. Only a panic or an explicit error from Serve
makes suture restart a service.
*/
package supervisor
