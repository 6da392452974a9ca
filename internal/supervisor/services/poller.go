// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
)

// PollFunc is one poll iteration.
type PollFunc func(ctx context.Context) error

// PollerService calls a PollFunc once at start and then every interval.
//
// A failed poll is logged and counted; it does not end Serve. Serve returns
// ctx.Err() when the context ends.
type PollerService struct {
	name     string
	interval time.Duration
	poll     PollFunc
	runs     atomic.Int64
}

// NewPollerService creates a poller. A non-positive interval means one minute.
func NewPollerService(name string, interval time.Duration, poll PollFunc) *PollerService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PollerService{name: name, interval: interval, poll: poll}
}

// Serve implements suture.Service.
func (p *PollerService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(p.name)
	logger.Debug().Dur("interval", p.interval).Msg("Poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.runOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *PollerService) runOnce(ctx context.Context) {
	err := p.poll(ctx)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return
	}
	p.runs.Add(1)
	metrics.RecordPollRun(p.name, err)
	if err != nil {
		logger := logging.WithComponent(p.name)
		logger.Warn().Err(err).Msg("Poll failed")
	}
}

// Runs returns how many polls completed, failed ones included.
func (p *PollerService) Runs() int64 {
	return p.runs.Load()
}

// String implements fmt.Stringer for suture's event log.
func (p *PollerService) String() string {
	return p.name
}
