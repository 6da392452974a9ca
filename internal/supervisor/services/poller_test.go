// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/geosnap/internal/metrics"
)

func TestNewPollerService_DefaultInterval(t *testing.T) {
	p := NewPollerService("x", 0, func(context.Context) error { return nil })
	if p.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", p.interval)
	}
	if p.String() != "x" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestPollerService_PollsImmediatelyThenOnInterval(t *testing.T) {
	var calls atomic.Int32
	p := NewPollerService("test-interval", 20*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	err := p.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve = %v, want context.DeadlineExceeded", err)
	}
	if n := calls.Load(); n < 3 {
		t.Errorf("polled %d times, want at least 3", n)
	}
	if p.Runs() != int64(calls.Load()) {
		t.Errorf("Runs() = %d, calls = %d", p.Runs(), calls.Load())
	}
}

func TestPollerService_FailedPollKeepsRunning(t *testing.T) {
	const name = "test-failing"
	errBefore := testutil.ToFloat64(metrics.PollRuns.WithLabelValues(name, "error"))
	okBefore := testutil.ToFloat64(metrics.PollRuns.WithLabelValues(name, "success"))

	var calls atomic.Int32
	p := NewPollerService(name, 10*time.Millisecond, func(context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("backend unavailable")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case err := <-done:
			t.Fatalf("Serve returned early: %v", err)
		case <-deadline:
			t.Fatal("poller stopped polling after a failure")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}

	if got := testutil.ToFloat64(metrics.PollRuns.WithLabelValues(name, "error")) - errBefore; got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.PollRuns.WithLabelValues(name, "success")) - okBefore; got < 2 {
		t.Errorf("success runs = %v, want at least 2", got)
	}
}

func TestPollerService_CanceledPollIsNotCounted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPollerService("test-cancel", time.Hour, func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	})

	if err := p.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
	if p.Runs() != 0 {
		t.Errorf("Runs() = %d, want 0 for a poll cut short by shutdown", p.Runs())
	}
}
