// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/geosnap/internal/logging"
)

// MetricsPath is where MetricsService exposes the gathered metrics.
const MetricsPath = "/metrics"

// MetricsService serves a Prometheus scrape endpoint for `geosnap watch`.
// Each Serve call binds addr afresh, so suture can restart it after a
// listener failure.
type MetricsService struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration

	mu        sync.Mutex
	bound     string
	ready     chan struct{}
	readyOnce sync.Once
}

// NewMetricsService exposes reg on addr. A nil reg means the default
// registry, where every geosnap metric is registered.
func NewMetricsService(addr string, reg prometheus.Gatherer) *MetricsService {
	if reg == nil {
		reg = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &MetricsService{
		addr:            addr,
		handler:         mux,
		shutdownTimeout: 5 * time.Second,
		ready:           make(chan struct{}),
	}
}

// Ready is closed once the first listener is bound.
func (m *MetricsService) Ready() <-chan struct{} {
	return m.ready
}

// Addr returns the bound listen address, or "" before the first bind.
func (m *MetricsService) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bound
}

// Serve implements suture.Service. It returns ctx.Err() after a graceful
// shutdown and an error if the listener cannot be bound or fails.
func (m *MetricsService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.addr)
	if err != nil {
		return fmt.Errorf("metrics listener on %s: %w", m.addr, err)
	}

	m.mu.Lock()
	m.bound = ln.Addr().String()
	m.mu.Unlock()
	m.readyOnce.Do(func() { close(m.ready) })
	logging.Info().Str("addr", ln.Addr().String()).Msg("Serving metrics")

	srv := &http.Server{Handler: m.handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer for suture's event log.
func (m *MetricsService) String() string {
	return "metrics-server"
}
