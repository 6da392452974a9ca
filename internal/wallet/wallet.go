// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package wallet

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// Query cache resources owned by the wallet.
const (
	ResourceBalance      = "walletBalance"
	ResourceTransactions = "transactions"
)

// ErrSubmissionInFlight is returned by Submit while another redemption
// from the same Wallet has not settled.
var ErrSubmissionInFlight = errors.New("wallet: a redemption is already in progress")

// Backend is the subset of the wallet API the flows need.
type Backend interface {
	Balance(ctx context.Context) (*models.WalletBalance, error)
	Transactions(ctx context.Context, q models.PageQuery) (*models.Page[models.Transaction], error)
	Redeem(ctx context.Context, amount decimal.Decimal, idempotencyKey string) (*models.RedeemResult, string, error)
}

// Wallet reads the wallet through the query cache and runs redemptions.
//
// Thread Safety: Safe for concurrent use.
type Wallet struct {
	backend  Backend
	qc       *cache.QueryCache
	min      decimal.Decimal
	pageSize int
	notify   flow.Notifier
	newKey   func() string

	mu       sync.Mutex
	inFlight bool
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithMinimum sets the local minimum redemption amount.
func WithMinimum(min decimal.Decimal) Option {
	return func(w *Wallet) { w.min = min }
}

// WithPageSize sets the ledger page size.
func WithPageSize(n int) Option {
	return func(w *Wallet) {
		if n > 0 {
			w.pageSize = n
		}
	}
}

// WithNotifier sets where success and failure messages go.
func WithNotifier(n flow.Notifier) Option {
	return func(w *Wallet) { w.notify = n }
}

// New creates a Wallet. Without options the minimum is DefaultMinimum, the
// page size models.DefaultLimit and messages go to the log.
func New(backend Backend, qc *cache.QueryCache, opts ...Option) *Wallet {
	w := &Wallet{
		backend:  backend,
		qc:       qc,
		min:      DefaultMinimum,
		pageSize: models.DefaultLimit,
		notify:   flow.LogNotifier{},
		newKey:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Minimum returns the local minimum redemption amount.
func (w *Wallet) Minimum() decimal.Decimal {
	return w.min
}

// Balance returns the wallet balance, from cache while fresh.
func (w *Wallet) Balance(ctx context.Context) (*models.WalletBalance, error) {
	b, err := cache.Fetch(ctx, w.qc, ResourceBalance, w.backend.Balance)
	if err != nil {
		return nil, err
	}
	metrics.WalletBalance.Set(b.Balance.InexactFloat64())
	return b, nil
}

// Transactions returns one ledger page, from cache while fresh.
func (w *Wallet) Transactions(ctx context.Context, q models.PageQuery) (*models.Page[models.Transaction], error) {
	q = q.Normalize()
	key := cache.Key(ResourceTransactions, q)
	return cache.Fetch(ctx, w.qc, key, func(ctx context.Context) (*models.Page[models.Transaction], error) {
		return w.backend.Transactions(ctx, q)
	})
}

// begin takes the in-flight guard.
func (w *Wallet) begin() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return false
	}
	w.inFlight = true
	return true
}

func (w *Wallet) end() {
	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()
}

// InFlight reports whether a redemption is being submitted.
func (w *Wallet) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// redeem sends one redemption and invalidates the wallet queries on
// success.
func (w *Wallet) redeem(ctx context.Context, amount decimal.Decimal) (*models.RedeemResult, error) {
	key := w.newKey()
	logging.Ctx(ctx).Debug().
		Str("amount", amount.String()).
		Str("idempotency_key", key).
		Msg("Submitting redemption")

	result, _, err := w.backend.Redeem(ctx, amount, key)
	if err != nil {
		metrics.RecordRedemption("failed")
		logging.Ctx(ctx).Warn().Err(err).Str("amount", amount.String()).Msg("Redemption failed")
		return nil, err
	}

	metrics.RecordRedemption("success")
	w.qc.Invalidate(ResourceBalance, ResourceTransactions)
	logging.Ctx(ctx).Info().
		Str("amount", amount.String()).
		Str("order_id", result.ProtomartOrderID).
		Msg("Redemption completed")
	return result, nil
}
