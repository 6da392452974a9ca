// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/admin"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/wallet"
)

// Invalidator drops cached resources so the next read refetches.
type Invalidator interface {
	Invalidate(resources ...string) int
}

// BalanceSource reads the wallet through the query cache.
type BalanceSource interface {
	Balance(ctx context.Context) (*models.WalletBalance, error)
	Transactions(ctx context.Context, q models.PageQuery) (*models.Page[models.Transaction], error)
}

// StatsSource reads the admin statistics through the query cache.
type StatsSource interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// BalanceWatcher reports wallet balance changes, such as a reward credited
// after an admin approves a photo.
type BalanceWatcher struct {
	src    BalanceSource
	qc     Invalidator
	notify flow.Notifier

	mu   sync.Mutex
	last decimal.Decimal
	seen bool
}

// NewBalanceWatcher creates a watcher. notify may be nil.
func NewBalanceWatcher(src BalanceSource, qc Invalidator, notify flow.Notifier) *BalanceWatcher {
	if notify == nil {
		notify = flow.LogNotifier{}
	}
	return &BalanceWatcher{src: src, qc: qc, notify: notify}
}

// Poll refetches the balance. The first poll only records it.
func (w *BalanceWatcher) Poll(ctx context.Context) error {
	w.qc.Invalidate(wallet.ResourceBalance)
	b, err := w.src.Balance(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	prev, seen := w.last, w.seen
	w.last, w.seen = b.Balance, true
	w.mu.Unlock()

	if !seen || prev.Equal(b.Balance) {
		return nil
	}
	// Earlier ledger pages are stale once the balance moves.
	w.qc.Invalidate(wallet.ResourceTransactions)

	delta := b.Balance.Sub(prev)
	event := logging.Ctx(ctx).Info().
		Str("previous", prev.StringFixed(2)).
		Str("balance", b.Balance.StringFixed(2)).
		Str("delta", delta.StringFixed(2))
	if tx, err := w.newest(ctx); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Could not load newest transaction")
	} else if tx != nil {
		event = event.Str("tx_id", tx.ID).Str("tx_type", string(tx.Type)).Str("tx_description", tx.Description)
	}
	event.Msg("Wallet balance changed")

	if delta.IsPositive() {
		w.notify.Success(fmt.Sprintf("Wallet credited ₹%s, balance ₹%s", delta.StringFixed(2), b.Balance.StringFixed(2)))
	} else {
		w.notify.Success(fmt.Sprintf("Wallet debited ₹%s, balance ₹%s", delta.Neg().StringFixed(2), b.Balance.StringFixed(2)))
	}
	return nil
}

func (w *BalanceWatcher) newest(ctx context.Context) (*models.Transaction, error) {
	page, err := w.src.Transactions(ctx, models.PageQuery{Page: 1, Limit: 1})
	if err != nil || len(page.Items) == 0 {
		return nil, err
	}
	return &page.Items[0], nil
}

// Last returns the most recent balance and whether one has been seen.
func (w *BalanceWatcher) Last() (decimal.Decimal, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.seen
}

// QueueWatcher reports new photos waiting for moderation.
type QueueWatcher struct {
	src    StatsSource
	qc     Invalidator
	notify flow.Notifier

	mu      sync.Mutex
	pending int
	seen    bool
}

// NewQueueWatcher creates a watcher. notify may be nil.
func NewQueueWatcher(src StatsSource, qc Invalidator, notify flow.Notifier) *QueueWatcher {
	if notify == nil {
		notify = flow.LogNotifier{}
	}
	return &QueueWatcher{src: src, qc: qc, notify: notify}
}

// Poll refetches the statistics. Growth in the pending count is announced;
// any change drops cached queue pages.
func (w *QueueWatcher) Poll(ctx context.Context) error {
	w.qc.Invalidate(admin.ResourceStats)
	stats, err := w.src.Stats(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	prev, seen := w.pending, w.seen
	w.pending, w.seen = stats.PendingPhotos, true
	w.mu.Unlock()

	if !seen || prev == stats.PendingPhotos {
		return nil
	}
	w.qc.Invalidate(admin.ResourcePending)

	logging.Ctx(ctx).Info().
		Int("previous", prev).
		Int("pending", stats.PendingPhotos).
		Msg("Moderation queue changed")

	if added := stats.PendingPhotos - prev; added > 0 {
		w.notify.Success(fmt.Sprintf("%s new %s awaiting approval (%s pending)",
			humanize.Comma(int64(added)), plural(added, "photo", "photos"), humanize.Comma(int64(stats.PendingPhotos))))
	}
	return nil
}

// Pending returns the most recent pending count and whether one has been seen.
func (w *QueueWatcher) Pending() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending, w.seen
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
