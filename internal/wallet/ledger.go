// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package wallet

import (
	"context"
	"sync"

	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/models"
)

// Ledger is the transaction history of one screen, fetched page by page
// and concatenated. Pages are newest first, so a transaction that shifts
// onto a later page between fetches is kept only once.
type Ledger struct {
	w     *Wallet
	scope *flow.Scope

	mu         sync.Mutex
	items      []models.Transaction
	seen       map[string]bool
	pagination models.Pagination
	loaded     bool
}

// NewLedger creates an empty ledger bound to scope.
func (w *Wallet) NewLedger(scope *flow.Scope) *Ledger {
	return &Ledger{w: w, scope: scope, seen: make(map[string]bool)}
}

// LoadMore fetches the next page and appends it. It returns how many new
// transactions were added, 0 when there is nothing more to load.
func (l *Ledger) LoadMore(ctx context.Context) (int, error) {
	l.mu.Lock()
	if l.loaded && !l.pagination.HasMore() {
		l.mu.Unlock()
		return 0, nil
	}
	next := l.pagination.CurrentPage + 1
	l.mu.Unlock()

	page, err := l.w.Transactions(ctx, models.PageQuery{Page: next, Limit: l.w.pageSize})
	if err != nil {
		return 0, err
	}

	added := 0
	l.scope.Apply(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		// a concurrent LoadMore already appended this page
		if l.loaded && page.Pagination.CurrentPage <= l.pagination.CurrentPage {
			return
		}
		for _, tx := range page.Items {
			if l.seen[tx.ID] {
				continue
			}
			l.seen[tx.ID] = true
			l.items = append(l.items, tx)
			added++
		}
		l.pagination = page.Pagination
		l.loaded = true
	})
	return added, nil
}

// LoadPages loads until n pages are held or there are no more.
func (l *Ledger) LoadPages(ctx context.Context, n int) error {
	for {
		l.mu.Lock()
		done := l.loaded && (l.pagination.CurrentPage >= n || !l.pagination.HasMore())
		l.mu.Unlock()
		if done || !l.scope.Alive() {
			return nil
		}
		if _, err := l.LoadMore(ctx); err != nil {
			return err
		}
	}
}

// Reset drops everything loaded so the next LoadMore starts at page one.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.seen = make(map[string]bool)
	l.pagination = models.Pagination{}
	l.loaded = false
}

// Items returns the transactions loaded so far.
func (l *Ledger) Items() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Transaction(nil), l.items...)
}

// HasMore reports whether another page exists.
func (l *Ledger) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.loaded || l.pagination.HasMore()
}

// Pagination returns the pagination of the last page loaded.
func (l *Ledger) Pagination() models.Pagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pagination
}
