// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package wallet

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// RedemptionState is a snapshot of the redeem form.
type RedemptionState struct {
	Input      string
	Balance    decimal.Decimal
	Loaded     bool
	Submitting bool
	// Error is the message of the last failed attempt, cleared on success.
	Error string
}

// Redemption is the redeem form of one wallet screen. Results that settle
// after its scope is closed are not applied or announced.
type Redemption struct {
	w      *Wallet
	scope  *flow.Scope
	notify flow.Notifier

	mu    sync.Mutex
	state RedemptionState
}

// NewRedemption creates a form bound to scope.
func (w *Wallet) NewRedemption(scope *flow.Scope) *Redemption {
	return &Redemption{
		w:      w,
		scope:  scope,
		notify: flow.Scoped(scope, w.notify),
	}
}

// State returns the current form state.
func (r *Redemption) State() RedemptionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SetInput stores the amount as typed.
func (r *Redemption) SetInput(input string) {
	r.mu.Lock()
	r.state.Input = input
	r.mu.Unlock()
}

// Refresh loads the balance the form validates against.
func (r *Redemption) Refresh(ctx context.Context) (decimal.Decimal, error) {
	b, err := r.w.Balance(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	r.apply(func(s *RedemptionState) {
		s.Balance = b.Balance
		s.Loaded = true
	})
	return b.Balance, nil
}

func (r *Redemption) apply(fn func(*RedemptionState)) {
	r.scope.Apply(func() {
		r.mu.Lock()
		fn(&r.state)
		r.mu.Unlock()
	})
}

// Submit validates the current input against the last loaded balance and,
// if it passes, redeems it.
//
// On success the input is cleared and the balance refetched. On failure
// the input is kept and the backend's message, or MsgRedeemFailed, is
// shown. A local validation failure never reaches the network.
func (r *Redemption) Submit(ctx context.Context) (*models.RedeemResult, error) {
	if !r.State().Loaded {
		if _, err := r.Refresh(ctx); err != nil {
			r.fail(client.UserMessage(err, MsgRedeemFailed))
			return nil, err
		}
	}

	if !r.w.begin() {
		return nil, ErrSubmissionInFlight
	}
	defer r.w.end()

	s := r.State()
	amount, err := ValidateRedemption(s.Input, s.Balance, r.w.min)
	if err != nil {
		metrics.RecordRedemption("invalid")
		r.fail(client.UserMessage(err, MsgInvalidAmount))
		return nil, err
	}

	r.apply(func(s *RedemptionState) { s.Submitting = true })
	result, err := r.w.redeem(ctx, amount)
	r.apply(func(s *RedemptionState) { s.Submitting = false })

	if err != nil {
		r.fail(client.UserMessage(err, MsgRedeemFailed))
		return nil, err
	}

	r.apply(func(s *RedemptionState) {
		s.Input = ""
		s.Error = ""
	})
	r.notify.Success(MsgRedeemed)

	if r.scope.Alive() {
		if _, err := r.Refresh(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to refresh balance after redemption")
		}
	}
	return result, nil
}

func (r *Redemption) fail(msg string) {
	r.apply(func(s *RedemptionState) { s.Error = msg })
	r.notify.Error(msg)
}
