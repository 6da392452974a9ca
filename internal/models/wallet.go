// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType says why a ledger entry moved money.
type TransactionType string

// Transaction types.
const (
	TxReward     TransactionType = "reward"
	TxRedemption TransactionType = "redemption"
	TxRefund     TransactionType = "refund"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

// Transaction states.
const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
)

// WalletBalance is the data of GET /users/wallet.
type WalletBalance struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalEarned   decimal.Decimal `json:"totalEarned,omitempty"`
	TotalRedeemed decimal.Decimal `json:"totalRedeemed,omitempty"`
}

// StorefrontBalance is the data of GET /wallet/protomart-balance.
type StorefrontBalance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency,omitempty"`
}

// Transaction is an immutable wallet ledger record. Amount is signed:
// rewards and refunds are positive, redemptions negative.
type Transaction struct {
	ID               string            `json:"_id"`
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"`
	Status           TransactionStatus `json:"status"`
	Description      string            `json:"description,omitempty"`
	PhotoID          Ref               `json:"photoId,omitempty"`
	ProtomartOrderID string            `json:"protomartOrderId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// RelatedPhotoID returns the id of the photo that earned a reward, if any.
func (t Transaction) RelatedPhotoID() string {
	return t.PhotoID.ID
}

// RedeemRequest is the body of POST /users/redeem.
type RedeemRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

// RedeemResult is the data of a successful redemption.
type RedeemResult struct {
	Transaction      *Transaction    `json:"transaction,omitempty"`
	NewBalance       decimal.Decimal `json:"newBalance,omitempty"`
	ProtomartOrderID string          `json:"protomartOrderId,omitempty"`
}
