// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package wallet

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/validation"
)

// User-facing redemption messages.
const (
	MsgInvalidAmount       = "Please enter a valid amount"
	MsgNotPositive         = "Please enter an amount greater than 0"
	MsgInsufficientBalance = "Insufficient balance"
	MsgRedeemed            = "Amount redeemed successfully!"
	MsgRedeemFailed        = "Failed to redeem amount"
)

// Validation codes carried by the returned *client.ValidationError.
const (
	CodeNotNumeric   = "numeric"
	CodeNotPositive  = "gt"
	CodeOverBalance  = "lte"
	CodeUnderMinimum = "gte"
)

// DefaultMinimum is the smallest amount the storefront accepts.
var DefaultMinimum = decimal.NewFromInt(10)

// MinimumMessage is the error shown for amounts below min.
func MinimumMessage(min decimal.Decimal) string {
	return "Minimum redemption amount is ₹" + min.String()
}

// ValidateRedemption parses input and checks it against balance and min.
// It returns the parsed amount or a *client.ValidationError on field
// "amount". Checks run in order: not a number, not positive, over balance,
// under minimum.
func ValidateRedemption(input string, balance, min decimal.Decimal) (decimal.Decimal, error) {
	amount, err := validation.ParseAmount(input)
	switch {
	case errors.Is(err, validation.ErrInvalidAmount):
		return decimal.Zero, client.NewValidationError("amount", CodeNotNumeric, MsgInvalidAmount)
	case !amount.IsPositive():
		return decimal.Zero, client.NewValidationError("amount", CodeNotPositive, MsgNotPositive)
	case errors.Is(err, validation.ErrAmountOutOfRange), amount.GreaterThan(balance):
		return decimal.Zero, client.NewValidationError("amount", CodeOverBalance, MsgInsufficientBalance)
	case amount.LessThan(min):
		return decimal.Zero, client.NewValidationError("amount", CodeUnderMinimum, MinimumMessage(min))
	}
	return amount, nil
}
