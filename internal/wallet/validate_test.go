// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package wallet

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/client"
)

func TestValidateRedemption(t *testing.T) {
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		input    string
		balance  string
		wantCode string
		wantMsg  string
	}{
		{"not a number", "ten", "25", CodeNotNumeric, MsgInvalidAmount},
		{"empty", "", "25", CodeNotNumeric, MsgInvalidAmount},
		{"zero", "0", "25", CodeNotPositive, MsgNotPositive},
		{"negative", "-5", "25", CodeNotPositive, MsgNotPositive},
		{"zero with huge exponent", "0e999999999", "25", CodeNotPositive, MsgNotPositive},
		{"huge exponent", "1e200000000", "25.50", CodeOverBalance, MsgInsufficientBalance},
		{"huge negative exponent", "-1e200000000", "25.50", CodeNotPositive, MsgNotPositive},
		{"tiny exponent", "1e-200000000", "25.50", CodeNotNumeric, MsgInvalidAmount},
		{"sixteen integer digits", "1000000000000000", "25", CodeOverBalance, MsgInsufficientBalance},
		{"over balance", "30", "25", CodeOverBalance, MsgInsufficientBalance},
		{"one paisa over balance", "25.01", "25", CodeOverBalance, MsgInsufficientBalance},
		{"under minimum", "9.99", "25", CodeUnderMinimum, "Minimum redemption amount is ₹10"},
		{"balance checked before minimum", "7", "5", CodeOverBalance, MsgInsufficientBalance},
		{"non-positive checked before balance", "-1", "0", CodeNotPositive, MsgNotPositive},
		{"exactly minimum", "10", "25", "", ""},
		{"exactly balance", "25", "25", "", ""},
		{"whitespace trimmed", " 12.50 ", "25", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ValidateRedemption(tt.input, decimal.RequireFromString(tt.balance), ten)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !amount.IsPositive() {
					t.Errorf("amount = %s", amount)
				}
				return
			}

			var verr *client.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *client.ValidationError", err)
			}
			if !errors.Is(err, client.ErrValidation) {
				t.Error("error should match client.ErrValidation")
			}
			if verr.Field != "amount" || verr.Code != tt.wantCode {
				t.Errorf("field/code = %s/%s, want amount/%s", verr.Field, verr.Code, tt.wantCode)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateRedemptionMessagesAreDistinct(t *testing.T) {
	seen := map[string]string{}
	for code, input := range map[string]string{
		CodeNotNumeric:   "ten",
		CodeNotPositive:  "0",
		CodeOverBalance:  "30",
		CodeUnderMinimum: "5",
	} {
		_, err := ValidateRedemption(input, decimal.NewFromInt(25), DefaultMinimum)
		var verr *client.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: err = %v", input, err)
		}
		if other, ok := seen[verr.Message]; ok {
			t.Errorf("%s and %s share message %q", code, other, verr.Message)
		}
		seen[verr.Message] = code
	}
}

func TestValidateRedemptionAcceptsExactlyTheRange(t *testing.T) {
	min := decimal.NewFromInt(10)
	balance := decimal.NewFromInt(40)

	for cents := int64(0); cents <= 5000; cents += 37 {
		amount := decimal.New(cents, -2)
		_, err := ValidateRedemption(amount.String(), balance, min)
		want := !amount.LessThan(min) && !amount.GreaterThan(balance)
		if (err == nil) != want {
			t.Errorf("amount %s: accepted=%v, want %v", amount, err == nil, want)
		}
	}
}

func TestMinimumMessage(t *testing.T) {
	if got := MinimumMessage(decimal.RequireFromString("25.50")); got != "Minimum redemption amount is ₹25.5" {
		t.Errorf("MinimumMessage = %q", got)
	}
}
