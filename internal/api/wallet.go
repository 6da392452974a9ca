// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
)

// WalletService covers the wallet endpoints.
type WalletService struct {
	d Doer
}

// Balance returns the current wallet balance.
func (s *WalletService) Balance(ctx context.Context) (*models.WalletBalance, error) {
	return getOne[models.WalletBalance](ctx, s.d, "/users/wallet", "")
}

// Transactions returns one page of the ledger, newest first.
func (s *WalletService) Transactions(ctx context.Context, q models.PageQuery) (*models.Page[models.Transaction], error) {
	return getPage[models.Transaction](ctx, s.d, &client.Request{
		Method: http.MethodGet,
		Path:   "/users/transactions",
		Query:  client.PageParams(q),
	})
}

// Redeem converts amount of wallet balance into storefront credit.
// idempotencyKey, when set, lets the backend drop a duplicate submission.
// The returned string is the backend's success message.
func (s *WalletService) Redeem(ctx context.Context, amount decimal.Decimal, idempotencyKey string) (*models.RedeemResult, string, error) {
	req := models.RedeemRequest{Amount: amount}
	if err := check(&req); err != nil {
		return nil, "", err
	}
	var out models.RedeemResult
	resp, err := s.d.Do(ctx, &client.Request{
		Method:         http.MethodPost,
		Path:           "/users/redeem",
		Body:           req,
		IdempotencyKey: idempotencyKey,
	}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, resp.Message, nil
}

// StorefrontBalance returns the balance held at the external storefront.
func (s *WalletService) StorefrontBalance(ctx context.Context) (*models.StorefrontBalance, error) {
	return getOne[models.StorefrontBalance](ctx, s.d, "/wallet/protomart-balance", "")
}
