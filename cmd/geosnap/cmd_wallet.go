// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/gnuflag"

	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/format"
	"github.com/tomtom215/geosnap/internal/session"
)

type walletCommand struct {
	storefront bool
}

func (c *walletCommand) Info() *Info {
	return &Info{Name: "wallet", Purpose: "show the reward wallet balance", Guard: session.RequireAuth}
}

func (c *walletCommand) SetFlags(f *gnuflag.FlagSet) {
	f.BoolVar(&c.storefront, "storefront", false, "also show the linked storefront balance")
}

func (c *walletCommand) Init(args []string) error { return checkEmpty(args) }

func (c *walletCommand) Run(ctx context.Context, app *App) error {
	b, err := app.wallet.Balance(ctx)
	if err != nil {
		return err
	}
	t := newTable()
	t.AddRow("Balance:", format.Currency(b.Balance))
	t.AddRow("Total earned:", format.Currency(b.TotalEarned))
	t.AddRow("Total redeemed:", format.Currency(b.TotalRedeemed))
	t.AddRow("Minimum redemption:", format.Currency(app.wallet.Minimum()))
	if c.storefront {
		sb, err := app.api.Wallet.StorefrontBalance(ctx)
		if err != nil {
			return fmt.Errorf("storefront balance: %w", err)
		}
		t.AddRow("Storefront balance:", format.Currency(sb.Balance))
	}
	fmt.Fprintln(app.out, t)
	return nil
}

type transactionsCommand struct {
	pages int
}

func (c *transactionsCommand) Info() *Info {
	return &Info{Name: "transactions", Purpose: "list wallet transactions, newest first", Guard: session.RequireAuth}
}

func (c *transactionsCommand) SetFlags(f *gnuflag.FlagSet) {
	f.IntVar(&c.pages, "pages", 1, "number of pages to load")
}

func (c *transactionsCommand) Init(args []string) error {
	if c.pages < 1 {
		return usageErrorf("--pages must be at least 1")
	}
	return checkEmpty(args)
}

func (c *transactionsCommand) Run(ctx context.Context, app *App) error {
	scope := flow.NewScope()
	defer scope.Close()

	ledger := app.wallet.NewLedger(scope)
	if err := ledger.LoadPages(ctx, c.pages); err != nil {
		return err
	}
	items := ledger.Items()
	if len(items) == 0 {
		fmt.Fprintln(app.out, "No transactions yet")
		return nil
	}

	t := newTable("DATE", "TYPE", "AMOUNT", "STATUS", "DESCRIPTION")
	for _, tx := range items {
		t.AddRow(format.DateTime(tx.CreatedAt), tx.Type, format.Currency(tx.Amount), tx.Status, tx.Description)
	}
	fmt.Fprintln(app.out, t)

	p := ledger.Pagination()
	fmt.Fprintf(app.out, "Showing %s of %s transactions", format.Number(int64(len(items))), format.Number(int64(p.Total)))
	if ledger.HasMore() {
		fmt.Fprintf(app.out, " (use --pages %d for more)", p.CurrentPage+1)
	}
	fmt.Fprintln(app.out)
	return nil
}

type redeemCommand struct {
	amount string
}

func (c *redeemCommand) Info() *Info {
	return &Info{Name: "redeem", Args: "[amount]", Purpose: "redeem wallet balance to the storefront", Guard: session.RequireAuth}
}

func (c *redeemCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "amount to redeem")
}

func (c *redeemCommand) Init(args []string) error {
	if len(args) > 0 && c.amount == "" {
		c.amount, args = args[0], args[1:]
	}
	if strings.TrimSpace(c.amount) == "" {
		return usageErrorf("no amount specified")
	}
	return checkEmpty(args)
}

func (c *redeemCommand) Run(ctx context.Context, app *App) error {
	scope := flow.NewScope()
	defer scope.Close()

	r := app.wallet.NewRedemption(scope)
	if _, err := r.Refresh(ctx); err != nil {
		return err
	}
	r.SetInput(c.amount)
	res, err := r.Submit(ctx)
	if err != nil {
		return err
	}
	if res.ProtomartOrderID != "" {
		fmt.Fprintf(app.out, "Storefront order: %s\n", res.ProtomartOrderID)
	}
	fmt.Fprintf(app.out, "New balance: %s\n", format.Currency(r.State().Balance))
	return nil
}
