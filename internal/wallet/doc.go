// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package wallet implements the wallet screens: balance, the paginated
transaction ledger and redemption to the storefront.

The balance shown is always the last value the backend returned. A
redemption never adjusts it locally; on success the walletBalance and
transactions queries are invalidated and the balance is fetched again.

Redemption input is checked before anything is sent, first failure wins:

	not a number        Please enter a valid amount
	zero or negative    Please enter an amount greater than 0
	above the balance   Insufficient balance
	below the minimum   Minimum redemption amount is ₹10

Both bounds are inclusive, so redeeming the whole balance or exactly the
minimum is allowed. Amounts with more than fifteen integer digits count
as above the balance without being compared. The backend re-validates and is authoritative.

Only one redemption per Wallet can be in flight. A second Submit while one
is running returns ErrSubmissionInFlight without touching the network, and
every submission carries its own Idempotency-Key so a retried request
cannot be applied twice by the backend.
*/
package wallet
