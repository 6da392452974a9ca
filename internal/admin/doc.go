// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

/*
Package admin implements the moderation dashboard: the queue of photos
awaiting approval, aggregate stats, and the reward and watermark settings.

# Approval queue

A Queue holds one page of pending photos. Approve and Reject remove the
photo from the local list only after the backend confirmed the action, so
a failure leaves the list exactly as it was and the same photo can be
retried. Every successful action invalidates the pendingPhotos and
adminStats queries.

The backend decides races between admins. When an action comes back 404 or
409 the photo was already handled elsewhere: it is dropped from the list
and the call returns OutcomeAlreadyResolved with a nil error.

	q := dash.NewQueue(scope)
	if err := q.Load(ctx, 1); err != nil { ... }
	outcome, err := q.Approve(ctx, photoID, nil) // nil reward: server default

A reject reason is required; an empty or blank reason fails locally and
nothing is sent.
*/
package admin
