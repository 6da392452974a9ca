// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// Outcome is how a moderation action ended.
type Outcome string

// Moderation outcomes.
const (
	OutcomeApproved        Outcome = "approved"
	OutcomeRejected        Outcome = "rejected"
	OutcomeAlreadyResolved Outcome = "already_resolved"
	OutcomeFailed          Outcome = "failed"
)

// Queue is the pending-photo list of one moderation screen.
type Queue struct {
	d      *Dashboard
	scope  *flow.Scope
	notify flow.Notifier

	mu         sync.Mutex
	items      []models.PendingPhoto
	pagination models.Pagination
	page       int
}

// NewQueue creates an empty queue bound to scope.
func (d *Dashboard) NewQueue(scope *flow.Scope) *Queue {
	return &Queue{
		d:      d,
		scope:  scope,
		notify: flow.Scoped(scope, d.notify),
		page:   models.DefaultPage,
	}
}

// Load fetches page and replaces the list with it.
func (q *Queue) Load(ctx context.Context, page int) error {
	res, err := q.d.Pending(ctx, models.PageQuery{Page: page, Limit: q.d.pageSize})
	if err != nil {
		return err
	}
	q.scope.Apply(func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.items = append([]models.PendingPhoto(nil), res.Items...)
		q.pagination = res.Pagination
		q.page = res.Pagination.CurrentPage
		if q.page < 1 {
			q.page = page
		}
	})
	return nil
}

// Refresh refetches the current page from the backend.
func (q *Queue) Refresh(ctx context.Context) error {
	q.d.qc.Invalidate(ResourcePending)
	q.mu.Lock()
	page := q.page
	q.mu.Unlock()
	return q.Load(ctx, page)
}

// Items returns the photos currently listed.
func (q *Queue) Items() []models.PendingPhoto {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.PendingPhoto(nil), q.items...)
}

// Len returns the number of photos listed.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Contains reports whether photoID is listed.
func (q *Queue) Contains(photoID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexLocked(photoID) >= 0
}

// Pagination returns the pagination of the loaded page.
func (q *Queue) Pagination() models.Pagination {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pagination
}

func (q *Queue) indexLocked(photoID string) int {
	for i, p := range q.items {
		if p.ID == photoID {
			return i
		}
	}
	return -1
}

// remove drops photoID from the list; removing an absent id is a no-op.
func (q *Queue) remove(photoID string) {
	q.scope.Apply(func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if i := q.indexLocked(photoID); i >= 0 {
			q.items = append(q.items[:i], q.items[i+1:]...)
		}
	})
}

// Approve approves photoID. A nil reward lets the backend apply its
// default; a given reward must be positive.
func (q *Queue) Approve(ctx context.Context, photoID string, reward *decimal.Decimal) (Outcome, error) {
	_, err := q.d.backend.Approve(ctx, photoID, reward)
	return q.settle(ctx, "approve", photoID, err, OutcomeApproved, MsgApproved, MsgApproveFailed)
}

// Reject rejects photoID with reason, which must not be blank.
func (q *Queue) Reject(ctx context.Context, photoID, reason string) (Outcome, error) {
	_, err := q.d.backend.Reject(ctx, photoID, reason)
	return q.settle(ctx, "reject", photoID, err, OutcomeRejected, MsgRejected, MsgRejectFailed)
}

// settle applies the result of a moderation call.
func (q *Queue) settle(ctx context.Context, action, photoID string, err error, done Outcome, okMsg, failMsg string) (Outcome, error) {
	log := logging.Ctx(ctx).With().Str("action", action).Str("photo_id", photoID).Logger()

	switch {
	case err == nil:
		q.remove(photoID)
		q.d.qc.Invalidate(ResourcePending, ResourceStats)
		metrics.RecordApprovalAction(action, string(done))
		log.Info().Msg("Photo moderated")
		q.notify.Success(okMsg)
		return done, nil

	case errors.Is(err, client.ErrNotFound) || errors.Is(err, client.ErrConflict):
		q.remove(photoID)
		q.d.qc.Invalidate(ResourcePending, ResourceStats)
		metrics.RecordApprovalAction(action, string(OutcomeAlreadyResolved))
		log.Info().Err(err).Msg("Photo already moderated elsewhere")
		q.notify.Error(client.UserMessage(err, MsgAlreadyResolved))
		return OutcomeAlreadyResolved, nil

	default:
		metrics.RecordApprovalAction(action, string(OutcomeFailed))
		log.Warn().Err(err).Msg("Moderation failed")
		q.notify.Error(client.UserMessage(err, failMsg))
		return OutcomeFailed, err
	}
}
