// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package admin

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// Query cache resources owned by the dashboard.
const (
	ResourcePending   = "pendingPhotos"
	ResourceStats     = "adminStats"
	ResourceRewards   = "rewardSettings"
	ResourceWatermark = "watermarkSettings"
)

// User-facing messages.
const (
	MsgApproved         = "Photo approved! Reward credited to user."
	MsgApproveFailed    = "Failed to approve photo"
	MsgRejected         = "Photo rejected"
	MsgRejectFailed     = "Failed to reject photo"
	MsgAlreadyResolved  = "Photo was already moderated"
	MsgWatermarkUpdated = "Watermark settings updated successfully!"
	MsgWatermarkFailed  = "Failed to update watermark settings"
	MsgRewardsUpdated   = "Reward updated successfully"
	MsgRewardsFailed    = "Failed to update reward"
)

// Backend is the admin API surface the dashboard needs.
type Backend interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Pending(ctx context.Context, q models.PageQuery) (*models.Page[models.PendingPhoto], error)
	Approve(ctx context.Context, photoID string, reward *decimal.Decimal) (*models.ModerationResult, error)
	Reject(ctx context.Context, photoID, reason string) (*models.ModerationResult, error)
	RewardSettings(ctx context.Context) (*models.RewardSettings, error)
	UpdateRewardSettings(ctx context.Context, rs models.RewardSettings) (*models.RewardSettings, error)
	Watermark(ctx context.Context) (*models.WatermarkSettings, error)
	UpdateWatermark(ctx context.Context, ws models.WatermarkSettings) (*models.WatermarkSettings, error)
}

// Dashboard reads admin data through the query cache and runs moderation
// actions.
//
// Thread Safety: Safe for concurrent use.
type Dashboard struct {
	backend  Backend
	qc       *cache.QueryCache
	notify   flow.Notifier
	pageSize int
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithNotifier sets where success and failure messages go.
func WithNotifier(n flow.Notifier) Option {
	return func(d *Dashboard) { d.notify = n }
}

// WithPageSize sets how many pending photos a queue page holds.
func WithPageSize(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.pageSize = n
		}
	}
}

// New creates a Dashboard.
func New(backend Backend, qc *cache.QueryCache, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend:  backend,
		qc:       qc,
		notify:   flow.LogNotifier{},
		pageSize: models.DefaultLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Stats returns the dashboard counters.
func (d *Dashboard) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats, err := cache.Fetch(ctx, d.qc, ResourceStats, d.backend.Stats)
	if err != nil {
		return nil, err
	}
	metrics.PendingPhotos.Set(float64(stats.PendingPhotos))
	return stats, nil
}

// Pending returns one page of the moderation queue.
func (d *Dashboard) Pending(ctx context.Context, q models.PageQuery) (*models.Page[models.PendingPhoto], error) {
	q = q.Normalize()
	return cache.Fetch(ctx, d.qc, cache.Key(ResourcePending, q), func(ctx context.Context) (*models.Page[models.PendingPhoto], error) {
		return d.backend.Pending(ctx, q)
	})
}

// RewardSettings returns the reward configuration.
func (d *Dashboard) RewardSettings(ctx context.Context) (*models.RewardSettings, error) {
	return cache.Fetch(ctx, d.qc, ResourceRewards, d.backend.RewardSettings)
}

// UpdateRewardSettings saves rs.
func (d *Dashboard) UpdateRewardSettings(ctx context.Context, rs models.RewardSettings) (*models.RewardSettings, error) {
	out, err := d.backend.UpdateRewardSettings(ctx, rs)
	if err != nil {
		d.notify.Error(client.UserMessage(err, MsgRewardsFailed))
		return nil, err
	}
	d.qc.Invalidate(ResourceRewards)
	logging.Ctx(ctx).Info().
		Str("photo_approval_reward", out.PhotoApprovalReward.String()).
		Str("minimum_redemption", out.MinimumRedemptionAmount.String()).
		Msg("Reward settings updated")
	d.notify.Success(MsgRewardsUpdated)
	return out, nil
}

// Watermark returns the watermark configuration.
func (d *Dashboard) Watermark(ctx context.Context) (*models.WatermarkSettings, error) {
	return cache.Fetch(ctx, d.qc, ResourceWatermark, d.backend.Watermark)
}

// UpdateWatermark saves ws.
func (d *Dashboard) UpdateWatermark(ctx context.Context, ws models.WatermarkSettings) (*models.WatermarkSettings, error) {
	out, err := d.backend.UpdateWatermark(ctx, ws)
	if err != nil {
		d.notify.Error(client.UserMessage(err, MsgWatermarkFailed))
		return nil, err
	}
	d.qc.Invalidate(ResourceWatermark)
	logging.Ctx(ctx).Info().Str("text", out.Text).Msg("Watermark settings updated")
	d.notify.Success(MsgWatermarkUpdated)
	return out, nil
}
