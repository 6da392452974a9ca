// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/models"
)

// AdminService covers /admin.
type AdminService struct {
	d Doer
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return getOne[models.AdminStats](ctx, s.d, "/admin/stats", "")
}

// Pending returns one page of the moderation queue.
func (s *AdminService) Pending(ctx context.Context, q models.PageQuery) (*models.Page[models.PendingPhoto], error) {
	return getPage[models.PendingPhoto](ctx, s.d, &client.Request{
		Method: http.MethodGet,
		Path:   "/admin/photos/pending",
		Query:  client.PageParams(q),
	})
}

// Approve approves a pending photo. A nil reward leaves the amount to the
// backend's configured default.
func (s *AdminService) Approve(ctx context.Context, photoID string, reward *decimal.Decimal) (*models.ModerationResult, error) {
	if err := requireID("photoId", photoID); err != nil {
		return nil, err
	}
	if reward != nil && !reward.IsPositive() {
		return nil, client.NewValidationError("rewardAmount", "gt", "rewardAmount must be greater than 0")
	}
	return send[models.ModerationResult](ctx, s.d, http.MethodPost,
		"/admin/photos/"+photoID+"/approve", "/admin/photos/{id}/approve",
		models.ApproveRequest{RewardAmount: reward})
}

// Reject rejects a pending photo with a reason shown to the uploader.
func (s *AdminService) Reject(ctx context.Context, photoID, reason string) (*models.ModerationResult, error) {
	if err := requireID("photoId", photoID); err != nil {
		return nil, err
	}
	req := models.RejectRequest{Reason: strings.TrimSpace(reason)}
	if err := check(&req); err != nil {
		return nil, err
	}
	return send[models.ModerationResult](ctx, s.d, http.MethodPost,
		"/admin/photos/"+photoID+"/reject", "/admin/photos/{id}/reject", req)
}

// RewardSettings returns the reward configuration.
func (s *AdminService) RewardSettings(ctx context.Context) (*models.RewardSettings, error) {
	return getOne[models.RewardSettings](ctx, s.d, "/admin/rewards/settings", "")
}

// UpdateRewardSettings replaces the reward configuration.
func (s *AdminService) UpdateRewardSettings(ctx context.Context, rs models.RewardSettings) (*models.RewardSettings, error) {
	if err := check(&rs); err != nil {
		return nil, err
	}
	return send[models.RewardSettings](ctx, s.d, http.MethodPut, "/admin/rewards/settings", "", rs)
}

// Watermark returns the watermark applied to approved photos.
func (s *AdminService) Watermark(ctx context.Context) (*models.WatermarkSettings, error) {
	return getOne[models.WatermarkSettings](ctx, s.d, "/admin/watermark", "")
}

// UpdateWatermark replaces the watermark settings.
func (s *AdminService) UpdateWatermark(ctx context.Context, ws models.WatermarkSettings) (*models.WatermarkSettings, error) {
	if err := check(&ws); err != nil {
		return nil, err
	}
	return send[models.WatermarkSettings](ctx, s.d, http.MethodPut, "/admin/watermark", "", ws)
}
