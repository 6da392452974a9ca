// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"github.com/shopspring/decimal"
)

// AdminStats is the data of GET /admin/stats.
type AdminStats struct {
	TotalUsers        int             `json:"totalUsers"`
	TotalPhotos       int             `json:"totalPhotos"`
	PendingPhotos     int             `json:"pendingPhotos"`
	ApprovedPhotos    int             `json:"approvedPhotos"`
	RejectedPhotos    int             `json:"rejectedPhotos"`
	TotalRewardsGiven decimal.Decimal `json:"totalRewardsGiven"`
}

// RewardSettings is read and written through /admin/rewards/settings.
type RewardSettings struct {
	PhotoApprovalReward     decimal.Decimal `json:"photoApprovalReward" validate:"gt=0"`
	MinimumRedemptionAmount decimal.Decimal `json:"minimumRedemptionAmount" validate:"gt=0"`
}

// WatermarkPosition is a percentage offset from the top-left corner.
type WatermarkPosition struct {
	X int `json:"x" validate:"gte=0,lte=100"`
	Y int `json:"y" validate:"gte=0,lte=100"`
}

// WatermarkSettings is read and written through /admin/watermark.
type WatermarkSettings struct {
	Text     string            `json:"text" validate:"max=100"`
	FontSize int               `json:"fontSize" validate:"min=10,max=100"`
	Color    string            `json:"color" validate:"required,hexcolor"`
	Position WatermarkPosition `json:"position"`
	Opacity  float64           `json:"opacity" validate:"gte=0,lte=1"`
}

// ApproveRequest is the body of POST /admin/photos/{id}/approve. A nil
// RewardAmount is omitted so the backend applies its default reward.
type ApproveRequest struct {
	RewardAmount *decimal.Decimal `json:"rewardAmount,omitempty"`
}

// RejectRequest is the body of POST /admin/photos/{id}/reject.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ModerationResult is the data of a successful approve or reject.
type ModerationResult struct {
	Photo        *Photo          `json:"photo,omitempty"`
	RewardAmount decimal.Decimal `json:"rewardAmount,omitempty"`
}
