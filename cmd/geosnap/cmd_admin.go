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
	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/admin"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/format"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/session"
	"github.com/tomtom215/geosnap/internal/validation"
)

// Unset sentinels for numeric admin flags.
const (
	unsetInt   = -1
	unsetFloat = -1.0
)

type adminCommand struct {
	action  string
	photoID string

	page   int
	reward string
	reason string

	setReward  string
	setMinimum string

	text     string
	fontSize int
	color    string
	opacity  float64
	x, y     int
}

func (c *adminCommand) Info() *Info {
	return &Info{
		Name:    "admin",
		Args:    "stats | pending | approve <photo-id> | reject <photo-id> | rewards | watermark",
		Purpose: "moderate photos and manage reward and watermark settings",
		Guard:   session.RequireAdmin,
	}
}

func (c *adminCommand) SetFlags(f *gnuflag.FlagSet) {
	f.IntVar(&c.page, "page", models.DefaultPage, "pending: page number")
	f.StringVar(&c.reward, "reward", "", "approve: reward amount instead of the default")
	f.StringVar(&c.reason, "reason", "", "reject: reason shown to the uploader")
	f.StringVar(&c.setReward, "set-reward", "", "rewards: new photo approval reward")
	f.StringVar(&c.setMinimum, "set-minimum", "", "rewards: new minimum redemption amount")
	f.StringVar(&c.text, "text", "", "watermark: text")
	f.IntVar(&c.fontSize, "font-size", unsetInt, "watermark: font size (10-100)")
	f.StringVar(&c.color, "color", "", "watermark: hex color such as #ffffff")
	f.Float64Var(&c.opacity, "opacity", unsetFloat, "watermark: opacity (0-1)")
	f.IntVar(&c.x, "x", unsetInt, "watermark: horizontal position in percent")
	f.IntVar(&c.y, "y", unsetInt, "watermark: vertical position in percent")
}

func (c *adminCommand) Init(args []string) error {
	if len(args) == 0 {
		return usageErrorf("no action specified")
	}
	c.action, args = args[0], args[1:]
	switch c.action {
	case "approve", "reject":
		if len(args) == 0 {
			return usageErrorf("no photo id specified")
		}
		c.photoID, args = args[0], args[1:]
		if c.action == "reject" && strings.TrimSpace(c.reason) == "" {
			return usageErrorf("--reason is required")
		}
	case "stats", "pending", "rewards", "watermark":
	default:
		return usageErrorf("unknown admin action %q", c.action)
	}
	return checkEmpty(args)
}

func (c *adminCommand) Run(ctx context.Context, app *App) error {
	switch c.action {
	case "stats":
		return c.stats(ctx, app)
	case "pending":
		return c.pending(ctx, app)
	case "approve", "reject":
		return c.moderate(ctx, app)
	case "rewards":
		return c.rewards(ctx, app)
	default:
		return c.watermark(ctx, app)
	}
}

func (c *adminCommand) stats(ctx context.Context, app *App) error {
	s, err := app.admin.Stats(ctx)
	if err != nil {
		return err
	}
	t := newTable()
	t.AddRow("Users:", format.Number(int64(s.TotalUsers)))
	t.AddRow("Photos:", format.Number(int64(s.TotalPhotos)))
	t.AddRow("Pending:", format.Number(int64(s.PendingPhotos)))
	t.AddRow("Approved:", format.Number(int64(s.ApprovedPhotos)))
	t.AddRow("Rejected:", format.Number(int64(s.RejectedPhotos)))
	t.AddRow("Rewards given:", format.Currency(s.TotalRewardsGiven))
	fmt.Fprintln(app.out, t)
	return nil
}

func (c *adminCommand) pending(ctx context.Context, app *App) error {
	scope := flow.NewScope()
	defer scope.Close()

	q := app.admin.NewQueue(scope)
	if err := q.Load(ctx, c.page); err != nil {
		return err
	}
	items := q.Items()
	if len(items) == 0 {
		fmt.Fprintln(app.out, "No photos awaiting approval")
		return nil
	}
	t := newTable("ID", "UPLOADER", "PLACE", "SOURCE", "SIZE", "UPLOADED")
	for _, p := range items {
		t.AddRow(p.ID, p.Uploader().Label(), p.Where(), p.Source, format.FileSize(p.FileSize), format.RelativeTime(p.CreatedAt))
	}
	fmt.Fprintln(app.out, t)
	printPage(app, q.Pagination())
	return nil
}

func (c *adminCommand) moderate(ctx context.Context, app *App) error {
	scope := flow.NewScope()
	defer scope.Close()
	q := app.admin.NewQueue(scope)

	var (
		outcome admin.Outcome
		err     error
	)
	if c.action == "approve" {
		var reward *decimal.Decimal
		if c.reward != "" {
			r, perr := validation.ParseAmount(c.reward)
			if perr != nil {
				return usageErrorf("--reward %q is not a valid amount", c.reward)
			}
			reward = &r
		}
		outcome, err = q.Approve(ctx, c.photoID, reward)
	} else {
		outcome, err = q.Reject(ctx, c.photoID, c.reason)
	}
	if err != nil {
		return err
	}
	if outcome == admin.OutcomeAlreadyResolved {
		fmt.Fprintf(app.out, "%s was already moderated\n", c.photoID)
	}
	return nil
}

func (c *adminCommand) rewards(ctx context.Context, app *App) error {
	rs, err := app.admin.RewardSettings(ctx)
	if err != nil {
		return err
	}
	if c.setReward != "" || c.setMinimum != "" {
		upd := *rs
		if upd.PhotoApprovalReward, err = decimalFlag("--set-reward", c.setReward, rs.PhotoApprovalReward); err != nil {
			return err
		}
		if upd.MinimumRedemptionAmount, err = decimalFlag("--set-minimum", c.setMinimum, rs.MinimumRedemptionAmount); err != nil {
			return err
		}
		if rs, err = app.admin.UpdateRewardSettings(ctx, upd); err != nil {
			return err
		}
	}
	t := newTable()
	t.AddRow("Photo approval reward:", format.Currency(rs.PhotoApprovalReward))
	t.AddRow("Minimum redemption:", format.Currency(rs.MinimumRedemptionAmount))
	fmt.Fprintln(app.out, t)
	return nil
}

func decimalFlag(name, raw string, current decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return current, nil
	}
	d, err := validation.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, usageErrorf("%s %q is not a valid amount", name, raw)
	}
	return d, nil
}

func (c *adminCommand) watermark(ctx context.Context, app *App) error {
	ws, err := app.admin.Watermark(ctx)
	if err != nil {
		return err
	}
	upd, changed := c.applyWatermark(*ws)
	if changed {
		if ws, err = app.admin.UpdateWatermark(ctx, upd); err != nil {
			return err
		}
	}
	t := newTable()
	t.AddRow("Text:", ws.Text)
	t.AddRow("Font size:", ws.FontSize)
	t.AddRow("Color:", ws.Color)
	t.AddRow("Opacity:", fmt.Sprintf("%.2f", ws.Opacity))
	t.AddRow("Position:", fmt.Sprintf("%d%%, %d%%", ws.Position.X, ws.Position.Y))
	fmt.Fprintln(app.out, t)
	return nil
}

// applyWatermark overlays the flags that were set on ws.
func (c *adminCommand) applyWatermark(ws models.WatermarkSettings) (models.WatermarkSettings, bool) {
	changed := false
	if c.text != "" {
		ws.Text, changed = c.text, true
	}
	if c.fontSize != unsetInt {
		ws.FontSize, changed = c.fontSize, true
	}
	if c.color != "" {
		ws.Color, changed = c.color, true
	}
	if c.opacity != unsetFloat {
		ws.Opacity, changed = c.opacity, true
	}
	if c.x != unsetInt {
		ws.Position.X, changed = c.x, true
	}
	if c.y != unsetInt {
		ws.Position.Y, changed = c.y, true
	}
	return ws, changed
}
