// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package admin

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/cache"
	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/flow"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/testinfra"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type fixture struct {
	fb       *testinfra.FakeBackend
	uploader models.User
	dash     *Dashboard
	rec      *flow.Recorder
	qc       *cache.QueryCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := testinfra.NewFakeBackend(t)
	uploader := fb.AddUser("Meera", "meera@example.com", "secret1", models.RoleUser)
	admin := fb.AddUser("Root", "root@example.com", "secret1", models.RoleAdmin)
	return fixture{fb: fb, uploader: uploader, rec: &flow.Recorder{}, qc: cache.NewQueryCache(time.Minute)}.withDashboard(t, fb.Login(admin))
}

func (f fixture) withDashboard(t *testing.T, token string) *fixture {
	t.Helper()
	c, err := client.New(f.fb.Config(), client.WithTokenSource(staticToken(token)))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	f.dash = New(api.New(c).Admin, f.qc, WithNotifier(f.rec))
	return &f
}

func approvePath(id string) string { return "/admin/photos/" + id + "/approve" }

func TestApproveRemovesExactlyOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.fb.AddPending(f.uploader.ID, "Hampi")
	p2 := f.fb.AddPending(f.uploader.ID, "Gokarna")

	q := f.dash.NewQueue(nil)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if q.Len() != 2 {
		t.Fatalf("Len = %d, want 2", q.Len())
	}

	outcome, err := q.Approve(ctx, p1.ID, nil)
	if err != nil || outcome != OutcomeApproved {
		t.Fatalf("Approve = %s, %v", outcome, err)
	}
	if q.Len() != 1 || q.Contains(p1.ID) || !q.Contains(p2.ID) {
		t.Errorf("items after approve = %+v", q.Items())
	}
	if !f.fb.Balance(f.uploader.ID).Equal(decimal.NewFromInt(5)) {
		t.Errorf("uploader balance = %s, want server default reward 5", f.fb.Balance(f.uploader.ID))
	}
	if last, _ := f.rec.Last(); last != (flow.Notification{Level: flow.LevelSuccess, Message: MsgApproved}) {
		t.Errorf("notification = %+v", last)
	}
	if !f.qc.IsStale(ResourceStats) {
		t.Error("adminStats should be invalidated")
	}
}

func TestApproveWithRewardOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.fb.AddPending(f.uploader.ID, "Munnar")
	q := f.dash.NewQueue(nil)

	reward := decimal.RequireFromString("12.5")
	if _, err := q.Approve(ctx, p.ID, &reward); err != nil {
		t.Fatal(err)
	}
	if !f.fb.Balance(f.uploader.ID).Equal(reward) {
		t.Errorf("balance = %s, want %s", f.fb.Balance(f.uploader.ID), reward)
	}

	zero := decimal.Zero
	p2 := f.fb.AddPending(f.uploader.ID, "Coorg")
	outcome, err := q.Approve(ctx, p2.ID, &zero)
	if !errors.Is(err, client.ErrValidation) || outcome != OutcomeFailed {
		t.Errorf("zero reward = %s, %v", outcome, err)
	}
	if f.fb.Count(http.MethodPost, approvePath(p2.ID)) != 0 {
		t.Error("invalid reward must not be sent")
	}
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.fb.AddPending(f.uploader.ID, "Ooty")
	q := f.dash.NewQueue(nil)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}

	for _, reason := range []string{"", "   "} {
		outcome, err := q.Reject(ctx, p.ID, reason)
		if !errors.Is(err, client.ErrValidation) || outcome != OutcomeFailed {
			t.Errorf("Reject(%q) = %s, %v", reason, outcome, err)
		}
	}
	if n := f.fb.Count(http.MethodPost, "/admin/photos/"+p.ID+"/reject"); n != 0 {
		t.Errorf("blank reasons reached the backend %d times", n)
	}
	if !q.Contains(p.ID) {
		t.Error("failed reject must keep the photo")
	}

	outcome, err := q.Reject(ctx, p.ID, "Blurry")
	if err != nil || outcome != OutcomeRejected {
		t.Fatalf("Reject = %s, %v", outcome, err)
	}
	if q.Contains(p.ID) {
		t.Error("rejected photo should be removed")
	}
	if last, _ := f.rec.Last(); last.Message != MsgRejected {
		t.Errorf("notification = %+v", last)
	}
}

func TestFailureKeepsPhotoForRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.fb.AddPending(f.uploader.ID, "Leh")
	q := f.dash.NewQueue(nil)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}
	before := q.Items()

	f.fb.FailNext(http.MethodPost, approvePath(p.ID), http.StatusInternalServerError, "")
	outcome, err := q.Approve(ctx, p.ID, nil)
	if err == nil || outcome != OutcomeFailed {
		t.Fatalf("Approve = %s, %v", outcome, err)
	}
	if got := q.Items(); len(got) != len(before) || got[0].ID != before[0].ID {
		t.Errorf("list changed after failure: %+v", got)
	}
	if last, _ := f.rec.Last(); last.Level != flow.LevelError {
		t.Errorf("failure should notify, got %+v", last)
	}

	if outcome, err := q.Approve(ctx, p.ID, nil); err != nil || outcome != OutcomeApproved {
		t.Fatalf("retry = %s, %v", outcome, err)
	}
	if q.Len() != 0 {
		t.Error("retry should remove the photo")
	}
}

func TestResolvedElsewhereIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.fb.AddPending(f.uploader.ID, "Kochi")
	q := f.dash.NewQueue(nil)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}

	f.fb.ResolveElsewhere(p.ID, models.ApprovalRejected)
	outcome, err := q.Approve(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("conflict should not be an error: %v", err)
	}
	if outcome != OutcomeAlreadyResolved {
		t.Errorf("outcome = %s", outcome)
	}
	if q.Contains(p.ID) {
		t.Error("already resolved photo should be dropped locally")
	}
	if last, _ := f.rec.Last(); !strings.Contains(last.Message, "already rejected") {
		t.Errorf("notification = %+v", last)
	}

	outcome, err = q.Reject(ctx, "p-unknown", "Spam")
	if err != nil || outcome != OutcomeAlreadyResolved {
		t.Errorf("unknown photo = %s, %v", outcome, err)
	}
}

func TestConcurrentApprovalsOfSamePhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.fb.AddPending(f.uploader.ID, "Jaipur")
	q := f.dash.NewQueue(nil)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}

	count := func() int {
		n := 0
		for _, item := range q.Items() {
			if item.ID == p.ID {
				n++
			}
		}
		return n
	}
	if count() != 1 {
		t.Fatalf("photo listed %d times before approving", count())
	}

	entered, release := f.fb.Hold(http.MethodPost, approvePath(p.ID))
	var wg sync.WaitGroup
	outcomes := make([]Outcome, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = q.Approve(ctx, p.ID, nil)
		}(i)
	}
	for i := 0; i < 2; i++ {
		select {
		case <-entered:
		case <-time.After(5 * time.Second):
			t.Fatal("approvals never reached the backend")
		}
	}
	release()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	got := []string{string(outcomes[0]), string(outcomes[1])}
	sort.Strings(got)
	if got[0] != string(OutcomeAlreadyResolved) || got[1] != string(OutcomeApproved) {
		t.Errorf("outcomes = %v, want one approved and one already resolved", got)
	}
	if count() != 0 {
		t.Errorf("photo listed %d times after approving", count())
	}
	if !f.fb.Balance(f.uploader.ID).Equal(decimal.NewFromInt(5)) {
		t.Error("reward must be credited once")
	}
}

func TestTwoAdminSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.fb.AddUser("Second", "second@example.com", "secret1", models.RoleSuperAdmin)
	g := fixture{fb: f.fb, rec: &flow.Recorder{}, qc: cache.NewQueryCache(time.Minute)}.withDashboard(t, f.fb.Login(other))

	p := f.fb.AddPending(f.uploader.ID, "Udaipur")
	q1, q2 := f.dash.NewQueue(nil), g.dash.NewQueue(nil)
	for _, q := range []*Queue{q1, q2} {
		if err := q.Load(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}

	if outcome, _ := q1.Reject(ctx, p.ID, "Duplicate"); outcome != OutcomeRejected {
		t.Fatalf("first admin outcome = %s", outcome)
	}
	if outcome, err := q2.Approve(ctx, p.ID, nil); err != nil || outcome != OutcomeAlreadyResolved {
		t.Errorf("second admin = %s, %v", outcome, err)
	}
	if q1.Len() != 0 || q2.Len() != 0 {
		t.Error("both lists should have dropped the photo")
	}
	if !f.fb.Balance(f.uploader.ID).IsZero() {
		t.Error("rejected photo must not be rewarded")
	}
}

func TestRefreshRefetchesAfterInvalidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fb.AddPending(f.uploader.ID, "Agra")
	q := f.dash.NewQueue(nil)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if n := f.fb.Count(http.MethodGet, "/admin/photos/pending"); n != 1 {
		t.Fatalf("pending fetched %d times, want 1 while fresh", n)
	}

	f.fb.AddPending(f.uploader.ID, "Varanasi")
	if err := q.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if q.Len() != 2 {
		t.Errorf("Len after Refresh = %d, want 2", q.Len())
	}
}

func TestClosedQueueIgnoresLateResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.fb.AddPending(f.uploader.ID, "Shimla")
	scope := flow.NewScope()
	q := f.dash.NewQueue(scope)
	if err := q.Load(ctx, 1); err != nil {
		t.Fatal(err)
	}

	scope.Close()
	if _, err := q.Approve(ctx, p.ID, nil); err != nil {
		t.Fatal(err)
	}
	if !q.Contains(p.ID) {
		t.Error("closed queue should not be updated")
	}
	if len(f.rec.All()) != 0 {
		t.Error("closed queue should not notify")
	}
	if len(f.fb.PendingIDs()) != 0 {
		t.Error("the approval itself should still complete")
	}
}

func TestStatsAndSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fb.AddPending(f.uploader.ID, "Pune")

	stats, err := f.dash.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.PendingPhotos != 1 {
		t.Errorf("PendingPhotos = %d", stats.PendingPhotos)
	}

	ws, err := f.dash.Watermark(ctx)
	if err != nil {
		t.Fatal(err)
	}
	ws.Text = "Geosnap India"
	if _, err := f.dash.UpdateWatermark(ctx, *ws); err != nil {
		t.Fatalf("UpdateWatermark: %v", err)
	}
	if f.fb.Watermark().Text != "Geosnap India" {
		t.Error("watermark not saved")
	}
	if !f.qc.IsStale(ResourceWatermark) {
		t.Error("watermarkSettings should be invalidated")
	}
	if last, _ := f.rec.Last(); last.Message != MsgWatermarkUpdated {
		t.Errorf("notification = %+v", last)
	}

	ws.Color = "white"
	if _, err := f.dash.UpdateWatermark(ctx, *ws); !errors.Is(err, client.ErrValidation) {
		t.Errorf("invalid colour err = %v", err)
	}
	if last, _ := f.rec.Last(); last.Level != flow.LevelError {
		t.Errorf("invalid settings should notify an error, got %+v", last)
	}

	rs, err := f.dash.RewardSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rs.PhotoApprovalReward = decimal.NewFromInt(8)
	out, err := f.dash.UpdateRewardSettings(ctx, *rs)
	if err != nil {
		t.Fatal(err)
	}
	if !out.PhotoApprovalReward.Equal(decimal.NewFromInt(8)) {
		t.Errorf("reward = %s", out.PhotoApprovalReward)
	}

	p := f.fb.AddPending(f.uploader.ID, "Goa")
	if _, err := f.dash.NewQueue(nil).Approve(ctx, p.ID, nil); err != nil {
		t.Fatal(err)
	}
	if !f.fb.Balance(f.uploader.ID).Equal(decimal.NewFromInt(8)) {
		t.Error("new default reward should apply")
	}
}

func TestNonAdminIsForbidden(t *testing.T) {
	f := newFixture(t)
	g := fixture{fb: f.fb, rec: &flow.Recorder{}, qc: cache.NewQueryCache(time.Minute)}.withDashboard(t, f.fb.Login(f.uploader))

	if _, err := g.dash.Stats(context.Background()); !errors.Is(err, client.ErrAuth) {
		t.Errorf("err = %v, want ErrAuth", err)
	}
}
