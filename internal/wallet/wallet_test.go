// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
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

const redeemPath = "/users/redeem"

type staticToken string

func (s staticToken) Token() string { return string(s) }

type fixture struct {
	fb   *testinfra.FakeBackend
	user models.User
	w    *Wallet
	rec  *flow.Recorder
}

func newFixture(t *testing.T, balance string) *fixture {
	t.Helper()
	fb := testinfra.NewFakeBackend(t)
	u := fb.AddUser("Ravi", "ravi@example.com", "secret1", models.RoleUser)
	fb.SetBalance(u.ID, balance)

	c, err := client.New(fb.Config(), client.WithTokenSource(staticToken(fb.Login(u))))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	rec := &flow.Recorder{}
	w := New(api.New(c).Wallet, cache.NewQueryCache(time.Minute), WithNotifier(rec))
	return &fixture{fb: fb, user: u, w: w, rec: rec}
}

func waitEntered(t *testing.T, entered <-chan struct{}) {
	t.Helper()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the backend")
	}
}

type submitResult struct {
	res *models.RedeemResult
	err error
}

func TestRedeemScenario(t *testing.T) {
	f := newFixture(t, "25")
	ctx := context.Background()
	r := f.w.NewRedemption(nil)

	if _, err := r.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	r.SetInput("30")
	_, err := r.Submit(ctx)
	if !errors.Is(err, client.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if n := f.fb.Count(http.MethodPost, redeemPath); n != 0 {
		t.Fatalf("invalid amount reached the backend %d times", n)
	}
	if s := r.State(); s.Error != MsgInsufficientBalance || s.Input != "30" {
		t.Errorf("state after invalid submit = %+v", s)
	}

	entered, release := f.fb.Hold(http.MethodPost, redeemPath)
	r.SetInput("25")
	done := make(chan submitResult, 1)
	go func() {
		res, err := r.Submit(ctx)
		done <- submitResult{res, err}
	}()
	waitEntered(t, entered)

	if !r.State().Submitting || !f.w.InFlight() {
		t.Error("form should be submitting while the request is in flight")
	}
	if _, err := r.Submit(ctx); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("second submit err = %v, want ErrSubmissionInFlight", err)
	}

	release()
	got := <-done
	if got.err != nil {
		t.Fatalf("Submit: %v", got.err)
	}
	if got.res.ProtomartOrderID == "" {
		t.Error("result should carry the storefront order id")
	}
	if n := f.fb.Count(http.MethodPost, redeemPath); n != 1 {
		t.Errorf("redeem requests = %d, want exactly 1", n)
	}

	s := r.State()
	if !s.Balance.IsZero() {
		t.Errorf("balance after redeeming everything = %s, want 0", s.Balance)
	}
	if s.Input != "" || s.Error != "" || s.Submitting {
		t.Errorf("form should be reset after success: %+v", s)
	}
	if last, _ := f.rec.Last(); last != (flow.Notification{Level: flow.LevelSuccess, Message: MsgRedeemed}) {
		t.Errorf("last notification = %+v", last)
	}
	if f.w.InFlight() {
		t.Error("guard should be released")
	}
}

func TestRedeemRefetchesInsteadOfDecrementing(t *testing.T) {
	f := newFixture(t, "100")
	ctx := context.Background()

	if _, err := f.w.Balance(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.w.Balance(ctx); err != nil {
		t.Fatal(err)
	}
	if n := f.fb.Count(http.MethodGet, "/users/wallet"); n != 1 {
		t.Fatalf("fresh balance should be cached, fetched %d times", n)
	}

	r := f.w.NewRedemption(nil)
	r.SetInput("40")
	if _, err := r.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if n := f.fb.Count(http.MethodGet, "/users/wallet"); n != 2 {
		t.Errorf("balance should be refetched once after redeeming, fetched %d times", n)
	}
	if got := r.State().Balance; !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("balance = %s, want 60 from the backend", got)
	}
}

func TestRedeemFailureKeepsInputAndAllowsRetry(t *testing.T) {
	f := newFixture(t, "50")
	ctx := context.Background()
	r := f.w.NewRedemption(nil)

	f.fb.FailNext(http.MethodPost, redeemPath, http.StatusBadGateway, "Storefront is unavailable")
	r.SetInput("15")
	_, err := r.Submit(ctx)
	if !errors.Is(err, client.ErrServer) {
		t.Fatalf("err = %v, want server error", err)
	}

	s := r.State()
	if s.Input != "15" {
		t.Errorf("input = %q, want it preserved", s.Input)
	}
	if s.Error != "Storefront is unavailable" {
		t.Errorf("error = %q, want the backend message verbatim", s.Error)
	}
	if last, _ := f.rec.Last(); last.Level != flow.LevelError || last.Message != "Storefront is unavailable" {
		t.Errorf("last notification = %+v", last)
	}
	if !f.fb.Balance(f.user.ID).Equal(decimal.NewFromInt(50)) {
		t.Error("failed redemption must not change the balance")
	}

	if _, err := r.Submit(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}

	var keys []string
	for _, c := range f.fb.Captures() {
		if c.Method == http.MethodPost && c.Path == redeemPath {
			keys = append(keys, c.Headers.Get("Idempotency-Key"))
		}
	}
	if len(keys) != 2 || keys[0] == "" || keys[0] == keys[1] {
		t.Errorf("each submission should carry a fresh idempotency key, got %q", keys)
	}
}

type stubBackend struct {
	balance decimal.Decimal
	err     error
	calls   int
}

func (s *stubBackend) Balance(context.Context) (*models.WalletBalance, error) {
	return &models.WalletBalance{Balance: s.balance}, nil
}

func (s *stubBackend) Transactions(context.Context, models.PageQuery) (*models.Page[models.Transaction], error) {
	return &models.Page[models.Transaction]{}, nil
}

func (s *stubBackend) Redeem(context.Context, decimal.Decimal, string) (*models.RedeemResult, string, error) {
	s.calls++
	return nil, "", s.err
}

func TestRedeemFailureWithoutMessageUsesFallback(t *testing.T) {
	stub := &stubBackend{balance: decimal.NewFromInt(20), err: &client.NetworkError{Op: "POST /users/redeem", Err: errors.New("connection reset")}}
	rec := &flow.Recorder{}
	w := New(stub, cache.NewQueryCache(0), WithNotifier(rec))
	r := w.NewRedemption(nil)
	r.SetInput("10")

	_, err := r.Submit(context.Background())
	if !errors.Is(err, client.ErrNetwork) {
		t.Fatalf("err = %v, want network error", err)
	}
	if r.State().Error != MsgRedeemFailed {
		t.Errorf("error = %q, want %q", r.State().Error, MsgRedeemFailed)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1 and no automatic retry", stub.calls)
	}
}

func TestRedeemHonoursConfiguredMinimum(t *testing.T) {
	stub := &stubBackend{balance: decimal.NewFromInt(100)}
	rec := &flow.Recorder{}
	w := New(stub, cache.NewQueryCache(0), WithNotifier(rec), WithMinimum(decimal.NewFromInt(50)))
	r := w.NewRedemption(nil)
	r.SetInput("49")

	if _, err := r.Submit(context.Background()); err == nil {
		t.Fatal("expected minimum violation")
	}
	if last, _ := rec.Last(); last.Message != "Minimum redemption amount is ₹50" {
		t.Errorf("notification = %+v", last)
	}
	if stub.calls != 0 {
		t.Error("validation failure must not reach the backend")
	}
}

func TestClosedScopeSuppressesLateResult(t *testing.T) {
	f := newFixture(t, "25")
	ctx := context.Background()
	scope := flow.NewScope()
	r := f.w.NewRedemption(scope)
	if _, err := r.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	entered, release := f.fb.Hold(http.MethodPost, redeemPath)
	r.SetInput("10")
	done := make(chan error, 1)
	go func() {
		_, err := r.Submit(ctx)
		done <- err
	}()
	waitEntered(t, entered)
	scope.Close()
	release()

	if err := <-done; err != nil {
		t.Fatalf("request should still complete: %v", err)
	}
	if !f.fb.Balance(f.user.ID).Equal(decimal.NewFromInt(15)) {
		t.Error("backend should have applied the redemption")
	}
	if len(f.rec.All()) != 0 {
		t.Errorf("no notification after the scope closed, got %+v", f.rec.All())
	}
	if r.State().Input != "10" {
		t.Error("closed form should not be reset")
	}
}

func TestLedgerConcatenatesPages(t *testing.T) {
	f := newFixture(t, "0")
	ctx := context.Background()
	for i := 0; i < 45; i++ {
		f.fb.AddTransaction(f.user.ID, models.Transaction{
			Type:   models.TxReward,
			Amount: decimal.NewFromInt(5),
			Status: models.TxCompleted,
		})
	}

	l := f.w.NewLedger(nil)
	added, err := l.LoadMore(ctx)
	if err != nil || added != 20 {
		t.Fatalf("first page added %d, %v", added, err)
	}
	if !l.HasMore() {
		t.Fatal("45 transactions should span more than one page")
	}

	// a new transaction shifts every later page by one
	f.fb.AddTransaction(f.user.ID, models.Transaction{Type: models.TxReward, Amount: decimal.NewFromInt(1)})

	if err := l.LoadPages(ctx, 10); err != nil {
		t.Fatalf("LoadPages: %v", err)
	}
	items := l.Items()
	seen := make(map[string]bool)
	for _, tx := range items {
		if seen[tx.ID] {
			t.Fatalf("transaction %s appears twice", tx.ID)
		}
		seen[tx.ID] = true
	}
	if len(items) != 45 {
		t.Errorf("items = %d, want 45", len(items))
	}
	if l.HasMore() {
		t.Error("ledger should be exhausted")
	}
	if added, _ := l.LoadMore(ctx); added != 0 {
		t.Errorf("LoadMore past the end added %d", added)
	}

	l.Reset()
	if len(l.Items()) != 0 || !l.HasMore() {
		t.Error("Reset should start over")
	}
}

func TestLedgerPagesAreCached(t *testing.T) {
	f := newFixture(t, "0")
	ctx := context.Background()
	f.fb.AddTransaction(f.user.ID, models.Transaction{Type: models.TxReward, Amount: decimal.NewFromInt(5)})

	for i := 0; i < 3; i++ {
		if _, err := f.w.Transactions(ctx, models.PageQuery{Page: 1, Limit: 20}); err != nil {
			t.Fatal(err)
		}
	}
	if n := f.fb.Count(http.MethodGet, "/users/transactions"); n != 1 {
		t.Errorf("transactions fetched %d times, want 1", n)
	}
}

func TestLedgerClosedScopeDropsPage(t *testing.T) {
	f := newFixture(t, "0")
	for i := 0; i < 3; i++ {
		f.fb.AddTransaction(f.user.ID, models.Transaction{Type: models.TxReward, Amount: decimal.NewFromInt(int64(i + 1))})
	}

	scope := flow.NewScope()
	scope.Close()
	l := f.w.NewLedger(scope)
	if _, err := l.LoadMore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(l.Items()) != 0 {
		t.Error("page settling after close should not be applied")
	}
	if err := l.LoadPages(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
}

func ExampleValidateRedemption() {
	_, err := ValidateRedemption("9.99", decimal.NewFromInt(25), DefaultMinimum)
	fmt.Println(err)
	// Output: amount: Minimum redemption amount is ₹10
}
