// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/geosnap/internal/config"
	"github.com/tomtom215/geosnap/internal/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:   baseURL + "/api",
			Timeout:   5 * time.Second,
			UserAgent: "geosnap-test",
		},
		Breaker: config.BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  3,
			FailureRatio: 0.6,
		},
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(testConfig(srv.URL), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/transactions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "20" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		writeJSON(w, 200, map[string]any{
			"success":    true,
			"data":       []map[string]any{{"_id": "t1", "type": "reward", "amount": 10, "status": "completed"}},
			"pagination": map[string]any{"currentPage": 2, "totalPages": 3, "total": 41, "limit": 20},
		})
	})

	var txs []models.Transaction
	resp, err := c.Get(context.Background(), "/users/transactions", PageParams(models.PageQuery{Page: 2}), &txs)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != "t1" {
		t.Errorf("txs = %+v", txs)
	}
	if resp.Pagination == nil || !resp.Pagination.HasMore() {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		writeJSON(w, 200, map[string]any{"success": true})
	}, WithTokenSource(staticToken("tok-123")))

	if _, err := c.Get(context.Background(), "/auth/me", nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestAuthFailureTriggersHandler(t *testing.T) {
	var calls atomic.Int32
	handler := func(ctx context.Context, status int, message string) {
		calls.Add(1)
		if status != http.StatusUnauthorized || message != "Token expired" {
			t.Errorf("handler got %d %q", status, message)
		}
	}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"success": false, "message": "Token expired"})
	}, WithTokenSource(staticToken("stale")), WithAuthFailureHandler(handler))

	_, err := c.Get(context.Background(), "/users/wallet", nil, nil)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
	if calls.Load() != 1 {
		t.Errorf("auth handler called %d times, want 1", calls.Load())
	}
}

func TestAuthFailureWithoutTokenDoesNotInvalidate(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"success": false, "message": "Invalid credentials"})
	}, WithTokenSource(staticToken("")), WithAuthFailureHandler(func(context.Context, int, string) { calls.Add(1) }))

	_, err := c.Post(context.Background(), "/auth/login", models.LoginRequest{Email: "a@b.co", Password: "x"}, nil)
	if UserMessage(err, "Login failed") != "Invalid credentials" {
		t.Errorf("UserMessage = %q", UserMessage(err, "Login failed"))
	}
	if calls.Load() != 0 {
		t.Error("anonymous 401 should not trigger session invalidation")
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		want    error
		message string
	}{
		{404, ErrNotFound, "Photo not found"},
		{409, ErrConflict, "Photo already processed"},
		{400, ErrServer, "Insufficient balance"},
		{503, ErrServer, ""},
		{403, ErrAuth, "Admin access required"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{"success": false, "message": tt.message})
			})
			_, err := c.Post(context.Background(), "/admin/photos/p1/approve", struct{}{}, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if errors.Is(err, ErrNetwork) {
				t.Error("application error must not look like a network error")
			}
			want := tt.message
			if want == "" {
				want = "fallback"
			}
			if got := UserMessage(err, "fallback"); got != want {
				t.Errorf("UserMessage = %q, want %q", got, want)
			}
		})
	}
}

func TestSuccessFalseEnvelopeIsServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"success": false, "message": "Redemption service unavailable"})
	})
	_, err := c.Post(context.Background(), "/users/redeem", map[string]int{"amount": 10}, nil)
	if !errors.Is(err, ErrServer) {
		t.Fatalf("err = %v, want ErrServer", err)
	}
	if UserMessage(err, "x") != "Redemption service unavailable" {
		t.Errorf("UserMessage = %q", UserMessage(err, "x"))
	}
}

func TestNetworkErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	c, err := New(testConfig(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Get(context.Background(), "/users/wallet", nil, nil)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if errors.Is(err, ErrServer) {
		t.Error("network error must not match ErrServer")
	}
	if !IsRetryable(err) {
		t.Error("network errors are retryable")
	}
	if UserMessage(err, "Failed to load wallet") != "Failed to load wallet" {
		t.Error("network errors should use the fallback message")
	}
}

func TestContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "/users/wallet", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestIdempotencyKeyHeader(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Idempotency-Key") != "key-1" {
			t.Errorf("Idempotency-Key = %q", r.Header.Get("Idempotency-Key"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"amount":25}` {
			t.Errorf("body = %s", body)
		}
		writeJSON(w, 200, map[string]any{"success": true})
	})
	_, err := c.Do(context.Background(), &Request{
		Method:         http.MethodPost,
		Path:           "/users/redeem",
		Body:           map[string]int{"amount": 25},
		IdempotencyKey: "key-1",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestMultipartForm(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("placeName") != "Baga Beach" {
			t.Errorf("placeName = %q", r.FormValue("placeName"))
		}
		if _, ok := r.MultipartForm.Value["placeId"]; ok {
			t.Error("empty fields should be skipped")
		}
		files := r.MultipartForm.File["photo"]
		if len(files) != 1 || files[0].Filename != "sunset.jpg" {
			t.Fatalf("files = %+v", files)
		}
		if ct := files[0].Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("part content type = %q", ct)
		}
		writeJSON(w, 201, map[string]any{"success": true, "data": map[string]any{"_id": "p1"}})
	})

	form := NewForm().
		Field("latitude", "15.55").
		Field("placeName", "Baga Beach").
		Field("placeId", "").
		File(FormFile{Field: "photo", FileName: "sunset.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpegdata")})

	var photo models.Photo
	if _, err := c.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/photos/upload", Form: form}, &photo); err != nil {
		t.Fatal(err)
	}
	if photo.ID != "p1" {
		t.Errorf("photo = %+v", photo)
	}
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 409, map[string]any{"success": false, "message": "already resolved"})
	})
	for i := 0; i < 6; i++ {
		_, err := c.Post(context.Background(), "/admin/photos/p1/reject", map[string]string{"reason": "blurry"}, nil)
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("attempt %d: err = %v, want ErrConflict", i, err)
		}
	}
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, 500, map[string]any{"success": false})
	})
	for i := 0; i < 3; i++ {
		_, _ = c.Get(context.Background(), "/admin/stats", nil, nil)
	}
	_, err := c.Get(context.Background(), "/admin/stats", nil, nil)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want open breaker", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("open breaker should surface as a network error")
	}
	if hits.Load() != 3 {
		t.Errorf("server saw %d requests, want 3", hits.Load())
	}
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	cfg := testConfig("")
	cfg.API.BaseURL = "/api"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for relative base url")
	}
}
