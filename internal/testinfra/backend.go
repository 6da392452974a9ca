// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package testinfra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/config"
	"github.com/tomtom215/geosnap/internal/models"
)

// Capture is one request received by the fake.
type Capture struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

type failure struct {
	status  int
	message string
}

type gate struct {
	entered chan struct{}
	release chan struct{}
}

type fakeUser struct {
	user     models.User
	password string
}

// FakeBackend is an in-memory Geosnap backend.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []Capture
	failures map[string][]failure
	gates    map[string]*gate

	secret   []byte
	tokenTTL time.Duration
	nextID   int

	users       map[string]*fakeUser // by email
	usersByID   map[string]*fakeUser
	balances    map[string]decimal.Decimal
	redeemed    map[string]decimal.Decimal
	txs         map[string][]models.Transaction // newest first
	idempotency map[string]models.RedeemResult

	pending  []models.PendingPhoto
	resolved map[string]string
	photos   []models.Photo
	likes    map[string]map[string]bool
	places   []models.Place
	blogs    []models.Blog
	synced   models.SyncStatus

	rewards   models.RewardSettings
	watermark models.WatermarkSettings
}

// NewFakeBackend starts a fake backend that is closed with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		failures:    make(map[string][]failure),
		gates:       make(map[string]*gate),
		secret:      []byte("geosnap-fake-backend-secret"),
		tokenTTL:    time.Hour,
		users:       make(map[string]*fakeUser),
		usersByID:   make(map[string]*fakeUser),
		balances:    make(map[string]decimal.Decimal),
		redeemed:    make(map[string]decimal.Decimal),
		txs:         make(map[string][]models.Transaction),
		idempotency: make(map[string]models.RedeemResult),
		resolved:    make(map[string]string),
		likes:       make(map[string]map[string]bool),
		rewards: models.RewardSettings{
			PhotoApprovalReward:     decimal.NewFromInt(5),
			MinimumRedemptionAmount: decimal.NewFromInt(10),
		},
		watermark: models.WatermarkSettings{
			Text:     "Geosnap",
			FontSize: 24,
			Color:    "#ffffff",
			Position: models.WatermarkPosition{X: 90, Y: 90},
			Opacity:  0.5,
		},
	}
	fb.Server = httptest.NewServer(fb.routes())
	t.Cleanup(func() {
		fb.releaseAll()
		fb.Server.Close()
	})
	return fb
}

// URL returns the REST root, ending in /api.
func (fb *FakeBackend) URL() string {
	return fb.Server.URL + "/api"
}

// Config returns a client configuration pointed at the fake, with an
// in-memory session store and a breaker that never trips.
func (fb *FakeBackend) Config() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:   fb.URL(),
			Timeout:   5 * time.Second,
			UserAgent: "geosnap-test",
		},
		Breaker: config.BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  1000,
			FailureRatio: 1,
		},
		Session: config.SessionConfig{Store: "memory"},
		Cache:   config.CacheConfig{StaleTime: time.Minute},
		Wallet:  config.WalletConfig{MinRedemption: "10", PageSize: 20},
		Admin:   config.AdminConfig{PageSize: 20},
		Logging: config.LoggingConfig{Level: "warn", Format: "console"},
		Watch:   config.WatchConfig{Interval: 50 * time.Millisecond},
	}
}

// Login issues a fresh one-hour token for u.
func (fb *FakeBackend) Login(u models.User) string {
	return fb.IssueToken(u.ID, fb.tokenTTL)
}

func (fb *FakeBackend) id(prefix string) string {
	fb.nextID++
	return fmt.Sprintf("%s%04d", prefix, fb.nextID)
}

// AddUser registers a user and returns it.
func (fb *FakeBackend) AddUser(name, email, password, role string) models.User {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.addUserLocked(name, email, password, role)
}

func (fb *FakeBackend) addUserLocked(name, email, password, role string) models.User {
	u := &fakeUser{
		user: models.User{
			ID:        fb.id("u"),
			Name:      name,
			Email:     strings.ToLower(email),
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		password: password,
	}
	fb.users[u.user.Email] = u
	fb.usersByID[u.user.ID] = u
	fb.balances[u.user.ID] = decimal.Zero
	return u.user
}

// IssueToken signs a token for userID that expires after ttl.
func (fb *FakeBackend) IssueToken(userID string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fb.secret)
	if err != nil {
		panic(err)
	}
	return token
}

// SetBalance sets a user's wallet balance.
func (fb *FakeBackend) SetBalance(userID, amount string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.balances[userID] = decimal.RequireFromString(amount)
}

// Balance returns a user's wallet balance.
func (fb *FakeBackend) Balance(userID string) decimal.Decimal {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.balances[userID]
}

// AddTransaction appends a ledger entry as the user's newest.
func (fb *FakeBackend) AddTransaction(userID string, tx models.Transaction) models.Transaction {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if tx.ID == "" {
		tx.ID = fb.id("t")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	fb.txs[userID] = append([]models.Transaction{tx}, fb.txs[userID]...)
	return tx
}

// AddPending queues a photo for moderation.
func (fb *FakeBackend) AddPending(uploaderID, placeName string) models.PendingPhoto {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.addPendingLocked(uploaderID, placeName, "upload")
}

func (fb *FakeBackend) addPendingLocked(uploaderID, placeName, source string) models.PendingPhoto {
	ref := models.Ref{ID: uploaderID}
	if u, ok := fb.usersByID[uploaderID]; ok {
		ref.Name, ref.Email = u.user.Name, u.user.Email
	}
	id := fb.id("p")
	p := models.PendingPhoto{
		ID:             id,
		UserID:         ref,
		PlaceName:      placeName,
		OriginalURL:    "https://cdn.geosnap.test/" + id + ".jpg",
		ThumbnailURL:   "https://cdn.geosnap.test/" + id + "_thumb.jpg",
		Source:         source,
		ApprovalStatus: models.ApprovalPending,
		CreatedAt:      time.Now().UTC(),
	}
	fb.pending = append(fb.pending, p)
	return p
}

// PendingIDs lists the moderation queue in order.
func (fb *FakeBackend) PendingIDs() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	ids := make([]string, 0, len(fb.pending))
	for _, p := range fb.pending {
		ids = append(ids, p.ID)
	}
	return ids
}

// ResolveElsewhere resolves a pending photo as if another admin had acted.
func (fb *FakeBackend) ResolveElsewhere(photoID, status string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i, p := range fb.pending {
		if p.ID == photoID {
			fb.pending = append(fb.pending[:i], fb.pending[i+1:]...)
			fb.resolved[photoID] = status
			return
		}
	}
}

// AddPlace adds a place and returns it.
func (fb *FakeBackend) AddPlace(name, city string, lat, lon float64) models.Place {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	p := models.Place{
		ID:        fb.id("pl"),
		Name:      name,
		City:      city,
		Location:  models.NewGeoPoint(lat, lon),
		CreatedAt: time.Now().UTC(),
	}
	fb.places = append(fb.places, p)
	return p
}

// AddApprovedPhoto adds a public photo at placeID.
func (fb *FakeBackend) AddApprovedPhoto(uploaderID, placeID string) models.Photo {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	p := models.Photo{
		ID:             fb.id("p"),
		UserID:         models.Ref{ID: uploaderID},
		PlaceID:        models.Ref{ID: placeID},
		ApprovalStatus: models.ApprovalApproved,
		CreatedAt:      time.Now().UTC(),
	}
	for i := range fb.places {
		if fb.places[i].ID == placeID {
			fb.places[i].PhotoCount++
			p.PlaceName, p.City, p.Location = fb.places[i].Name, fb.places[i].City, fb.places[i].Location
		}
	}
	fb.photos = append(fb.photos, p)
	return p
}

// Watermark returns the stored watermark settings.
func (fb *FakeBackend) Watermark() models.WatermarkSettings {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.watermark
}

// FailNext makes the next request to method and path (without the /api
// prefix) fail with status and message.
func (fb *FakeBackend) FailNext(method, path string, status int, message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	key := method + " " + path
	fb.failures[key] = append(fb.failures[key], failure{status: status, message: message})
}

// Hold parks requests to method and path until release is called. entered
// receives once per parked request.
func (fb *FakeBackend) Hold(method, path string) (entered <-chan struct{}, release func()) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	g := &gate{entered: make(chan struct{}, 16), release: make(chan struct{})}
	fb.gates[method+" "+path] = g
	var once sync.Once
	return g.entered, func() {
		once.Do(func() {
			fb.mu.Lock()
			delete(fb.gates, method+" "+path)
			fb.mu.Unlock()
			close(g.release)
		})
	}
}

func (fb *FakeBackend) releaseAll() {
	fb.mu.Lock()
	gates := fb.gates
	fb.gates = make(map[string]*gate)
	fb.mu.Unlock()
	for _, g := range gates {
		close(g.release)
	}
}

// Count returns how many requests hit method and path.
func (fb *FakeBackend) Count(method, path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.captures {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Captures returns a copy of every request received.
func (fb *FakeBackend) Captures() []Capture {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]Capture, len(fb.captures))
	copy(out, fb.captures)
	return out
}

// intercept records the request, then applies any injected failure or gate.
func (fb *FakeBackend) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")

		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		key := r.Method + " " + path
		fb.mu.Lock()
		fb.captures = append(fb.captures, Capture{Method: r.Method, Path: path, Headers: r.Header.Clone(), Body: body})
		var fail *failure
		if queue := fb.failures[key]; len(queue) > 0 {
			fail = &queue[0]
			fb.failures[key] = queue[1:]
		}
		g := fb.gates[key]
		fb.mu.Unlock()

		if g != nil {
			select {
			case g.entered <- struct{}{}:
			default:
			}
			select {
			case <-g.release:
			case <-r.Context().Done():
				return
			}
		}

		if fail != nil {
			writeError(w, fail.status, fail.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

// authenticate resolves the bearer token to a user or answers 401.
func (fb *FakeBackend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return fb.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		fb.mu.Lock()
		u, found := fb.usersByID[claims.Subject]
		fb.mu.Unlock()
		if !found {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !currentUser(r).user.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *fakeUser {
	u, _ := r.Context().Value(ctxKey{}).(*fakeUser)
	return u
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeData(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, data any, message string) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Success: false, Message: message})
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// paginate slices items by the page and limit query parameters.
func paginate[T any](r *http.Request, items []T) ([]T, *models.Pagination) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}

	total := len(items)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, &models.Pagination{
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		Total:       total,
		Limit:       limit,
	}
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	out, p := paginate(r, items)
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: out, Pagination: p})
}

func (fb *FakeBackend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(fb.intercept)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", fb.handleRegister)
		r.Post("/auth/login", fb.handleLogin)
		r.Post("/auth/forgot-password", fb.handleForgotPassword)

		r.Get("/photos", fb.handlePhotos)
		r.Get("/photos/places", fb.handlePlacesWithPhotos)
		r.Get("/places", fb.handlePlaces)
		r.Get("/places/map", fb.handlePlacesMap)
		r.Get("/places/{id}", fb.handlePlace)
		r.Get("/places/{id}/photos", fb.handlePlacePhotos)
		r.Get("/blogs", fb.handleBlogs)
		r.Get("/blogs/place/{placeId}", fb.handleBlogsByPlace)

		r.Group(func(r chi.Router) {
			r.Use(fb.authenticate)

			r.Get("/auth/me", fb.handleMe)
			r.Put("/users/profile", fb.handleUpdateProfile)
			r.Post("/users/profile-photo", fb.handleProfilePhoto)
			r.Delete("/users/profile-photo", fb.handleDeleteProfilePhoto)

			r.Get("/users/wallet", fb.handleWallet)
			r.Get("/users/transactions", fb.handleTransactions)
			r.Post("/users/redeem", fb.handleRedeem)
			r.Get("/wallet/protomart-balance", fb.handleStorefrontBalance)

			r.Get("/photos/my", fb.handleMyPhotos)
			r.Post("/photos/upload", fb.handleUpload)
			r.Post("/photos/{id}/like", fb.handleLike)
			r.Delete("/photos/{id}", fb.handleDeletePhoto)

			r.Get("/blogs/my/blogs", fb.handleMyBlogs)
			r.Post("/blogs", fb.handleCreateBlog)
			r.Put("/blogs/{id}", fb.handleUpdateBlog)
			r.Delete("/blogs/{id}", fb.handleDeleteBlog)
			r.Post("/blogs/{id}/publish", fb.handlePublishBlog)

			r.Post("/google-photos/validate-link", fb.handleValidateLink)
			r.Post("/google-photos/sync", fb.handleSync)
			r.Get("/google-photos/sync-status", fb.handleSyncStatus)

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/stats", fb.handleStats)
				r.Get("/photos/pending", fb.handlePending)
				r.Post("/photos/{id}/approve", fb.handleApprove)
				r.Post("/photos/{id}/reject", fb.handleReject)
				r.Get("/rewards/settings", fb.handleGetRewards)
				r.Put("/rewards/settings", fb.handlePutRewards)
				r.Get("/watermark", fb.handleGetWatermark)
				r.Put("/watermark", fb.handlePutWatermark)
			})
		})

		r.Get("/photos/{id}", fb.handlePhoto)
		r.Get("/blogs/{id}", fb.handleBlog)
	})
	return r
}
