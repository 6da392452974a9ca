// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package testinfra

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/validation"
)

// maxUploadMemory bounds multipart parsing in the fake.
const maxUploadMemory = 8 << 20

func (fb *FakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fb.mu.Lock()
	if _, exists := fb.users[strings.ToLower(req.Email)]; exists {
		fb.mu.Unlock()
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	user := fb.addUserLocked(req.Name, req.Email, req.Password, models.RoleUser)
	fb.usersByID[user.ID].user.Phone = req.Phone
	user.Phone = req.Phone
	fb.mu.Unlock()

	writeEnvelope(w, http.StatusCreated, envelope{
		Success: true,
		Data:    models.AuthPayload{User: user, Token: fb.IssueToken(user.ID, fb.tokenTTL)},
	})
}

func (fb *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fb.mu.Lock()
	u, ok := fb.users[strings.ToLower(req.Email)]
	fb.mu.Unlock()
	if !ok || u.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeData(w, models.AuthPayload{User: u.user, Token: fb.IssueToken(u.user.ID, fb.tokenTTL)})
}

func (fb *FakeBackend) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, nil, "If that email exists, a reset link has been sent")
}

func (fb *FakeBackend) handleMe(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeData(w, currentUser(r).user)
}

func (fb *FakeBackend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	u := currentUser(r)
	if upd.Name != "" {
		u.user.Name = upd.Name
	}
	if upd.Phone != "" {
		u.user.Phone = upd.Phone
	}
	if upd.Bio != "" {
		u.user.Bio = upd.Bio
	}
	writeData(w, u.user)
}

func (fb *FakeBackend) handleProfilePhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	files := r.MultipartForm.File["profilePhoto"]
	if len(files) != 1 {
		writeError(w, http.StatusBadRequest, "Please upload a photo")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	u := currentUser(r)
	u.user.ProfilePhoto = "https://cdn.geosnap.test/profiles/" + u.user.ID + "/" + files[0].Filename
	writeData(w, u.user)
}

func (fb *FakeBackend) handleDeleteProfilePhoto(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	currentUser(r).user.ProfilePhoto = ""
	fb.mu.Unlock()
	writeMessage(w, nil, "Profile photo removed")
}

func (fb *FakeBackend) handleWallet(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := currentUser(r).user.ID
	earned := decimal.Zero
	for _, tx := range fb.txs[id] {
		if tx.Type == models.TxReward {
			earned = earned.Add(tx.Amount)
		}
	}
	writeData(w, models.WalletBalance{
		Balance:       fb.balances[id],
		TotalEarned:   earned,
		TotalRedeemed: fb.redeemed[id],
	})
}

func (fb *FakeBackend) handleTransactions(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	txs := append([]models.Transaction(nil), fb.txs[currentUser(r).user.ID]...)
	fb.mu.Unlock()
	writePage(w, r, txs)
}

func (fb *FakeBackend) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req models.RedeemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please enter a valid amount")
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := currentUser(r).user.ID

	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if prev, ok := fb.idempotency[key]; ok {
			writeMessage(w, prev, "Amount redeemed successfully")
			return
		}
	}

	switch {
	case !req.Amount.IsPositive():
		writeError(w, http.StatusBadRequest, "Please enter a valid amount")
		return
	case req.Amount.LessThan(fb.rewards.MinimumRedemptionAmount):
		writeError(w, http.StatusBadRequest, "Minimum redemption amount is ₹"+fb.rewards.MinimumRedemptionAmount.String())
		return
	case req.Amount.GreaterThan(fb.balances[id]):
		writeError(w, http.StatusBadRequest, "Insufficient balance")
		return
	}

	fb.balances[id] = fb.balances[id].Sub(req.Amount)
	fb.redeemed[id] = fb.redeemed[id].Add(req.Amount)
	orderID := fb.id("PM")
	tx := models.Transaction{
		ID:               fb.id("t"),
		Type:             models.TxRedemption,
		Amount:           req.Amount.Neg(),
		Status:           models.TxCompleted,
		Description:      "Redeemed to storefront",
		ProtomartOrderID: orderID,
		CreatedAt:        time.Now().UTC(),
	}
	fb.txs[id] = append([]models.Transaction{tx}, fb.txs[id]...)

	result := models.RedeemResult{Transaction: &tx, NewBalance: fb.balances[id], ProtomartOrderID: orderID}
	if key != "" {
		fb.idempotency[key] = result
	}
	writeMessage(w, result, "Amount redeemed successfully")
}

func (fb *FakeBackend) handleStorefrontBalance(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeData(w, models.StorefrontBalance{Balance: fb.redeemed[currentUser(r).user.ID], Currency: "INR"})
}

func (fb *FakeBackend) handlePhotos(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	out := make([]models.Photo, 0, len(fb.photos))
	placeID, city := r.URL.Query().Get("placeId"), r.URL.Query().Get("city")
	for _, p := range fb.photos {
		if p.ApprovalStatus != models.ApprovalApproved {
			continue
		}
		if placeID != "" && p.PlaceID.ID != placeID {
			continue
		}
		if city != "" && !strings.EqualFold(p.City, city) {
			continue
		}
		out = append(out, p)
	}
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) handleMyPhotos(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	id := currentUser(r).user.ID
	status := r.URL.Query().Get("status")
	out := make([]models.Photo, 0)
	for _, p := range fb.pending {
		if p.UserID.ID == id && (status == "" || status == models.ApprovalPending) {
			out = append(out, models.Photo{
				ID: p.ID, UserID: p.UserID, PlaceName: p.PlaceName, City: p.City, Location: p.Location,
				OriginalURL: p.OriginalURL, FileSize: p.FileSize,
				ApprovalStatus: models.ApprovalPending, CreatedAt: p.CreatedAt,
			})
		}
	}
	for _, p := range fb.photos {
		if p.UserID.ID == id && (status == "" || status == p.ApprovalStatus) {
			out = append(out, p)
		}
	}
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) handlePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, p := range fb.photos {
		if p.ID == id {
			writeData(w, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Photo not found")
}

func (fb *FakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	files := r.MultipartForm.File["photo"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "Please upload at least one photo")
		return
	}
	lat, errLat := strconv.ParseFloat(r.FormValue("latitude"), 64)
	lon, errLon := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "Location is required")
		return
	}
	placeName := r.FormValue("placeName")
	for _, fh := range files {
		if err := validation.ValidateImageFile(fh.Header.Get("Content-Type"), fh.Size); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	u := currentUser(r)
	out := make([]models.Photo, 0, len(files))
	for _, fh := range files {
		p := fb.addPendingLocked(u.user.ID, placeName, "upload")
		loc := models.NewGeoPoint(lat, lon)
		fb.pending[len(fb.pending)-1].Location = loc
		fb.pending[len(fb.pending)-1].FileSize = fh.Size
		out = append(out, models.Photo{
			ID:             p.ID,
			UserID:         p.UserID,
			PlaceID:        models.Ref{ID: r.FormValue("placeId")},
			PlaceName:      placeName,
			Location:       loc,
			OriginalURL:    p.OriginalURL,
			FileName:       fh.Filename,
			FileSize:       fh.Size,
			Source:         "upload",
			ApprovalStatus: models.ApprovalPending,
			CreatedAt:      p.CreatedAt,
		})
	}
	writeEnvelope(w, http.StatusCreated, envelope{Success: true, Data: out, Message: "Photos uploaded successfully"})
}

func (fb *FakeBackend) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	owner := currentUser(r).user.ID
	for i, p := range fb.pending {
		if p.ID == id && p.UserID.ID == owner {
			fb.pending = append(fb.pending[:i], fb.pending[i+1:]...)
			writeMessage(w, nil, "Photo deleted")
			return
		}
	}
	for i, p := range fb.photos {
		if p.ID == id && p.UserID.ID == owner {
			fb.photos = append(fb.photos[:i], fb.photos[i+1:]...)
			writeMessage(w, nil, "Photo deleted")
			return
		}
	}
	writeError(w, http.StatusNotFound, "Photo not found")
}

func (fb *FakeBackend) handleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.photos {
		if fb.photos[i].ID != id {
			continue
		}
		user := currentUser(r).user.ID
		if fb.likes[id] == nil {
			fb.likes[id] = make(map[string]bool)
		}
		liked := !fb.likes[id][user]
		fb.likes[id][user] = liked
		if liked {
			fb.photos[i].Likes++
		} else {
			fb.photos[i].Likes--
		}
		writeData(w, map[string]any{"likes": fb.photos[i].Likes, "liked": liked})
		return
	}
	writeError(w, http.StatusNotFound, "Photo not found")
}

func (fb *FakeBackend) handlePlacesWithPhotos(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]models.Place, 0, len(fb.places))
	for _, pl := range fb.places {
		if pl.PhotoCount > 0 {
			out = append(out, pl)
		}
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	writeData(w, out)
}

func (fb *FakeBackend) handlePlaces(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	city := r.URL.Query().Get("city")
	fb.mu.Lock()
	out := make([]models.Place, 0, len(fb.places))
	for _, pl := range fb.places {
		if search != "" && !strings.Contains(strings.ToLower(pl.Name), search) {
			continue
		}
		if city != "" && !strings.EqualFold(pl.City, city) {
			continue
		}
		out = append(out, pl)
	}
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) handlePlacesMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var b models.MapBounds
	var err error
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"north", &b.North}, {"south", &b.South}, {"east", &b.East}, {"west", &b.West}} {
		if *f.dst, err = strconv.ParseFloat(q.Get(f.name), 64); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid bounds")
			return
		}
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]models.Place, 0)
	for _, pl := range fb.places {
		if b.Contains(pl.Location) {
			out = append(out, pl)
		}
	}
	writeData(w, out)
}

func (fb *FakeBackend) handlePlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, pl := range fb.places {
		if pl.ID == id {
			writeData(w, pl)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Place not found")
}

func (fb *FakeBackend) handlePlacePhotos(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	out := make([]models.Photo, 0)
	for _, p := range fb.photos {
		if p.PlaceID.ID == id && p.ApprovalStatus == models.ApprovalApproved {
			out = append(out, p)
		}
	}
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) publishedBlogs(match func(models.Blog) bool) []models.Blog {
	out := make([]models.Blog, 0, len(fb.blogs))
	for _, b := range fb.blogs {
		if match(b) {
			out = append(out, b)
		}
	}
	return out
}

func (fb *FakeBackend) handleBlogs(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	out := fb.publishedBlogs(func(b models.Blog) bool { return b.Status == models.BlogPublished })
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) handleBlogsByPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeId")
	fb.mu.Lock()
	out := fb.publishedBlogs(func(b models.Blog) bool {
		return b.Status == models.BlogPublished && b.PlaceID.ID == placeID
	})
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) handleMyBlogs(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	id := currentUser(r).user.ID
	out := fb.publishedBlogs(func(b models.Blog) bool { return b.AuthorID.ID == id })
	fb.mu.Unlock()
	writePage(w, r, out)
}

func (fb *FakeBackend) handleBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.blogs {
		if fb.blogs[i].ID == id {
			fb.blogs[i].Views++
			writeData(w, fb.blogs[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Blog not found")
}

// blogFromForm reads a multipart blog body.
func blogFromForm(r *http.Request) (models.Blog, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return models.Blog{}, false
	}
	b := models.Blog{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		PlaceID: models.Ref{ID: r.FormValue("placeId")},
		Status:  r.FormValue("status"),
	}
	if tags := r.FormValue("tags"); tags != "" {
		b.Tags = strings.Split(tags, ",")
	}
	for _, fh := range r.MultipartForm.File["coverImages"] {
		b.CoverImages = append(b.CoverImages, "https://cdn.geosnap.test/blogs/"+fh.Filename)
	}
	if len(b.CoverImages) > 0 {
		b.CoverImage = b.CoverImages[0]
	}
	return b, true
}

func (fb *FakeBackend) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	b, ok := blogFromForm(r)
	if !ok || b.Title == "" || b.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	u := currentUser(r).user
	b.ID = fb.id("b")
	b.AuthorID = models.Ref{ID: u.ID, Name: u.Name}
	if b.Status == "" {
		b.Status = models.BlogDraft
	}
	b.CreatedAt = time.Now().UTC()
	if b.Status == models.BlogPublished {
		now := b.CreatedAt
		b.PublishedAt = &now
	}
	fb.blogs = append(fb.blogs, b)
	writeEnvelope(w, http.StatusCreated, envelope{Success: true, Data: b})
}

// ownBlog returns the index of the caller's blog id, writing an error when
// there is none.
func (fb *FakeBackend) ownBlog(w http.ResponseWriter, r *http.Request) int {
	id := chi.URLParam(r, "id")
	for i, b := range fb.blogs {
		if b.ID != id {
			continue
		}
		if b.AuthorID.ID != currentUser(r).user.ID {
			writeError(w, http.StatusForbidden, "Not authorized to modify this blog")
			return -1
		}
		return i
	}
	writeError(w, http.StatusNotFound, "Blog not found")
	return -1
}

func (fb *FakeBackend) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	in, ok := blogFromForm(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.ownBlog(w, r)
	if i < 0 {
		return
	}
	b := &fb.blogs[i]
	b.Title, b.Content, b.Tags = in.Title, in.Content, in.Tags
	if in.PlaceID.ID != "" {
		b.PlaceID = in.PlaceID
	}
	if len(in.CoverImages) > 0 {
		b.CoverImages, b.CoverImage = in.CoverImages, in.CoverImage
	}
	if in.Status != "" {
		b.Status = in.Status
	}
	writeData(w, *b)
}

func (fb *FakeBackend) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.ownBlog(w, r)
	if i < 0 {
		return
	}
	fb.blogs = append(fb.blogs[:i], fb.blogs[i+1:]...)
	writeMessage(w, nil, "Blog deleted")
}

func (fb *FakeBackend) handlePublishBlog(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.ownBlog(w, r)
	if i < 0 {
		return
	}
	now := time.Now().UTC()
	fb.blogs[i].Status = models.BlogPublished
	fb.blogs[i].PublishedAt = &now
	writeData(w, fb.blogs[i])
}

func (fb *FakeBackend) handleValidateLink(w http.ResponseWriter, r *http.Request) {
	var req models.AlbumLinkRequest
	if err := decodeBody(r, &req); err != nil || !validation.IsGooglePhotosLink(req.ShareLink) {
		writeError(w, http.StatusBadRequest, "Invalid Google Photos link")
		return
	}
	writeData(w, models.AlbumLinkCheck{Valid: true, AlbumTitle: "Shared album", PhotoCount: 3})
}

func (fb *FakeBackend) handleSync(w http.ResponseWriter, r *http.Request) {
	var req models.AlbumLinkRequest
	if err := decodeBody(r, &req); err != nil || !validation.IsGooglePhotosLink(req.ShareLink) {
		writeError(w, http.StatusBadRequest, "Invalid Google Photos link")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	u := currentUser(r).user
	const albumSize = 3
	for range albumSize {
		fb.addPendingLocked(u.ID, "Shared album", "google_photos")
	}
	now := time.Now().UTC()
	fb.synced.TotalSynced += albumSize
	fb.synced.PendingApproval += albumSize
	fb.synced.LastSyncAt = &now
	writeMessage(w, models.SyncResult{Synced: albumSize}, "Photos synced successfully")
}

func (fb *FakeBackend) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeData(w, fb.synced)
}

func (fb *FakeBackend) handleStats(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	stats := models.AdminStats{
		TotalUsers:        len(fb.usersByID),
		PendingPhotos:     len(fb.pending),
		TotalRewardsGiven: decimal.Zero,
	}
	for _, p := range fb.photos {
		if p.ApprovalStatus == models.ApprovalApproved {
			stats.ApprovedPhotos++
		}
	}
	for _, status := range fb.resolved {
		if status == models.ApprovalRejected {
			stats.RejectedPhotos++
		}
	}
	stats.TotalPhotos = stats.PendingPhotos + stats.ApprovedPhotos + stats.RejectedPhotos
	for _, txs := range fb.txs {
		for _, tx := range txs {
			if tx.Type == models.TxReward {
				stats.TotalRewardsGiven = stats.TotalRewardsGiven.Add(tx.Amount)
			}
		}
	}
	writeData(w, stats)
}

func (fb *FakeBackend) handlePending(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	items := append([]models.PendingPhoto(nil), fb.pending...)
	fb.mu.Unlock()
	writePage(w, r, items)
}

// takePending removes id from the queue. When it is not queued, it writes
// 409 for an already resolved photo and 404 otherwise.
func (fb *FakeBackend) takePending(w http.ResponseWriter, id string) (models.PendingPhoto, bool) {
	for i, p := range fb.pending {
		if p.ID == id {
			fb.pending = append(fb.pending[:i], fb.pending[i+1:]...)
			return p, true
		}
	}
	if status, ok := fb.resolved[id]; ok {
		writeError(w, http.StatusConflict, "Photo already "+status)
	} else {
		writeError(w, http.StatusNotFound, "Photo not found")
	}
	return models.PendingPhoto{}, false
}

func (fb *FakeBackend) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	p, ok := fb.takePending(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	reward := fb.rewards.PhotoApprovalReward
	if req.RewardAmount != nil {
		reward = *req.RewardAmount
	}
	fb.resolved[p.ID] = models.ApprovalApproved
	photo := models.Photo{
		ID:             p.ID,
		UserID:         p.UserID,
		PlaceName:      p.PlaceName,
		Location:       p.Location,
		OriginalURL:    p.OriginalURL,
		ApprovalStatus: models.ApprovalApproved,
		RewardAmount:   reward,
		CreatedAt:      p.CreatedAt,
	}
	fb.photos = append(fb.photos, photo)

	uploader := p.UserID.ID
	fb.balances[uploader] = fb.balances[uploader].Add(reward)
	tx := models.Transaction{
		ID:          fb.id("t"),
		Type:        models.TxReward,
		Amount:      reward,
		Status:      models.TxCompleted,
		Description: "Photo approved",
		PhotoID:     models.Ref{ID: p.ID},
		CreatedAt:   time.Now().UTC(),
	}
	fb.txs[uploader] = append([]models.Transaction{tx}, fb.txs[uploader]...)
	if p.Source == "google_photos" {
		fb.synced.PendingApproval--
		fb.synced.Approved++
	}

	writeMessage(w, models.ModerationResult{Photo: &photo, RewardAmount: reward}, "Photo approved")
}

func (fb *FakeBackend) handleReject(w http.ResponseWriter, r *http.Request) {
	var req models.RejectRequest
	if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.Reason) == "" {
		writeError(w, http.StatusBadRequest, "Rejection reason is required")
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	p, ok := fb.takePending(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	fb.resolved[p.ID] = models.ApprovalRejected
	if p.Source == "google_photos" {
		fb.synced.PendingApproval--
		fb.synced.Rejected++
	}
	photo := models.Photo{
		ID:              p.ID,
		UserID:          p.UserID,
		ApprovalStatus:  models.ApprovalRejected,
		RejectionReason: req.Reason,
		CreatedAt:       p.CreatedAt,
	}
	writeMessage(w, models.ModerationResult{Photo: &photo}, "Photo rejected")
}

func (fb *FakeBackend) handleGetRewards(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeData(w, fb.rewards)
}

func (fb *FakeBackend) handlePutRewards(w http.ResponseWriter, r *http.Request) {
	var rs models.RewardSettings
	if err := decodeBody(r, &rs); err != nil || !rs.PhotoApprovalReward.IsPositive() || !rs.MinimumRedemptionAmount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Invalid reward settings")
		return
	}
	fb.mu.Lock()
	fb.rewards = rs
	fb.mu.Unlock()
	writeMessage(w, rs, "Reward settings updated")
}

func (fb *FakeBackend) handleGetWatermark(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeData(w, fb.watermark)
}

func (fb *FakeBackend) handlePutWatermark(w http.ResponseWriter, r *http.Request) {
	var ws models.WatermarkSettings
	if err := decodeBody(r, &ws); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fb.mu.Lock()
	fb.watermark = ws
	fb.mu.Unlock()
	writeMessage(w, ws, "Watermark settings updated")
}
