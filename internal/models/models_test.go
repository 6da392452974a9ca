// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func TestRefAcceptsIDOrObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantName string
	}{
		{"bare id", `"64f1c2"`, "64f1c2", ""},
		{"populated", `{"_id":"64f1c2","name":"Asha","email":"asha@example.com"}`, "64f1c2", "Asha"},
		{"null", `null`, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if r.ID != tt.wantID || r.Name != tt.wantName {
				t.Errorf("got %+v", r)
			}
		})
	}
}

func TestTransactionDecode(t *testing.T) {
	raw := `{"_id":"t1","type":"reward","amount":15.5,"status":"completed",
		"photoId":{"_id":"p9","title":"Sunset"},"createdAt":"2026-03-01T10:00:00Z"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("15.5")) {
		t.Errorf("Amount = %s", tx.Amount)
	}
	if tx.Type != TxReward || tx.Status != TxCompleted {
		t.Errorf("type/status = %s/%s, want reward/completed", tx.Type, tx.Status)
	}
	if tx.RelatedPhotoID() != "p9" {
		t.Errorf("RelatedPhotoID = %q", tx.RelatedPhotoID())
	}
	if tx.CreatedAt.Year() != 2026 {
		t.Errorf("CreatedAt = %v", tx.CreatedAt)
	}
}

func TestAmountsEncodeAsNumbers(t *testing.T) {
	body, err := json.Marshal(RedeemRequest{Amount: decimal.RequireFromString("25.00")})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"amount":25}` {
		t.Errorf("body = %s, want {\"amount\":25}", body)
	}
}

func TestApproveRequestOmitsReward(t *testing.T) {
	body, err := json.Marshal(ApproveRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{}` {
		t.Errorf("body = %s, want {}", body)
	}

	reward := decimal.NewFromInt(40)
	body, err = json.Marshal(ApproveRequest{RewardAmount: &reward})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"rewardAmount":40`) {
		t.Errorf("body = %s", body)
	}
}

func TestPaginationHasMore(t *testing.T) {
	var nilPage *Pagination
	if nilPage.HasMore() {
		t.Error("nil pagination should not have more")
	}
	if !(&Pagination{CurrentPage: 1, TotalPages: 2}).HasMore() {
		t.Error("page 1 of 2 should have more")
	}
	if (&Pagination{CurrentPage: 2, TotalPages: 2}).HasMore() {
		t.Error("page 2 of 2 should not have more")
	}
}

func TestPageQueryNormalize(t *testing.T) {
	q := PageQuery{}.Normalize()
	if q.Page != 1 || q.Limit != 20 {
		t.Errorf("Normalize = %+v, want page 1 limit 20", q)
	}
	q = PageQuery{Page: 3, Limit: 5}.Normalize()
	if q.Page != 3 || q.Limit != 5 {
		t.Errorf("Normalize kept = %+v", q)
	}
}

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		user *User
		want bool
	}{
		{nil, false},
		{&User{Role: RoleUser}, false},
		{&User{Role: RoleAdmin}, true},
		{&User{Role: RoleSuperAdmin}, true},
	}
	for _, tt := range tests {
		if got := tt.user.IsAdmin(); got != tt.want {
			t.Errorf("IsAdmin(%+v) = %v, want %v", tt.user, got, tt.want)
		}
	}
}

func TestGeoPointAndBounds(t *testing.T) {
	p := NewGeoPoint(15.552, 73.751)
	if p.Lat() != 15.552 || p.Lon() != 73.751 {
		t.Errorf("lat/lon = %v/%v", p.Lat(), p.Lon())
	}
	if p.String() != "15.552000, 73.751000" {
		t.Errorf("String = %q", p.String())
	}

	india := MapBounds{North: 35, South: 6, East: 97, West: 68}
	if !india.Contains(p) {
		t.Error("Goa should be inside India bounds")
	}
	pacific := MapBounds{North: 10, South: -10, East: -170, West: 170}
	if !pacific.Contains(NewGeoPoint(0, 179)) || !pacific.Contains(NewGeoPoint(0, -175)) {
		t.Error("antimeridian bounds should contain both sides")
	}
	if pacific.Contains(NewGeoPoint(0, 0)) {
		t.Error("antimeridian bounds should not contain 0,0")
	}
}

func TestPendingPhotoWhere(t *testing.T) {
	tests := []struct {
		p    PendingPhoto
		want string
	}{
		{PendingPhoto{PlaceName: "Baga Beach", City: "Goa"}, "Baga Beach, Goa"},
		{PendingPhoto{PlaceName: "Goa", City: "Goa"}, "Goa"},
		{PendingPhoto{City: "Jaipur"}, "Jaipur"},
	}
	for _, tt := range tests {
		if got := tt.p.Where(); got != tt.want {
			t.Errorf("Where() = %q, want %q", got, tt.want)
		}
	}
}
