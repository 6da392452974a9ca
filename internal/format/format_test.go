// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package format

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCurrency(t *testing.T) {
	tests := map[string]string{
		"0":         "₹0.00",
		"5":         "₹5.00",
		"10.5":      "₹10.50",
		"999.999":   "₹1,000.00",
		"1000":      "₹1,000.00",
		"123456.5":  "₹1,23,456.50",
		"12345678":  "₹1,23,45,678.00",
		"-24.5":     "-₹24.50",
		"-100000.1": "-₹1,00,000.10",
	}
	for in, want := range tests {
		if got := Currency(decimal.RequireFromString(in)); got != want {
			t.Errorf("Currency(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "12,34,567",
		-1234567: "-12,34,567",
	}
	for in, want := range tests {
		if got := Number(in); got != want {
			t.Errorf("Number(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFileSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		-1:              "0 B",
		512:             "512 B",
		1536:            "1.5 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for in, want := range tests {
		if got := FileSize(in); got != want {
			t.Errorf("FileSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestCoordinates(t *testing.T) {
	if got := Coordinates(15.335, 76.46); got != "15.335000, 76.460000" {
		t.Errorf("Coordinates = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	short := "Sunset at Baga"
	if got := Truncate(short, 0); got != short {
		t.Errorf("short text changed: %q", got)
	}

	long := strings.Repeat("a", 150)
	got := Truncate(long, 0)
	if got != strings.Repeat("a", 100)+"..." {
		t.Errorf("Truncate default = %d chars", len(got))
	}

	// runes, not bytes
	if got := Truncate("₹₹₹₹", 2); got != "₹₹..." {
		t.Errorf("Truncate runes = %q", got)
	}
}

func TestTimes(t *testing.T) {
	if RelativeTime(time.Time{}) != "" || Date(time.Time{}) != "" || DateTime(time.Time{}) != "" {
		t.Error("zero time should format as empty")
	}
	if got := RelativeTime(time.Now().Add(-3 * time.Hour)); got != "3 hours ago" {
		t.Errorf("RelativeTime = %q", got)
	}
	d := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.Local)
	if got := Date(d); got != "Mar 4, 2026" {
		t.Errorf("Date = %q", got)
	}
	if got := DateTime(d); got != "Mar 4, 2026, 3:30 PM" {
		t.Errorf("DateTime = %q", got)
	}
}
