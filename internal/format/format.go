// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package format renders amounts, times, sizes and coordinates for display.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultTruncate is the length Truncate cuts descriptions to.
const DefaultTruncate = 100

// Currency formats an amount in rupees with Indian digit grouping and two
// decimals: ₹1,23,456.50. Negative amounts get a leading minus.
func Currency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// Number formats n with Indian digit grouping: 12,34,567.
func Number(n int64) string {
	if n < 0 {
		return "-" + groupIndian(fmt.Sprint(-n))
	}
	return groupIndian(fmt.Sprint(n))
}

// groupIndian groups the last three digits, then pairs: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// RelativeTime formats t relative to now, e.g. "3 hours ago". The zero time
// formats as "".
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Date formats t as "Jan 2, 2006". The zero time formats as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}

// DateTime formats t as "Jan 2, 2006, 3:04 PM". The zero time formats as "".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}

// FileSize formats a byte count in binary units, e.g. "1.5 MiB".
func FileSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

// Coordinates formats a latitude and longitude with six decimals.
func Coordinates(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

// Truncate shortens s to max runes and appends "...". A non-positive max
// means DefaultTruncate.
func Truncate(s string, max int) string {
	if max <= 0 {
		max = DefaultTruncate
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
