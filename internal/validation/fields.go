// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// MaxImageSize is the largest photo the backend accepts.
const MaxImageSize = 50 * 1024 * 1024

// MinBlogContentLength is counted after HTML tags are stripped.
const MinBlogContentLength = 50

// MinPasswordLength matches the backend's registration rule.
const MinPasswordLength = 6

var (
	emailPattern   = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	pinCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	googlePhotosPatterns = []*regexp.Regexp{
		regexp.MustCompile(`photos\.app\.goo\.gl/[a-zA-Z0-9]+`),
		regexp.MustCompile(`photos\.google\.com/share/[a-zA-Z0-9]+`),
		regexp.MustCompile(`photos\.google\.com/album/[a-zA-Z0-9]+`),
	}

	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/heic": true,
	}
)

// Field check errors. Messages are shown to users as-is.
//
//nolint:staticcheck // user-facing sentences
var (
	ErrInvalidImageType    = errors.New("Invalid file type. Only JPEG, PNG, and HEIC images are allowed.")
	ErrImageTooLarge       = fmt.Errorf("File size must be less than %s.", humanize.IBytes(MaxImageSize))
	ErrBlogContentTooShort = fmt.Errorf("Content must be at least %d characters.", MinBlogContentLength)
	ErrInvalidAmount       = errors.New("Please enter a valid amount")
	ErrAmountOutOfRange    = errors.New("Amount is too large")
)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone reports whether s is a ten digit phone number.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsPinCode reports whether s is a six digit postal PIN code.
func IsPinCode(s string) bool {
	return pinCodePattern.MatchString(s)
}

// IsPassword reports whether s is long enough to register with.
func IsPassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// IsURL reports whether s parses as an absolute URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// IsGooglePhotosLink reports whether link points at a shared Google Photos album.
func IsGooglePhotosLink(link string) bool {
	for _, p := range googlePhotosPatterns {
		if p.MatchString(link) {
			return true
		}
	}
	return false
}

// ValidateImageFile checks an upload's declared content type and size.
func ValidateImageFile(contentType string, size int64) error {
	if !allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))] {
		return ErrInvalidImageType
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// StripTags removes anything that looks like an HTML tag.
func StripTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// ValidateBlogContent requires at least MinBlogContentLength characters of
// text once markup is removed.
func ValidateBlogContent(content string) error {
	clean := strings.TrimSpace(StripTags(content))
	if utf8.RuneCountInString(clean) < MinBlogContentLength {
		return ErrBlogContentTooShort
	}
	return nil
}

// SanitizeInput drops angle brackets and surrounding whitespace.
func SanitizeInput(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// Amount bounds enforced by ParseAmount.
const (
	// MaxAmountScale is the most decimal places an amount may carry.
	MaxAmountScale = 8
	// MaxAmountDigits is the most integer digits an amount may carry.
	MaxAmountDigits = 15
)

// ParseAmount parses a user-entered amount. Input that does not parse, or
// is finer than MaxAmountScale decimal places, gives ErrInvalidAmount.
// Input with more than MaxAmountDigits integer digits gives
// ErrAmountOutOfRange together with the parsed value, whose sign is still
// safe to inspect; comparing or printing it is not.
func ParseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	exp := int64(amount.Exponent())
	if exp < -MaxAmountScale {
		return decimal.Zero, ErrInvalidAmount
	}
	if int64(amount.NumDigits())+exp > MaxAmountDigits {
		return amount, ErrAmountOutOfRange
	}
	return amount, nil
}

// ValidateAmount parses a user-entered amount and checks it against an
// inclusive [min, max] range. A zero max means no upper bound.
func ValidateAmount(input string, min, max decimal.Decimal) (decimal.Decimal, error) {
	amount, err := ParseAmount(input)
	if errors.Is(err, ErrAmountOutOfRange) {
		switch {
		case amount.IsNegative():
			return decimal.Zero, fmt.Errorf("Amount must be at least ₹%s", min.String())
		case !max.IsZero():
			return decimal.Zero, fmt.Errorf("Amount cannot exceed ₹%s", max.String())
		}
		return decimal.Zero, err
	}
	if err != nil {
		return decimal.Zero, err
	}
	if amount.LessThan(min) {
		return amount, fmt.Errorf("Amount must be at least ₹%s", min.String())
	}
	if !max.IsZero() && amount.GreaterThan(max) {
		return amount, fmt.Errorf("Amount cannot exceed ₹%s", max.String())
	}
	return amount, nil
}
