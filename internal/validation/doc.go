// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

// Package validation provides input validation for the Geosnap client.
//
// Two layers live here:
//
//   - Struct validation using go-playground/validator v10 with a thread-safe
//     singleton, Geosnap-specific tags and human-readable messages. Request
//     models (watermark settings, reward settings, registration) carry
//     `validate` tags and are checked before anything is sent to the backend.
//   - Standalone field checks for form-style input: email, phone, PIN code,
//     password, image uploads, blog content and Google Photos album links.
//
// # Custom Tags
//
//   - phone10: exactly ten ASCII digits
//   - pincode: exactly six ASCII digits
//   - gphotos_link: a Google Photos album share link
//
// decimal.Decimal fields are validated as float64, so numeric tags such as
// `gte=0` and `lte=100` work on money amounts.
//
// # Quick Start
//
//	settings := models.WatermarkSettings{FontSize: 24, Opacity: 0.5}
//	if verr := validation.ValidateStruct(&settings); verr != nil {
//	    return verr // "fontSize must be at least 10"
//	}
//
// Field names in messages are the JSON names, matching what the backend
// reports for the same field.
package validation
