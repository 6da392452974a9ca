// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is. Every error returned by this package and
// by the flows built on it matches exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("authentication required")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
)

// Kind classifies an APIError.
type Kind int

// APIError kinds.
const (
	KindServer Kind = iota
	KindAuth
	KindNotFound
	KindConflict
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "server"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuth:
		return ErrAuth
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}

// kindForStatus maps a non-2xx status to its error kind.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}

// ValidationError is a local pre-flight failure. It never reaches the network.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// APIError is a response the backend answered with a failure, either a
// non-2xx status or a 2xx envelope with success=false.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Code       string
	Method     string
	Route      string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Route, e.StatusCode, msg)
}

// Is matches the sentinel for the error's kind.
func (e *APIError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NetworkError means no usable response was received: connection refused,
// timeout, an open circuit breaker or an undecodable body.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is matches ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// UserMessage returns the text to show a user for err: the local validation
// message or the backend's own message when there is one, else fallback.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	var aerr *APIError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	return fallback
}

// IsRetryable reports whether repeating the same action may succeed:
// network failures and 5xx responses.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var aerr *APIError
	return errors.As(err, &aerr) && aerr.StatusCode >= 500
}
