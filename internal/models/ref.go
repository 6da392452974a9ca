// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Ref is a reference to another document. The backend sends either the bare
// id or the populated document; only the commonly displayed fields are kept.
type Ref struct {
	ID           string `json:"_id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	City         string `json:"city,omitempty"`
	Title        string `json:"title,omitempty"`
}

// UnmarshalJSON accepts "id", {"_id": "id", ...} or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// Label returns the best human-readable name for the referenced document.
func (r Ref) Label() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Title != "":
		return r.Title
	default:
		return r.ID
	}
}
