// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/geosnap/internal/models"
)

// Request describes one backend call.
type Request struct {
	Method string
	// Path is relative to the base URL, e.g. "/photos/64f1c2".
	Path string
	// Route is the path template used for metrics and logs,
	// e.g. "/photos/{id}". Defaults to Path.
	Route string
	Query url.Values
	// Body is JSON-encoded when set. Ignored when Form is set.
	Body any
	Form *Form
	// IdempotencyKey is sent as the Idempotency-Key header when set.
	IdempotencyKey string
}

func (r *Request) route() string {
	if r.Route != "" {
		return r.Route
	}
	return r.Path
}

// Response carries the envelope metadata of a successful call.
type Response struct {
	StatusCode int
	Message    string
	Pagination *models.Pagination
	RequestID  string
}

// Form is a multipart/form-data body.
type Form struct {
	fields []formField
	files  []FormFile
}

type formField struct {
	name  string
	value string
}

// FormFile is one file part of a Form.
type FormFile struct {
	Field       string
	FileName    string
	ContentType string
	Content     io.Reader
}

// NewForm returns an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// Field adds a text field. Empty values are skipped.
func (f *Form) Field(name, value string) *Form {
	if value != "" {
		f.fields = append(f.fields, formField{name: name, value: value})
	}
	return f
}

// File adds a file part.
func (f *Form) File(file FormFile) *Form {
	f.files = append(f.files, file)
	return f
}

// encode writes the form and returns the body and its content type.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, file := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(file.Field), escapeQuotes(file.FileName)))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", file.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// encodeBody returns the request body and content type for r.
func (r *Request) encodeBody() (io.Reader, string, error) {
	if r.Form != nil {
		buf, ct, err := r.Form.encode()
		if err != nil {
			return nil, "", err
		}
		return buf, ct, nil
	}
	if r.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// PageParams builds the page/limit query shared by list endpoints.
func PageParams(q models.PageQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", fmt.Sprint(q.Page))
	v.Set("limit", fmt.Sprint(q.Limit))
	return v
}
