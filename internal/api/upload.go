// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/geosnap/internal/client"
	"github.com/tomtom215/geosnap/internal/validation"
)

// Upload is one file to send as a multipart part.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// OpenUpload opens path for upload. The content type comes from the file
// extension, falling back to sniffing the first 512 bytes. The caller must
// close the returned file.
func OpenUpload(path string) (Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return Upload{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Upload{}, nil, err
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		ct = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return Upload{}, nil, err
		}
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}

	return Upload{
		FileName:    filepath.Base(path),
		ContentType: ct,
		Size:        info.Size(),
		Content:     f,
	}, f, nil
}

// checkImages validates image uploads before anything is read.
func checkImages(field string, files []Upload) error {
	for _, u := range files {
		if err := validation.ValidateImageFile(u.ContentType, u.Size); err != nil {
			return client.NewValidationError(field, "file", fmt.Sprintf("%s: %s", u.FileName, err.Error()))
		}
	}
	return nil
}

func addFiles(form *client.Form, field string, files []Upload) {
	for _, u := range files {
		form.File(client.FormFile{
			Field:       field,
			FileName:    u.FileName,
			ContentType: u.ContentType,
			Content:     u.Content,
		})
	}
}
