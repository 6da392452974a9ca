// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/geosnap/internal/config"
)

// ErrNotStored is returned by Storage.Load when the key has no value.
var ErrNotStored = errors.New("session: key not stored")

// Storage is durable client-side key-value storage. Save must not return
// until the value is durable or has failed.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// StoreType selects a Storage backend.
type StoreType string

const (
	// StoreMemory keeps the session in process memory only.
	StoreMemory StoreType = "memory"

	// StoreBadger persists the session in a BadgerDB directory.
	StoreBadger StoreType = "badger"
)

// OpenStorage opens the backend named by cfg.Store.
func OpenStorage(cfg config.SessionConfig) (Storage, error) {
	switch StoreType(cfg.Store) {
	case StoreBadger:
		return OpenBadgerStorage(cfg.Path)
	case StoreMemory, "":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Load returns a copy of the stored value.
func (s *MemoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotStored
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of value.
func (s *MemoryStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}
