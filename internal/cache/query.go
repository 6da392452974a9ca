// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
)

// Status is the fetch state of a query entry.
type Status string

// Entry statuses.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is a snapshot of one cached query.
type Entry struct {
	Data      any
	Status    Status
	Err       error
	FetchedAt time.Time
}

type queryEntry struct {
	Entry
	stale bool
}

// QueryCache is a keyed cache of backend reads.
//
// Thread Safety: Safe for concurrent use. Fetch functions run without the
// lock held.
type QueryCache struct {
	mu        sync.Mutex
	staleTime time.Duration
	now       func() time.Time
	entries   map[string]*queryEntry
	// generation counts invalidations per resource so a fetch can tell
	// whether its resource was invalidated while it ran.
	generation map[string]uint64
	epoch      uint64
}

// NewQueryCache creates a cache whose entries are fresh for staleTime.
// A zero staleTime makes every Fetch go to the backend.
func NewQueryCache(staleTime time.Duration) *QueryCache {
	return &QueryCache{
		staleTime:  staleTime,
		now:        time.Now,
		entries:    make(map[string]*queryEntry),
		generation: make(map[string]uint64),
	}
}

// Key builds a cache key from a resource name and optional parameters.
// Without parameters the key is the resource name itself.
func Key(resource string, params ...any) string {
	if len(params) == 0 {
		return resource
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", resource, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", resource, hash[:8])
}

// ResourceOf returns the resource part of a key.
func ResourceOf(key string) string {
	resource, _, _ := strings.Cut(key, ":")
	return resource
}

// Fetch returns the cached value for key when it is fresh, and otherwise
// calls fn and caches its result.
func Fetch[T any](ctx context.Context, qc *QueryCache, key string, fn func(context.Context) (T, error)) (T, error) {
	resource := ResourceOf(key)

	qc.mu.Lock()
	if e, ok := qc.entries[key]; ok && qc.freshLocked(e) {
		if v, ok := e.Data.(T); ok {
			qc.mu.Unlock()
			metrics.RecordCacheLookup(resource, true)
			return v, nil
		}
	}
	e := qc.entryLocked(key)
	e.Status = StatusLoading
	gen, epoch := qc.generation[resource], qc.epoch
	qc.mu.Unlock()

	metrics.RecordCacheLookup(resource, false)
	v, err := fn(ctx)

	qc.mu.Lock()
	defer qc.mu.Unlock()
	e = qc.entryLocked(key)
	if err != nil {
		e.Status = StatusError
		e.Err = err
		return v, err
	}

	e.Data = v
	e.Status = StatusSuccess
	e.Err = nil
	e.FetchedAt = qc.now()
	e.stale = qc.generation[resource] != gen || qc.epoch != epoch
	if e.stale {
		logging.Debug().Str("key", key).Msg("Query result superseded by invalidation")
	}
	return v, nil
}

// freshLocked reports whether e can be served without refetching.
func (qc *QueryCache) freshLocked(e *queryEntry) bool {
	if e.Status != StatusSuccess || e.stale || qc.staleTime <= 0 {
		return false
	}
	return qc.now().Sub(e.FetchedAt) < qc.staleTime
}

func (qc *QueryCache) entryLocked(key string) *queryEntry {
	e, ok := qc.entries[key]
	if !ok {
		e = &queryEntry{Entry: Entry{Status: StatusIdle}}
		qc.entries[key] = e
	}
	return e
}

// Get returns a snapshot of key's entry.
func (qc *QueryCache) Get(key string) (Entry, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	e, ok := qc.entries[key]
	if !ok {
		return Entry{Status: StatusIdle}, false
	}
	return e.Entry, true
}

// IsStale reports whether the next Fetch of key will call the backend.
func (qc *QueryCache) IsStale(key string) bool {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	e, ok := qc.entries[key]
	return !ok || !qc.freshLocked(e)
}

// Invalidate drops every entry of the given resources so the next Fetch
// refetches. It returns the number of entries dropped.
func (qc *QueryCache) Invalidate(resources ...string) int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	dropped := 0
	for _, resource := range resources {
		qc.generation[resource]++
		for key := range qc.entries {
			if key == resource || strings.HasPrefix(key, resource+":") {
				delete(qc.entries, key)
				dropped++
			}
		}
		metrics.RecordCacheInvalidation(resource)
	}
	return dropped
}

// Clear drops every entry, e.g. on logout.
func (qc *QueryCache) Clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.entries = make(map[string]*queryEntry)
	qc.epoch++
}

// Len returns the number of entries.
func (qc *QueryCache) Len() int {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return len(qc.entries)
}
