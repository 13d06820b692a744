// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Package assetcache provides a keyed, single-flight memo store for
// filtered asset sets.
//
// Each key maps to a result cell that is computed at most once for the
// store's lifetime: the first caller runs the load function while
// concurrent callers for the same key block until that computation
// finishes and then share its result. A failed or cancelled load
// leaves the key unpopulated so a later call can retry.
//
// This is deliberately not golang.org/x/sync/singleflight: singleflight
// deduplicates only in-flight calls and forgets completed results,
// whereas pools need the computed set memoized until explicitly
// invalidated.
package assetcache

import (
	"context"
	"sync"

	"github.com/XanderStrike/ImmichFrame/internal/metrics"
	"github.com/XanderStrike/ImmichFrame/internal/models"
)

// LoadFunc computes the asset set for a key. It is invoked at most
// once per key unless the previous invocation failed.
type LoadFunc func(ctx context.Context) ([]models.Asset, error)

// cell holds one in-flight or completed computation.
type cell struct {
	done   chan struct{}
	assets []models.Asset
	err    error
}

// Store is an in-memory map from key to a lazily-initialized,
// single-flight-protected asset set. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	cells map[string]*cell
}

// New creates an empty store.
func New() *Store {
	return &Store{cells: make(map[string]*cell)}
}

// GetOrLoad returns the memoized asset set for key, computing it with
// load on first access. Concurrent callers for the same key share one
// computation.
//
// If load fails (including context cancellation) the key is removed
// before waiters are released, so the error is returned to everyone
// who joined this computation while the next call starts a fresh one.
// A waiter whose own context expires returns its context error without
// disturbing the computation.
func (s *Store) GetOrLoad(ctx context.Context, key string, load LoadFunc) ([]models.Asset, error) {
	s.mu.Lock()
	c, ok := s.cells[key]
	if ok {
		s.mu.Unlock()
		metrics.CacheHits.WithLabelValues(key).Inc()

		select {
		case <-c.done:
			return c.assets, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c = &cell{done: make(chan struct{})}
	s.cells[key] = c
	s.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(key).Inc()

	c.assets, c.err = load(ctx)
	if c.err != nil {
		s.mu.Lock()
		if s.cells[key] == c {
			delete(s.cells, key)
		}
		s.mu.Unlock()
	}
	close(c.done)

	return c.assets, c.err
}

// Invalidate drops the memoized set for key. The next GetOrLoad for
// that key recomputes. An in-flight computation is not interrupted;
// its joined waiters still receive its result.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.cells, key)
	s.mu.Unlock()
}

// Clear drops every memoized set.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cells = make(map[string]*cell)
	s.mu.Unlock()
}

// Len reports how many keys currently hold a cell (populated or
// in-flight).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cells)
}
