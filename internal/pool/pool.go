// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Package pool serves random photo selections from cached, filtered
// asset sets.
//
// A CachedPool combines three layers:
//
//  1. A Loader fetches the raw asset set from Immich (all photos, one
//     album, one person, favorites, or memories).
//  2. Account filters reduce the raw set to displayable images
//     (archived state, date window, rating).
//  3. A Sampler draws the requested number of assets, uniformly or
//     biased toward recent captures.
//
// The filtered set is memoized in an assetcache.Store keyed by the
// loader, so repeated frame requests hit Immich at most once until the
// cache is invalidated.
package pool

import (
	"context"
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/assetcache"
	"github.com/XanderStrike/ImmichFrame/internal/filter"
	"github.com/XanderStrike/ImmichFrame/internal/logging"
	"github.com/XanderStrike/ImmichFrame/internal/metrics"
	"github.com/XanderStrike/ImmichFrame/internal/models"
	"github.com/XanderStrike/ImmichFrame/internal/sampler"
)

// Loader fetches the raw asset set for one pool variant.
type Loader interface {
	// Key identifies the pool, and doubles as its cache key.
	Key() string

	// LoadAssets retrieves the unfiltered asset set from the catalog.
	LoadAssets(ctx context.Context) ([]models.Asset, error)
}

// CachedPool is a pool of displayable assets with a memoized filtered
// set and random sampling. Safe for concurrent use.
type CachedPool struct {
	loader   Loader
	store    *assetcache.Store
	sampler  *sampler.Sampler
	settings filter.Settings
	bias     float64
}

// NewCachedPool assembles a pool from its collaborators. recencyBias
// of zero selects uniformly; a positive value favors recent photos.
func NewCachedPool(loader Loader, store *assetcache.Store, s *sampler.Sampler, settings filter.Settings, recencyBias float64) *CachedPool {
	return &CachedPool{
		loader:   loader,
		store:    store,
		sampler:  s,
		settings: settings,
		bias:     recencyBias,
	}
}

// Key returns the pool's identity, e.g. "all" or "album:<id>".
func (p *CachedPool) Key() string {
	return p.loader.Key()
}

// allAssets returns the memoized filtered asset set, loading and
// filtering on first access.
func (p *CachedPool) allAssets(ctx context.Context) ([]models.Asset, error) {
	return p.store.GetOrLoad(ctx, p.loader.Key(), func(ctx context.Context) ([]models.Asset, error) {
		start := time.Now()

		raw, err := p.loader.LoadAssets(ctx)
		if err != nil {
			metrics.PoolLoadErrors.WithLabelValues(p.loader.Key()).Inc()
			return nil, err
		}

		filtered := filter.Apply(raw, p.settings)

		metrics.PoolLoadDuration.WithLabelValues(p.loader.Key()).Observe(time.Since(start).Seconds())
		metrics.PoolAssetsFiltered.WithLabelValues(p.loader.Key()).Set(float64(len(filtered)))
		logging.Debug().
			Str("pool", p.loader.Key()).
			Int("raw", len(raw)).
			Int("filtered", len(filtered)).
			Dur("elapsed", time.Since(start)).
			Msg("Pool asset set populated")

		return filtered, nil
	})
}

// AssetCount returns the size of the filtered asset set, populating
// the cache if needed.
func (p *CachedPool) AssetCount(ctx context.Context) (int, error) {
	assets, err := p.allAssets(ctx)
	if err != nil {
		return 0, err
	}
	return len(assets), nil
}

// Assets returns up to requested distinct assets sampled from the
// filtered set. A zero or negative request yields an empty slice, and
// a request exceeding the set size returns the whole set in random
// order. The returned slice is the caller's to keep.
func (p *CachedPool) Assets(ctx context.Context, requested int) ([]models.Asset, error) {
	assets, err := p.allAssets(ctx)
	if err != nil {
		return nil, err
	}

	selected := p.sampler.Select(assets, requested, p.bias)
	metrics.AssetsServed.WithLabelValues(p.loader.Key()).Add(float64(len(selected)))
	return selected, nil
}

// Invalidate drops the pool's memoized asset set so the next request
// reloads from Immich.
func (p *CachedPool) Invalidate() {
	p.store.Invalidate(p.loader.Key())
}
