// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

/*
variants.go - Pool Loader Variants

One Loader per way of scoping the photo set: the whole library, a
single album, a recognized person, favorites, or today's memories.
Loader keys name the variant and its parameter so each gets its own
cache slot.
*/

package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/immich"
	"github.com/XanderStrike/ImmichFrame/internal/models"
)

// randomFetchSize is how many assets the all-photos loader requests
// from Immich's random search in one shot.
const randomFetchSize = 1000

// AllAssetsLoader loads a random slice of the whole library.
type AllAssetsLoader struct {
	Catalog immich.Catalog
}

func (l *AllAssetsLoader) Key() string { return "all" }

func (l *AllAssetsLoader) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	return l.Catalog.RandomAssets(ctx, randomFetchSize)
}

// AlbumLoader loads the contents of one album.
type AlbumLoader struct {
	Catalog immich.Catalog
	AlbumID string
}

func (l *AlbumLoader) Key() string { return fmt.Sprintf("album:%s", l.AlbumID) }

func (l *AlbumLoader) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	return l.Catalog.AlbumAssets(ctx, l.AlbumID)
}

// PersonLoader loads assets featuring one recognized person.
type PersonLoader struct {
	Catalog  immich.Catalog
	PersonID string
}

func (l *PersonLoader) Key() string { return fmt.Sprintf("person:%s", l.PersonID) }

func (l *PersonLoader) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	return l.Catalog.PersonAssets(ctx, l.PersonID)
}

// FavoritesLoader loads assets the user marked as favorites.
type FavoritesLoader struct {
	Catalog immich.Catalog
}

func (l *FavoritesLoader) Key() string { return "favorites" }

func (l *FavoritesLoader) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	return l.Catalog.FavoriteAssets(ctx)
}

// MemoriesLoader loads the "on this day" assets for the current date.
// The key carries the date so yesterday's memories age out of the
// cache naturally at midnight.
type MemoriesLoader struct {
	Catalog immich.Catalog

	// Now is the clock used to pick the memory date. Nil means
	// time.Now.
	Now func() time.Time
}

func (l *MemoriesLoader) day() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *MemoriesLoader) Key() string {
	return fmt.Sprintf("memories:%s", l.day().Format("2006-01-02"))
}

func (l *MemoriesLoader) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	return l.Catalog.MemoryAssets(ctx, l.day())
}

// Compile-time checks that every variant satisfies Loader.
var (
	_ Loader = (*AllAssetsLoader)(nil)
	_ Loader = (*AlbumLoader)(nil)
	_ Loader = (*PersonLoader)(nil)
	_ Loader = (*FavoritesLoader)(nil)
	_ Loader = (*MemoriesLoader)(nil)
)
