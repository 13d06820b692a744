// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Package filter narrows a raw asset set to the assets an account wants
// on its frame.
//
// All predicates are conjunctive, so application order never changes
// the result. Filtering is pure: given identical inputs it produces
// identical output and never mutates the input slice.
package filter

import (
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/models"
)

// Settings holds the account-level criteria applied to every pool.
// The zero value admits all images that are not archived.
type Settings struct {
	// ShowArchived includes archived assets when true. Default false.
	ShowArchived bool

	// ImagesUntilDate is an inclusive upper bound on the asset capture
	// date. Nil means no upper bound.
	ImagesUntilDate *time.Time

	// ImagesFromDate is an inclusive lower bound on the asset capture
	// date. Takes precedence over ImagesFromDays when both are set.
	ImagesFromDate *time.Time

	// ImagesFromDays bounds assets to the last N days when
	// ImagesFromDate is unset. Zero means no relative bound.
	ImagesFromDays int

	// Rating keeps only assets whose EXIF star rating matches exactly.
	// Nil disables the rating filter.
	Rating *int
}

// lowerBound resolves the effective inclusive lower date bound.
// ImagesFromDate wins over ImagesFromDays.
func (s Settings) lowerBound(now time.Time) (time.Time, bool) {
	if s.ImagesFromDate != nil {
		return *s.ImagesFromDate, true
	}
	if s.ImagesFromDays > 0 {
		return now.AddDate(0, 0, -s.ImagesFromDays), true
	}
	return time.Time{}, false
}

// Apply returns the assets matching the account criteria, evaluated
// against the current wall clock. Non-IMAGE assets are excluded
// unconditionally. An empty result is not an error.
func Apply(assets []models.Asset, s Settings) []models.Asset {
	return ApplyAt(assets, s, time.Now())
}

// ApplyAt is Apply with an explicit reference time for the
// ImagesFromDays relative bound. Exposed for reproducible filtering.
func ApplyAt(assets []models.Asset, s Settings, now time.Time) []models.Asset {
	lower, hasLower := s.lowerBound(now)

	matched := make([]models.Asset, 0, len(assets))
	for i := range assets {
		a := &assets[i]
		if a.Type != models.AssetTypeImage {
			continue
		}
		if a.IsArchived && !s.ShowArchived {
			continue
		}

		takenAt := a.TakenAt()
		if s.ImagesUntilDate != nil && takenAt.After(*s.ImagesUntilDate) {
			continue
		}
		if hasLower && takenAt.Before(lower) {
			continue
		}

		if s.Rating != nil {
			if a.ExifInfo == nil || a.ExifInfo.Rating == nil || *a.ExifInfo.Rating != *s.Rating {
				continue
			}
		}

		matched = append(matched, *a)
	}
	return matched
}
