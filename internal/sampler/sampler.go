// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Package sampler selects a bounded number of assets from a candidate
// set, either uniformly or biased toward recently captured photos.
//
// # Uniform Mode
//
// With a recency bias of zero the sampler shuffles the candidate set
// and truncates, giving a uniform distribution over all subsets of the
// requested size.
//
// # Recency-Biased Mode
//
// With a positive bias each asset receives weight
//
//	w = exp(-bias * ageDays / 365)
//
// where ageDays is the age of the asset's capture date, clamped to
// zero for future-dated assets. Selection is weighted sampling without
// replacement: each round draws a point in [0, totalWeight), walks the
// cumulative weights, removes the selected candidate, and repeats.
// The weight is strictly positive for any finite age, so no asset is
// ever deterministically excluded, however large the bias.
package sampler

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/models"
)

// daysPerYear normalizes asset age so a bias of 1.0 means roughly
// "a year-old photo is e times less likely than one taken today".
const daysPerYear = 365.0

// Rand is the subset of math/rand used by the sampler. Injecting it
// keeps selection deterministic under test.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64

	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// Sampler picks assets from candidate sets. Safe for concurrent use;
// the underlying random source is guarded because math/rand sources
// are not.
type Sampler struct {
	mu  sync.Mutex
	rng Rand
}

// New creates a Sampler backed by the given random source. A nil
// source gets a time-seeded one.
func New(rng Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// Select returns up to count distinct assets drawn from assets without
// replacement. A recencyBias of zero (or less) selects uniformly;
// a positive bias favors recently captured assets. A negative or zero
// count yields an empty result, never an error.
func (s *Sampler) Select(assets []models.Asset, count int, recencyBias float64) []models.Asset {
	return s.selectAt(assets, count, recencyBias, time.Now())
}

// selectAt is Select with an explicit reference time for age
// computation, used by tests for reproducible weighting.
func (s *Sampler) selectAt(assets []models.Asset, count int, recencyBias float64, now time.Time) []models.Asset {
	if count <= 0 || len(assets) == 0 {
		return []models.Asset{}
	}
	if count > len(assets) {
		count = len(assets)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if recencyBias <= 0 {
		return s.selectUniform(assets, count)
	}
	return s.selectWeighted(assets, count, recencyBias, now)
}

// selectUniform shuffles a copy of the candidate set and truncates.
func (s *Sampler) selectUniform(assets []models.Asset, count int) []models.Asset {
	shuffled := make([]models.Asset, len(assets))
	copy(shuffled, assets)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// selectWeighted performs weighted sampling without replacement using
// a cumulative walk over the remaining candidates.
func (s *Sampler) selectWeighted(assets []models.Asset, count int, bias float64, now time.Time) []models.Asset {
	candidates := make([]models.Asset, len(assets))
	copy(candidates, assets)

	weights := make([]float64, len(candidates))
	var total float64
	for i := range candidates {
		weights[i] = recencyWeight(candidates[i].TakenAt(), bias, now)
		total += weights[i]
	}

	selected := make([]models.Asset, 0, count)
	for len(selected) < count && len(candidates) > 0 {
		point := s.rng.Float64() * total

		// Non-strict comparison: a point landing exactly on a
		// cumulative boundary selects that candidate.
		idx := len(candidates) - 1
		var cum float64
		for i := range candidates {
			cum += weights[i]
			if point <= cum {
				idx = i
				break
			}
		}

		selected = append(selected, candidates[idx])
		total -= weights[idx]
		candidates = append(candidates[:idx], candidates[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return selected
}

// recencyWeight computes the exponential decay weight for an asset
// captured at takenAt. Future-dated assets clamp to age zero and get
// maximal weight. The result is always > 0 for finite inputs.
func recencyWeight(takenAt time.Time, bias float64, now time.Time) float64 {
	ageDays := now.Sub(takenAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-bias * ageDays / daysPerYear)
}
