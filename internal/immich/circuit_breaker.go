// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

/*
circuit_breaker.go - Circuit Breaker for the Immich API

Wraps the Immich client with a circuit breaker so a down or struggling
photo server fails fast instead of stacking timeouts behind every pool
load. Uses sony/gobreaker with:
  - Failure threshold: 60% failure rate over at least 10 requests
  - Open duration: 60 seconds before probing again
  - Half-open: 3 trial requests before closing
*/

package immich

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/XanderStrike/ImmichFrame/internal/logging"
	"github.com/XanderStrike/ImmichFrame/internal/metrics"
	"github.com/XanderStrike/ImmichFrame/internal/models"
)

// Ensure BreakerClient implements Catalog
var _ Catalog = (*BreakerClient)(nil)

// BreakerClient wraps a Catalog with circuit breaker protection.
type BreakerClient struct {
	inner   Catalog
	breaker *gobreaker.CircuitBreaker[[]models.Asset]
}

// NewBreakerClient wraps client with a circuit breaker named name.
func NewBreakerClient(name string, inner Catalog) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    2 * time.Minute,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}

	return &BreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[[]models.Asset](settings),
	}
}

// stateValue maps a breaker state to its gauge value (0 closed,
// 1 half-open, 2 open).
func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// execute routes a call through the breaker and records the outcome.
func (b *BreakerClient) execute(fn func() ([]models.Asset, error)) ([]models.Asset, error) {
	assets, err := b.breaker.Execute(fn)
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.breaker.Name(), result).Inc()
	return assets, err
}

// Ping bypasses the breaker: health probes must observe the real
// server state even while the breaker is open.
func (b *BreakerClient) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

func (b *BreakerClient) RandomAssets(ctx context.Context, count int) ([]models.Asset, error) {
	return b.execute(func() ([]models.Asset, error) {
		return b.inner.RandomAssets(ctx, count)
	})
}

func (b *BreakerClient) AlbumAssets(ctx context.Context, albumID string) ([]models.Asset, error) {
	return b.execute(func() ([]models.Asset, error) {
		return b.inner.AlbumAssets(ctx, albumID)
	})
}

func (b *BreakerClient) PersonAssets(ctx context.Context, personID string) ([]models.Asset, error) {
	return b.execute(func() ([]models.Asset, error) {
		return b.inner.PersonAssets(ctx, personID)
	})
}

func (b *BreakerClient) FavoriteAssets(ctx context.Context) ([]models.Asset, error) {
	return b.execute(func() ([]models.Asset, error) {
		return b.inner.FavoriteAssets(ctx)
	})
}

func (b *BreakerClient) MemoryAssets(ctx context.Context, day time.Time) ([]models.Asset, error) {
	return b.execute(func() ([]models.Asset, error) {
		return b.inner.MemoryAssets(ctx, day)
	})
}
