// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Package metrics provides Prometheus metrics for the asset pool service.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format.
//
// Available metrics:
//
//   - immichframe_pool_load_duration_seconds (histogram, label: pool)
//   - immichframe_pool_load_errors_total (counter, labels: pool)
//   - immichframe_pool_assets_filtered (gauge, label: pool)
//   - immichframe_asset_cache_hits_total / _misses_total (counter, label: key)
//   - immichframe_assets_served_total (counter, label: pool)
//   - immichframe_circuit_breaker_state (gauge, label: name)
//   - immichframe_circuit_breaker_requests_total (counter, labels: name, result)
//   - immichframe_http_requests_total (counter, labels: method, endpoint, status)
//   - immichframe_http_request_duration_seconds (histogram, labels: method, endpoint)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PoolLoadDuration tracks how long a pool takes to load and filter
	// its raw asset set from Immich.
	PoolLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "immichframe_pool_load_duration_seconds",
			Help:    "Time to load and filter the asset set for a pool",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"pool"},
	)

	// PoolLoadErrors counts failed pool loads (network, decode, cancellation).
	PoolLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immichframe_pool_load_errors_total",
			Help: "Total failed pool asset loads",
		},
		[]string{"pool"},
	)

	// PoolAssetsFiltered reports the size of a pool's filtered asset set
	// after the most recent population.
	PoolAssetsFiltered = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "immichframe_pool_assets_filtered",
			Help: "Assets remaining after account filters for a pool",
		},
		[]string{"pool"},
	)

	// CacheHits counts memoized asset set lookups served from the store.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immichframe_asset_cache_hits_total",
			Help: "Asset cache hits",
		},
		[]string{"key"},
	)

	// CacheMisses counts lookups that triggered a load.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immichframe_asset_cache_misses_total",
			Help: "Asset cache misses",
		},
		[]string{"key"},
	)

	// AssetsServed counts assets returned to frames, per pool.
	AssetsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immichframe_assets_served_total",
			Help: "Total assets returned by sampling requests",
		},
		[]string{"pool"},
	)

	// CircuitBreakerState reports the Immich client breaker state.
	// 0=closed, 1=half-open, 2=open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "immichframe_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests counts breaker outcomes.
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immichframe_circuit_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"name", "result"},
	)

	// HTTPRequestsTotal counts HTTP requests served by the frame API.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immichframe_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration tracks frame API request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "immichframe_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)
