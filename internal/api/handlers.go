// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/XanderStrike/ImmichFrame/internal/logging"
	"github.com/XanderStrike/ImmichFrame/internal/models"
	"github.com/XanderStrike/ImmichFrame/internal/pool"
)

// Pool is the subset of pool.CachedPool the handlers depend on.
type Pool interface {
	Key() string
	Assets(ctx context.Context, requested int) ([]models.Asset, error)
	AssetCount(ctx context.Context) (int, error)
	Invalidate()
}

// Pinger reports Immich reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

var _ Pool = (*pool.CachedPool)(nil)

// Handler serves frame API requests against a set of named pools.
type Handler struct {
	pools    map[string]Pool
	pinger   Pinger
	validate *validator.Validate
}

// NewHandler creates a handler over the given pools. The map key is
// the pool name used in the ?pool= query parameter; the pool named
// "all" is the default.
func NewHandler(pools map[string]Pool, pinger Pinger) *Handler {
	return &Handler{
		pools:    pools,
		pinger:   pinger,
		validate: validator.New(),
	}
}

// assetsRequest captures the query parameters of GET /api/v1/assets.
type assetsRequest struct {
	Count int    `validate:"required,min=1,max=1000"`
	Pool  string `validate:"omitempty,max=128"`
}

// lookupPool resolves the pool query parameter, defaulting to "all".
func (h *Handler) lookupPool(name string) (Pool, error) {
	if name == "" {
		name = "all"
	}
	p, ok := h.pools[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool %q", name)
	}
	return p, nil
}

// Assets handles GET /api/v1/assets?count=N&pool=name. It responds
// with up to N randomly selected assets from the named pool.
func (h *Handler) Assets(w http.ResponseWriter, r *http.Request) {
	req := assetsRequest{Count: 1, Pool: r.URL.Query().Get("pool")}
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "count must be an integer")
			return
		}
		req.Count = n
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, "count must be between 1 and 1000")
		return
	}

	p, err := h.lookupPool(req.Pool)
	if err != nil {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	}

	assets, err := p.Assets(r.Context(), req.Count)
	if err != nil {
		logging.Err(err).Str("pool", p.Key()).Msg("Asset selection failed")
		writeError(w, r, http.StatusBadGateway, ErrCodeServiceUnavailable, "failed to load assets from Immich")
		return
	}

	writeJSON(w, http.StatusOK, assets)
}

// poolInfo describes one pool in the count response.
type poolInfo struct {
	Pool  string `json:"pool"`
	Count int    `json:"count"`
}

// AssetCount handles GET /api/v1/assets/count. It reports the size of
// each pool's filtered asset set, populating caches as needed.
func (h *Handler) AssetCount(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.pools))
	for name := range h.pools {
		names = append(names, name)
	}
	sort.Strings(names)

	counts := make([]poolInfo, 0, len(names))
	for _, name := range names {
		n, err := h.pools[name].AssetCount(r.Context())
		if err != nil {
			logging.Err(err).Str("pool", name).Msg("Asset count failed")
			writeError(w, r, http.StatusBadGateway, ErrCodeServiceUnavailable, "failed to load assets from Immich")
			return
		}
		counts = append(counts, poolInfo{Pool: name, Count: n})
	}

	writeJSON(w, http.StatusOK, counts)
}

// ClearCache handles POST /api/v1/cache/clear. It invalidates every
// pool so the next request reloads from Immich.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	for _, p := range h.pools {
		p.Invalidate()
	}
	logging.Info().Msg("Asset caches cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// HealthLive handles GET /health/live. It always succeeds while the
// process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /health/ready. It pings Immich so
// orchestrators only route traffic when photos can actually load.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Readiness probe failed")
		}
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "immich unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
