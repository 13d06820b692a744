// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Command server runs the ImmichFrame API: it connects to an Immich
// photo server and serves random, filtered photo selections to frames
// over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/api"
	"github.com/XanderStrike/ImmichFrame/internal/assetcache"
	"github.com/XanderStrike/ImmichFrame/internal/config"
	"github.com/XanderStrike/ImmichFrame/internal/filter"
	"github.com/XanderStrike/ImmichFrame/internal/immich"
	"github.com/XanderStrike/ImmichFrame/internal/logging"
	"github.com/XanderStrike/ImmichFrame/internal/pool"
	"github.com/XanderStrike/ImmichFrame/internal/sampler"
)

// shutdownTimeout bounds graceful HTTP shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	settings, err := cfg.Filter.Settings()
	if err != nil {
		return fmt.Errorf("invalid filter configuration: %w", err)
	}

	client := immich.NewClient(cfg.Immich.URL, cfg.Immich.APIKey, immich.Options{
		Timeout:           cfg.Immich.Timeout,
		RequestsPerSecond: cfg.Immich.RequestsPerSecond,
	})
	catalog := immich.NewBreakerClient("immich", client)

	store := assetcache.New()
	s := sampler.New(nil)

	pools := buildPools(cfg, catalog, store, s, settings)
	handler := api.NewHandler(pools, catalog)
	router := api.NewRouter(handler, api.RouterOptions{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitReqs,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", addr).
			Int("pools", len(pools)).
			Str("immich", cfg.Immich.URL).
			Msg("ImmichFrame server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}

// buildPools assembles the configured pool set. The "all" pool is
// always present; album, person, favorites, and memories pools are
// opt-in via configuration.
func buildPools(cfg *config.Config, catalog immich.Catalog, store *assetcache.Store, s *sampler.Sampler, settings filter.Settings) map[string]api.Pool {
	bias := cfg.Pools.RecencyBias
	pools := make(map[string]api.Pool)

	add := func(name string, loader pool.Loader) {
		pools[name] = pool.NewCachedPool(loader, store, s, settings, bias)
	}

	add("all", &pool.AllAssetsLoader{Catalog: catalog})
	for _, id := range cfg.Pools.Albums {
		loader := &pool.AlbumLoader{Catalog: catalog, AlbumID: id}
		add(loader.Key(), loader)
	}
	for _, id := range cfg.Pools.People {
		loader := &pool.PersonLoader{Catalog: catalog, PersonID: id}
		add(loader.Key(), loader)
	}
	if cfg.Pools.ShowFavorites {
		add("favorites", &pool.FavoritesLoader{Catalog: catalog})
	}
	if cfg.Pools.ShowMemories {
		// The loader's cache key carries the date so stale memories
		// expire at midnight, but the pool name stays stable.
		add("memories", &pool.MemoriesLoader{Catalog: catalog})
	}

	return pools
}
