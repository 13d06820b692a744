// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

// Package config loads and validates ImmichFrame configuration from
// defaults, an optional YAML file, and environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/filter"
)

// dateLayout is the format for the date-window settings.
const dateLayout = "2006-01-02"

// Config is the root configuration structure.
type Config struct {
	Immich  ImmichConfig  `koanf:"immich"`
	Filter  FilterConfig  `koanf:"filter"`
	Pools   PoolsConfig   `koanf:"pools"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// ImmichConfig holds the connection settings for the Immich server.
type ImmichConfig struct {
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// FilterConfig scopes which assets are eligible for display.
type FilterConfig struct {
	// ShowArchived includes archived assets in selection.
	ShowArchived bool `koanf:"show_archived"`

	// ImagesUntilDate excludes assets captured after this date
	// (YYYY-MM-DD). Empty means no upper bound.
	ImagesUntilDate string `koanf:"images_until_date"`

	// ImagesFromDate excludes assets captured before this date
	// (YYYY-MM-DD). Takes precedence over ImagesFromDays.
	ImagesFromDate string `koanf:"images_from_date"`

	// ImagesFromDays excludes assets older than this many days.
	// Zero or negative means no relative bound.
	ImagesFromDays int `koanf:"images_from_days"`

	// Rating keeps only assets whose EXIF rating equals this value
	// (0-5). Nil means no rating filter.
	Rating *int `koanf:"rating"`
}

// Settings converts the textual configuration into filter settings,
// parsing the date fields.
func (f FilterConfig) Settings() (filter.Settings, error) {
	s := filter.Settings{
		ShowArchived:   f.ShowArchived,
		ImagesFromDays: f.ImagesFromDays,
		Rating:         f.Rating,
	}

	if f.ImagesUntilDate != "" {
		t, err := time.Parse(dateLayout, f.ImagesUntilDate)
		if err != nil {
			return filter.Settings{}, fmt.Errorf("invalid images_until_date %q: %w", f.ImagesUntilDate, err)
		}
		s.ImagesUntilDate = &t
	}
	if f.ImagesFromDate != "" {
		t, err := time.Parse(dateLayout, f.ImagesFromDate)
		if err != nil {
			return filter.Settings{}, fmt.Errorf("invalid images_from_date %q: %w", f.ImagesFromDate, err)
		}
		s.ImagesFromDate = &t
	}
	return s, nil
}

// PoolsConfig selects which asset pools the frame serves from.
type PoolsConfig struct {
	// RecencyBias weights selection toward recent photos. Zero is
	// uniform; 1.0 makes a year-old photo e times less likely than
	// one taken today.
	RecencyBias float64 `koanf:"recency_bias"`

	// Albums lists album IDs to expose as pools.
	Albums []string `koanf:"albums"`

	// People lists person IDs to expose as pools.
	People []string `koanf:"people"`

	// ShowFavorites exposes the favorites pool.
	ShowFavorites bool `koanf:"show_favorites"`

	// ShowMemories exposes the "on this day" pool.
	ShowMemories bool `koanf:"show_memories"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks the configuration for errors. It is called by
// LoadWithKoanf after all layers are merged.
func (c *Config) Validate() error {
	if c.Immich.URL == "" {
		return fmt.Errorf("immich.url is required")
	}
	if c.Immich.APIKey == "" {
		return fmt.Errorf("immich.api_key is required")
	}
	if c.Immich.RequestsPerSecond < 0 {
		return fmt.Errorf("immich.requests_per_second must not be negative, got %v", c.Immich.RequestsPerSecond)
	}

	if c.Pools.RecencyBias < 0 {
		return fmt.Errorf("pools.recency_bias must not be negative, got %v", c.Pools.RecencyBias)
	}

	if r := c.Filter.Rating; r != nil && (*r < 0 || *r > 5) {
		return fmt.Errorf("filter.rating must be between 0 and 5, got %d", *r)
	}
	if _, err := c.Filter.Settings(); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	return nil
}
