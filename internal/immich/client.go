// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

/*
client.go - Immich REST API Client

This file implements a REST API client for the Immich photo server.
It provides the asset queries the frame pools load from: random
search, album contents, person search, favorites, and memories.

API Reference: https://immich.app/docs/api/
*/

package immich

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/XanderStrike/ImmichFrame/internal/models"
)

// Catalog defines the asset queries the pool variants depend on.
// Both Client and BreakerClient implement this interface.
type Catalog interface {
	Ping(ctx context.Context) error
	RandomAssets(ctx context.Context, count int) ([]models.Asset, error)
	AlbumAssets(ctx context.Context, albumID string) ([]models.Asset, error)
	PersonAssets(ctx context.Context, personID string) ([]models.Asset, error)
	FavoriteAssets(ctx context.Context) ([]models.Asset, error)
	MemoryAssets(ctx context.Context, day time.Time) ([]models.Asset, error)
}

// Ensure Client implements Catalog
var _ Catalog = (*Client)(nil)

// searchPageSize is the page size requested from the search endpoints.
// The frame never pages; one large page bounds the working set.
const searchPageSize = 1000

// Client provides access to the Immich REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options tunes the Immich client.
type Options struct {
	// Timeout bounds a single HTTP request. Default 30s.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls so a wall of frames
	// cannot hammer the photo server. Zero disables throttling.
	RequestsPerSecond float64
}

// NewClient creates a new Immich API client.
//
// Parameters:
//   - baseURL: Immich server URL (e.g., http://localhost:2283)
//   - apiKey: API key from Account Settings > API Keys
func NewClient(baseURL, apiKey string, opts Options) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// Ping tests connectivity to the Immich server.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/server/ping", nil)
	if err != nil {
		return fmt.Errorf("immich ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("immich ping returned status %d", resp.StatusCode)
	}
	return nil
}

// RandomAssets retrieves up to count random assets with EXIF metadata.
func (c *Client) RandomAssets(ctx context.Context, count int) ([]models.Asset, error) {
	if count <= 0 {
		count = searchPageSize
	}
	body := map[string]any{
		"size":     count,
		"withExif": true,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/search/random", body)
	if err != nil {
		return nil, fmt.Errorf("immich random search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "immich random search"); err != nil {
		return nil, err
	}

	var assets []models.Asset
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return nil, fmt.Errorf("failed to decode immich random search: %w", err)
	}
	return assets, nil
}

// AlbumAssets retrieves all assets in an album.
func (c *Client) AlbumAssets(ctx context.Context, albumID string) ([]models.Asset, error) {
	endpoint := fmt.Sprintf("/api/albums/%s", albumID)

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("immich album request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "immich album"); err != nil {
		return nil, err
	}

	var album models.Album
	if err := json.NewDecoder(resp.Body).Decode(&album); err != nil {
		return nil, fmt.Errorf("failed to decode immich album: %w", err)
	}
	return album.Assets, nil
}

// searchResponse mirrors the envelope of /api/search/metadata.
type searchResponse struct {
	Assets struct {
		Items []models.Asset `json:"items"`
	} `json:"assets"`
}

// PersonAssets retrieves assets featuring a recognized person.
func (c *Client) PersonAssets(ctx context.Context, personID string) ([]models.Asset, error) {
	body := map[string]any{
		"personIds": []string{personID},
		"size":      searchPageSize,
		"withExif":  true,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/search/metadata", body)
	if err != nil {
		return nil, fmt.Errorf("immich person search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "immich person search"); err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode immich person search: %w", err)
	}
	return search.Assets.Items, nil
}

// FavoriteAssets retrieves assets marked as favorites.
func (c *Client) FavoriteAssets(ctx context.Context) ([]models.Asset, error) {
	body := map[string]any{
		"isFavorite": true,
		"size":       searchPageSize,
		"withExif":   true,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/search/metadata", body)
	if err != nil {
		return nil, fmt.Errorf("immich favorites request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "immich favorites"); err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode immich favorites: %w", err)
	}
	return search.Assets.Items, nil
}

// MemoryAssets retrieves the "on this day" assets for the given date.
func (c *Client) MemoryAssets(ctx context.Context, day time.Time) ([]models.Asset, error) {
	endpoint := fmt.Sprintf("/api/memories?for=%s", day.UTC().Format(time.RFC3339))

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("immich memories request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "immich memories"); err != nil {
		return nil, err
	}

	var memories []models.Memory
	if err := json.NewDecoder(resp.Body).Decode(&memories); err != nil {
		return nil, fmt.Errorf("failed to decode immich memories: %w", err)
	}

	var assets []models.Asset
	for i := range memories {
		assets = append(assets, memories[i].Assets...)
	}
	return assets, nil
}

// doRequest performs an HTTP request against the Immich API with the
// API key header, honoring the client rate limiter and the context.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// checkStatus turns a non-200 response into an error carrying the
// response body for diagnosis.
func checkStatus(resp *http.Response, operation string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body)", operation, resp.StatusCode)
	}
	return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, string(body))
}
