// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

package immich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/XanderStrike/ImmichFrame/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-api-key", Options{Timeout: 5 * time.Second})
}

func TestPing(t *testing.T) {
	var gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/server/ping" {
			t.Errorf("path = %q, want /api/server/ping", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		w.WriteHeader(http.StatusOK)
	})

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
	if gotKey != "test-api-key" {
		t.Errorf("x-api-key = %q, want test-api-key", gotKey)
	}
}

func TestPing_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("Ping() expected error for 503, got nil")
	}
}

func TestRandomAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/search/random" {
			t.Errorf("%s %s, want POST /api/search/random", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["withExif"] != true {
			t.Errorf("withExif = %v, want true", body["withExif"])
		}
		if size, ok := body["size"].(float64); !ok || size != 50 {
			t.Errorf("size = %v, want 50", body["size"])
		}

		_ = json.NewEncoder(w).Encode([]models.Asset{
			{ID: "a1", Type: models.AssetTypeImage},
			{ID: "a2", Type: models.AssetTypeVideo},
		})
	})

	assets, err := client.RandomAssets(context.Background(), 50)
	if err != nil {
		t.Fatalf("RandomAssets() error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("RandomAssets() returned %d assets, want 2", len(assets))
	}
	if assets[0].ID != "a1" {
		t.Errorf("assets[0].ID = %q, want a1", assets[0].ID)
	}
}

func TestAlbumAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/albums/album-123" {
			t.Errorf("path = %q, want /api/albums/album-123", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(models.Album{
			ID:        "album-123",
			AlbumName: "Vacation",
			Assets: []models.Asset{
				{ID: "a1", Type: models.AssetTypeImage},
			},
		})
	})

	assets, err := client.AlbumAssets(context.Background(), "album-123")
	if err != nil {
		t.Fatalf("AlbumAssets() error: %v", err)
	}
	if len(assets) != 1 || assets[0].ID != "a1" {
		t.Errorf("AlbumAssets() = %+v, want one asset a1", assets)
	}
}

func TestPersonAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search/metadata" {
			t.Errorf("path = %q, want /api/search/metadata", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		ids, ok := body["personIds"].([]any)
		if !ok || len(ids) != 1 || ids[0] != "person-9" {
			t.Errorf("personIds = %v, want [person-9]", body["personIds"])
		}

		_, _ = w.Write([]byte(`{"assets":{"items":[{"id":"p1","type":"IMAGE"},{"id":"p2","type":"IMAGE"}]}}`))
	})

	assets, err := client.PersonAssets(context.Background(), "person-9")
	if err != nil {
		t.Fatalf("PersonAssets() error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("PersonAssets() returned %d assets, want 2", len(assets))
	}
}

func TestFavoriteAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["isFavorite"] != true {
			t.Errorf("isFavorite = %v, want true", body["isFavorite"])
		}
		_, _ = w.Write([]byte(`{"assets":{"items":[{"id":"f1","type":"IMAGE","isFavorite":true}]}}`))
	})

	assets, err := client.FavoriteAssets(context.Background())
	if err != nil {
		t.Fatalf("FavoriteAssets() error: %v", err)
	}
	if len(assets) != 1 || !assets[0].IsFavorite {
		t.Errorf("FavoriteAssets() = %+v, want one favorite asset", assets)
	}
}

func TestMemoryAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/memories" {
			t.Errorf("path = %q, want /api/memories", r.URL.Path)
		}
		if r.URL.Query().Get("for") == "" {
			t.Error("missing 'for' query parameter")
		}
		_, _ = w.Write([]byte(`[
			{"id":"m1","assets":[{"id":"a1","type":"IMAGE"}]},
			{"id":"m2","assets":[{"id":"a2","type":"IMAGE"},{"id":"a3","type":"IMAGE"}]}
		]`))
	})

	assets, err := client.MemoryAssets(context.Background(), time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("MemoryAssets() error: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("MemoryAssets() returned %d assets, want 3 flattened", len(assets))
	}
}

func TestErrorIncludesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	})

	_, err := client.RandomAssets(context.Background(), 10)
	if err == nil {
		t.Fatal("RandomAssets() expected error for 401, got nil")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q does not mention status 401", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error %q does not include response body", err)
	}
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := client.RandomAssets(ctx, 5); err == nil {
		t.Fatal("RandomAssets() expected error for cancelled context, got nil")
	}
}

func TestBreakerClient_PassesThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Asset{{ID: "a1", Type: models.AssetTypeImage}})
	})
	wrapped := NewBreakerClient("immich-test-pass", client)

	assets, err := wrapped.RandomAssets(context.Background(), 5)
	if err != nil {
		t.Fatalf("RandomAssets() error: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("RandomAssets() returned %d assets, want 1", len(assets))
	}
}

func TestBreakerClient_OpensAfterFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	wrapped := NewBreakerClient("immich-test-open", client)

	// Drive past the 10-request / 60% failure threshold.
	for i := 0; i < 12; i++ {
		_, _ = wrapped.RandomAssets(context.Background(), 5)
	}

	_, err := wrapped.RandomAssets(context.Background(), 5)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want gobreaker.ErrOpenState", err)
	}
}
