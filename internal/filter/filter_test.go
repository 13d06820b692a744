// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

package filter

import (
	"testing"
	"time"

	"github.com/XanderStrike/ImmichFrame/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }

func image(id string, takenAt time.Time) models.Asset {
	return models.Asset{
		ID:            id,
		Type:          models.AssetTypeImage,
		FileCreatedAt: takenAt,
	}
}

func ids(assets []models.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func TestApply_ExcludesNonImages(t *testing.T) {
	now := time.Now()
	assets := []models.Asset{
		image("img", now),
		{ID: "vid", Type: models.AssetTypeVideo, FileCreatedAt: now},
		{ID: "other", Type: models.AssetTypeOther, FileCreatedAt: now},
	}

	got := Apply(assets, Settings{})
	if len(got) != 1 || got[0].ID != "img" {
		t.Errorf("Apply() kept %v, want only [img]", ids(got))
	}
}

func TestApply_ArchivedAssets(t *testing.T) {
	now := time.Now()
	archived := image("archived", now)
	archived.IsArchived = true
	assets := []models.Asset{image("visible", now), archived}

	tests := []struct {
		name         string
		showArchived bool
		want         int
	}{
		{"hidden by default", false, 1},
		{"included when enabled", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(assets, Settings{ShowArchived: tt.showArchived})
			if len(got) != tt.want {
				t.Errorf("Apply() kept %d assets, want %d", len(got), tt.want)
			}
		})
	}
}

func TestApply_DateBoundsInclusive(t *testing.T) {
	boundary := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	assets := []models.Asset{
		image("before", boundary.Add(-time.Hour)),
		image("exact", boundary),
		image("after", boundary.Add(time.Hour)),
	}

	t.Run("upper bound keeps boundary asset", func(t *testing.T) {
		got := Apply(assets, Settings{ImagesUntilDate: timePtr(boundary)})
		want := map[string]bool{"before": true, "exact": true}
		if len(got) != 2 {
			t.Fatalf("Apply() kept %v, want before+exact", ids(got))
		}
		for _, a := range got {
			if !want[a.ID] {
				t.Errorf("unexpected asset %q in result", a.ID)
			}
		}
	})

	t.Run("lower bound keeps boundary asset", func(t *testing.T) {
		got := Apply(assets, Settings{ImagesFromDate: timePtr(boundary)})
		want := map[string]bool{"exact": true, "after": true}
		if len(got) != 2 {
			t.Fatalf("Apply() kept %v, want exact+after", ids(got))
		}
		for _, a := range got {
			if !want[a.ID] {
				t.Errorf("unexpected asset %q in result", a.ID)
			}
		}
	})
}

func TestApply_FromDaysRelativeBound(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	assets := []models.Asset{
		image("recent", now.AddDate(0, 0, -3)),
		image("old", now.AddDate(0, 0, -30)),
	}

	got := ApplyAt(assets, Settings{ImagesFromDays: 7}, now)
	if len(got) != 1 || got[0].ID != "recent" {
		t.Errorf("ApplyAt() kept %v, want only [recent]", ids(got))
	}
}

func TestApply_FromDateWinsOverFromDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	fromDate := now.AddDate(0, 0, -60)
	assets := []models.Asset{
		image("recent", now.AddDate(0, 0, -3)),
		image("old", now.AddDate(0, 0, -30)),
	}

	// ImagesFromDays alone would drop "old"; ImagesFromDate admits it.
	got := ApplyAt(assets, Settings{ImagesFromDate: timePtr(fromDate), ImagesFromDays: 7}, now)
	if len(got) != 2 {
		t.Errorf("ApplyAt() kept %v, want both assets", ids(got))
	}
}

func TestApply_EffectiveDateUsesExif(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	taken := now.AddDate(-2, 0, 0)

	// File created yesterday but captured two years ago: the EXIF date
	// must drive the bound.
	a := image("scanned", now.AddDate(0, 0, -1))
	a.ExifInfo = &models.ExifInfo{DateTimeOriginal: &taken}

	got := ApplyAt([]models.Asset{a}, Settings{ImagesFromDays: 7}, now)
	if len(got) != 0 {
		t.Errorf("ApplyAt() kept %v, want EXIF-dated asset excluded", ids(got))
	}
}

func TestApply_RatingExactMatch(t *testing.T) {
	now := time.Now()
	fiveStar := image("five", now)
	fiveStar.ExifInfo = &models.ExifInfo{Rating: intPtr(5)}
	fourStar := image("four", now)
	fourStar.ExifInfo = &models.ExifInfo{Rating: intPtr(4)}
	unrated := image("unrated", now)

	assets := []models.Asset{fiveStar, fourStar, unrated}

	got := Apply(assets, Settings{Rating: intPtr(5)})
	if len(got) != 1 || got[0].ID != "five" {
		t.Errorf("Apply() kept %v, want only [five]", ids(got))
	}

	// No rating filter admits everything.
	if got := Apply(assets, Settings{}); len(got) != 3 {
		t.Errorf("Apply() without rating filter kept %d, want 3", len(got))
	}
}

func TestApply_EmptyResultIsNotAnError(t *testing.T) {
	got := Apply(nil, Settings{})
	if got == nil || len(got) != 0 {
		t.Errorf("Apply(nil) = %v, want empty non-nil slice", got)
	}

	assets := []models.Asset{{ID: "vid", Type: models.AssetTypeVideo}}
	if got := Apply(assets, Settings{}); len(got) != 0 {
		t.Errorf("Apply() kept %v, want empty result", ids(got))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	assets := []models.Asset{
		image("a", now),
		{ID: "b", Type: models.AssetTypeVideo, FileCreatedAt: now},
		image("c", now),
	}

	Apply(assets, Settings{})

	if assets[0].ID != "a" || assets[1].ID != "b" || assets[2].ID != "c" {
		t.Errorf("input slice mutated: %v", ids(assets))
	}
}
