// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

package models

import "time"

// AssetType identifies the media kind of an asset as reported by Immich.
type AssetType string

const (
	// AssetTypeImage is a still photo. Only images participate in
	// frame selection.
	AssetTypeImage AssetType = "IMAGE"

	// AssetTypeVideo is a video clip.
	AssetTypeVideo AssetType = "VIDEO"

	// AssetTypeOther covers audio and anything Immich cannot classify.
	AssetTypeOther AssetType = "OTHER"
)

// ExifInfo holds the subset of EXIF metadata the frame cares about.
// Every field is optional; Immich omits fields it could not extract.
type ExifInfo struct {
	DateTimeOriginal *time.Time `json:"dateTimeOriginal,omitempty"`
	Rating           *int       `json:"rating,omitempty"`
	Make             string     `json:"make,omitempty"`
	Model            string     `json:"model,omitempty"`
	City             string     `json:"city,omitempty"`
	Country          string     `json:"country,omitempty"`
}

// Asset represents one media item from the Immich catalog.
type Asset struct {
	ID               string    `json:"id"`
	Type             AssetType `json:"type"`
	OriginalFileName string    `json:"originalFileName,omitempty"`
	IsArchived       bool      `json:"isArchived"`
	IsFavorite       bool      `json:"isFavorite"`
	FileCreatedAt    time.Time `json:"fileCreatedAt"`
	ExifInfo         *ExifInfo `json:"exifInfo,omitempty"`
}

// TakenAt returns the best available capture time for the asset:
// the EXIF DateTimeOriginal when present, otherwise the file creation
// time. This is the anchor for both date filtering and recency
// weighting.
func (a *Asset) TakenAt() time.Time {
	if a.ExifInfo != nil && a.ExifInfo.DateTimeOriginal != nil && !a.ExifInfo.DateTimeOriginal.IsZero() {
		return *a.ExifInfo.DateTimeOriginal
	}
	return a.FileCreatedAt
}

// Album is a summary of an Immich album, including its assets when the
// album detail endpoint was queried.
type Album struct {
	ID         string  `json:"id"`
	AlbumName  string  `json:"albumName"`
	AssetCount int     `json:"assetCount"`
	Assets     []Asset `json:"assets,omitempty"`
}

// Person is a summary of a recognized face in Immich.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Memory is an "on this day" collection generated by Immich.
type Memory struct {
	ID       string    `json:"id"`
	MemoryAt time.Time `json:"memoryAt"`
	Assets   []Asset   `json:"assets"`
}
