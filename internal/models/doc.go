// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

/*
Package models defines the value types exchanged with the Immich API.

All types are immutable snapshots of remote catalog state: the asset
pools and samplers never mutate them after they are decoded. JSON tags
match the Immich REST API wire names (camelCase) so the types decode
directly from API responses.

# Key Types

  - Asset: a single media item with type, archive flag, and timestamps
  - ExifInfo: optional EXIF metadata (capture time, star rating)
  - Album / Person: summaries used to address per-album and per-person
    asset pools
  - Memory: an "on this day" grouping of assets

# Effective Date

Asset.TakenAt returns the EXIF capture time when present and falls back
to the file creation time otherwise. Missing or partial EXIF data is
never an error.
*/
package models
