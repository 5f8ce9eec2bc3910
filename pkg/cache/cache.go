// Package cache stores rendered heatmap scenes and artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTLs:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default,
//     ~/.cache/heatsvg)
//   - [RedisCache]: shared cache for `heatsvg serve` instances
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys are derived by a [Keyer] from content hashes of the input records
// and every option that changes the output, so a hit is always safe to
// serve:
//
//	k := cache.NewDefaultKeyer()
//	sceneKey := k.SceneKey(cache.Hash(recordsJSON), cache.SceneKeyOpts{Radius: 25, Blur: 15})
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	// TTLScene bounds how long a composed scene tree is reused.
	TTLScene = 7 * 24 * time.Hour
	// TTLArtifact bounds how long serialized SVG/PNG/PDF output is reused.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with expiring entries.
//
// Get reports a miss with ok == false and a nil error; an error means the
// backend itself failed. Callers treat backend failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
