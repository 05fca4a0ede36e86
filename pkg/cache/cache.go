// Package cache stores rendered diagram artifacts.
//
// A [Cache] maps string keys to byte slices with an optional TTL. Backends:
//
//   - [NullCache]: stores nothing
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: Redis, using native key expiry
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// Keys come from a [Keyer] so that every component derives the same key for
// the same upload and render options. Only rendered bytes are cached; the
// normalization pass itself always runs.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
