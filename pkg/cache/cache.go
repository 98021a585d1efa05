// Package cache provides byte-level caching for rendered pedigree artifacts.
//
// Rendering a pedigree diagram through Graphviz is the slowest step of the
// plot pipeline, so the CLI and server cache rendered output keyed by a hash
// of the DOT source and the output format. The [Cache] interface has a
// file-based implementation for local use and a no-op implementation for
// tests and disabled caching.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves byte blobs by key.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// PlotKey generates the cache key for a rendered pedigree artifact.
// dotHash is the [Hash] of the DOT source; format is the output format
// ("svg", "png", ...).
func PlotKey(dotHash, format string) string {
	return hashKey("plot", dotHash, format)
}
