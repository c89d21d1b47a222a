// Package cache stores rendered artifacts (state-chart and gallery SVGs)
// keyed by a hash of their inputs.
//
// Three implementations are provided: [FileCache] for the CLI, which keeps
// entries under the user cache directory; [MemoryCache] for the HTTP server;
// and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported by ok == false and
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
