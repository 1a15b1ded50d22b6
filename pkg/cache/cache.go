// Package cache stores encoded responses keyed by a hash of the request that
// produced them.
//
// The layout engine is deterministic: the same model, canvas size and view
// always measure to the same result, so a server can answer repeated
// requests from a cache. Backends:
//
//   - [NullCache] never stores anything
//   - [MemoryCache] keeps entries in process
//   - [FileCache] keeps entries on disk, for the CLI
package cache

import (
	"context"
	"time"
)

// Cache stores byte payloads with an optional TTL. A zero TTL never expires.
type Cache interface {
	// Get returns the payload for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
