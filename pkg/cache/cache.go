// Package cache stores rendered diagrams keyed by document content.
//
// The serve command renders the same documents repeatedly; caching by the
// SHA-256 of the request body plus the render options makes repeat renders
// byte-identical and cheap. Backends:
//
//   - [NewNullCache]: caching disabled
//   - [NewFileCache]: JSON entries with expiry under a directory
//   - [NewRedisCache]: shared cache for multi-instance deployments
//
// Keys are built with [RenderKey] so every backend sees the same keyspace.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKey builds the cache key for a rendered diagram. docHash is the
// content hash of the document ([Hash]); the option fields distinguish
// renders of the same document with different settings.
func RenderKey(docHash, charset string, maxDepth int, keys string, truncation bool) string {
	return hashKey("render", docHash, charset, maxDepth, keys, truncation)
}
