// Package cache provides byte-level caching for rendered canvas artifacts.
//
// Rendering a document through Graphviz is the most expensive operation in
// the CLI, so export results (SVG, PNG, DOT) are cached keyed by a hash of
// the document bytes plus the render options. Three backends exist:
//
//   - FileCache: directory-based cache for CLI usage (the default)
//   - RedisCache: shared cache for setups where renders are reused across
//     machines
//   - NullCache: disables caching entirely
//
// Keys are content-addressed: any edit to the document changes its hash
// and naturally invalidates previous entries, so TTLs exist only to bound
// disk usage.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL stores
	// the entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL bounds how long cached renders are kept.
const DefaultTTL = 30 * 24 * time.Hour

// RenderKey builds the cache key for a rendered artifact.
// docHash is the content hash of the serialized document; format and opts
// describe the artifact ("svg", "dot", ...) and any render options that
// change the output.
func RenderKey(docHash, format string, opts ...string) string {
	parts := append([]any{docHash, format}, toAny(opts)...)
	return hashKey("render", parts...)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
