// Package cache memoizes computed covering results.
//
// Solving a large instance exactly (or even heuristically with a long
// postprocessor chain) can take minutes, while the result only depends
// on the input geometry, the cost coefficients and the provider chain.
// The cache keys serialized result documents by a hash of exactly those
// inputs, so re-running the same experiment is a lookup.
//
// Backends: a file cache for CLI use, a redis cache for the HTTP
// server, and a null cache to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores serialized results keyed by instance hash.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Key builds the cache key for one solve: a hash over the input WKT,
// the cost coefficients and the full provider chain name.
func Key(wktText string, creationCost, areaCost int64, chain string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d\x00%s", wktText, creationCost, areaCost, chain)
	return "cover:" + hex.EncodeToString(h.Sum(nil))
}
