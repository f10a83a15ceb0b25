// Package cache provides byte caching for fetched images and rendered
// artifacts.
//
// The Cache interface abstracts over storage backends:
//   - FileCache: file-based storage for CLI usage
//   - RedisCache: Redis-backed storage for server deployments
//   - NullCache: no-op cache for tests and --no-cache runs
//
// Keys are generated through the Keyer interface so that every caller
// derives them the same way. Cached values are opaque byte slices; the
// cache never interprets them.
package cache

import (
	"context"
	"time"
)

// TTLs for the two kinds of cached bytes.
const (
	// TTLImage bounds how long fetched remote image bytes are reused.
	// URL safety validation still runs on every render regardless of
	// cache state.
	TTLImage = 24 * time.Hour

	// TTLArtifact bounds how long finished PNG artifacts are reused.
	TTLArtifact = time.Hour
)

// Cache is a byte cache with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts captures everything besides the config that changes
// a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`   // output format, currently "png"
	Geometry string `json:"geometry"` // hash of the layout geometry
}

// Keyer generates cache keys for the cacheable byte kinds.
type Keyer interface {
	// FetchKey generates a key for fetched remote image bytes.
	FetchKey(url string) string

	// ArtifactKey generates a key for a finished artifact, derived from
	// the config hash and the rendering options that shape the output.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FetchKey generates a key for fetched image bytes.
// URLs are hashed so arbitrary characters never reach the backend.
func (k *DefaultKeyer) FetchKey(url string) string {
	return deriveKey("fetch", url)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return deriveKey("artifact", configHash, opts)
}
