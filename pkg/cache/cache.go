// Package cache stores rendered canvas artifacts.
//
// Rendering a canvas through graphviz is the only expensive step of the
// pipeline, so SVG, PNG and PDF outputs are cached by the content hash of
// the canvas they were rendered from. Parsing and layout are cheap and are
// never cached.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from the canvas hash and the render options.
// [ScopedKeyer] prefixes every key, which lets several deployments share
// one Redis database.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLArtifact applies to rendered artifacts. A canvas hash fully
	// determines its artifacts, so entries only expire to bound disk use.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact.
	ArtifactKey(canvasHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Mode     string  `json:"mode"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the render options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns artifact:<sha256(hash, opts)>.
func (DefaultKeyer) ArtifactKey(canvasHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", canvasHash, opts)
}
