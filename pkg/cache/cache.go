// Package cache provides the render artifact cache. A finished render is
// keyed by the scene content hash plus the render parameters, so repeating
// an identical render writes the cached image instead of sampling again.
//
// Backends:
//   - file: per-user cache directory, used by the CLI
//   - redis: shared cache for teams running the same scenes
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLArtifact bounds how long cached render outputs are kept. Scene hashes
// make stale hits impossible, so the TTL only bounds disk usage.
const TTLArtifact = 30 * 24 * time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render parameters that distinguish cached
// artifacts produced from the same scene.
type ArtifactKeyOpts struct {
	Width           uint
	SamplesPerPixel uint
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey generates a key for a rendered image. sceneHash is the
	// content hash of the scene file plus its assets.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered image.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts.Width, opts.SamplesPerPixel)
}

// ScopedKeyer prefixes every key, isolating namespaces when several
// projects share one redis cache.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls
// back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
