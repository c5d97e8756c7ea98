// Package asset resolves and decodes the auxiliary resources referenced by
// a scene. A bundle is built once per render and shared read-only across
// all rendering workers.
package asset

import (
	"image"
	_ "image/jpeg" // register decoders for the formats textures may use
	_ "image/png"
	"os"
	"sort"

	"github.com/lumentrace/lumen/pkg/errors"
)

// Bundle maps asset paths to their decoded images. Immutable once built.
type Bundle struct {
	images map[string]image.Image
}

// LoadBundle reads and decodes every path. It fails on the first path that
// is unreadable or not a decodable image.
func LoadBundle(paths []string) (*Bundle, error) {
	b := &Bundle{images: make(map[string]image.Image, len(paths))}
	for _, path := range paths {
		if _, ok := b.images[path]; ok {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAsset, err, "opening asset %s", path)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAsset, err, "decoding asset %s", path)
		}
		b.images[path] = img
	}
	return b, nil
}

// Has reports whether the bundle holds the asset.
func (b *Bundle) Has(path string) bool {
	_, ok := b.images[path]
	return ok
}

// Image returns the decoded asset.
func (b *Bundle) Image(path string) (image.Image, bool) {
	img, ok := b.images[path]
	return img, ok
}

// Len returns the number of decoded assets.
func (b *Bundle) Len() int {
	return len(b.images)
}

// Paths returns the bundle's asset paths in sorted order.
func (b *Bundle) Paths() []string {
	paths := make([]string, 0, len(b.images))
	for p := range b.images {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
