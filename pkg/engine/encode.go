package engine

import (
	"bytes"
	"image/png"

	"github.com/lumentrace/lumen/pkg/errors"
)

// EncodePNG returns the framebuffer's PNG encoding as bytes. The pipeline
// writes these to the output path and stores them in the artifact cache, so
// both always hold identical bytes.
func EncodePNG(fb *Framebuffer) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.ToImage()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encoding image")
	}
	return buf.Bytes(), nil
}
