package encoder

import (
	"image"
)

// Encoder writes an image in one lossless format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "bmp", "tiff").
	Format() string

	// Encode serializes img. Output must decode to the exact same pixels.
	Encode(img image.Image) ([]byte, error)

	// Extensions returns recognized file extensions without dot, preferred first.
	Extensions() []string
}
