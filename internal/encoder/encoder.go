// Package encoder serializes composited atlas images to disk formats.
package encoder

import "image"

// Encoder encodes an image to a specific format. All encoders here are
// lossless; a lossy atlas would corrupt the byte-exact region contents.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "bmp", "tiff").
	Format() string

	// Encode converts the image to bytes.
	Encode(img image.Image) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
