// Package loader resolves manifest entry paths to decoded images on the
// local filesystem. It is the default Resolver used by the CLI; embedding
// hosts can substitute their own asset system.
package loader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/spritepack/internal/atlas"
	"github.com/AnyUserName/spritepack/internal/manifest"
)

// FileResolver loads images relative to a base directory, typically the
// directory containing the manifest. It is safe for concurrent use.
type FileResolver struct {
	BaseDir string
}

// New creates a resolver rooted at baseDir.
func New(baseDir string) *FileResolver {
	return &FileResolver{BaseDir: baseDir}
}

// Resolve opens and decodes one image file.
func (r *FileResolver) Resolve(path string) (*atlas.Image, error) {
	f, err := os.Open(filepath.Join(r.BaseDir, filepath.FromSlash(path)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image.Image into the engine's raw pixel
// representation. Grayscale sources stay single channel (R8Unorm);
// everything else is flattened to 8-bit RGBA, which the decoders emit
// in sRGB.
func FromImage(img image.Image) *atlas.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if gray, ok := img.(*image.Gray); ok {
		out := atlas.NewImage(uint32(w), uint32(h), manifest.R8Unorm)
		for y := 0; y < h; y++ {
			off := gray.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w:(y+1)*w], gray.Pix[off:off+w])
		}
		return out
	}

	// Clone flattens any color model into a tightly packed NRGBA with
	// the origin at (0,0).
	nrgba := imaging.Clone(img)
	return &atlas.Image{
		Pix:    nrgba.Pix,
		Width:  uint32(w),
		Height: uint32(h),
		Format: manifest.Rgba8UnormSrgb,
	}
}
