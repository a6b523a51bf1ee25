// Package atlas implements the atlas-building engine: it expands a
// manifest into validated region descriptors, normalizes source pixel
// formats, packs the regions into a single growing bin and composites
// the result into one pixel buffer with a stable layout table.
package atlas

import (
	"image"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

// Image is a decoded source image or a finished atlas: a tightly packed
// pixel buffer with no row padding, so row y starts at y*Width*PixelSize.
type Image struct {
	Pix    []byte
	Width  uint32
	Height uint32
	Format manifest.Format
}

// NewImage allocates a zero-filled image of the given size and format.
func NewImage(width, height uint32, format manifest.Format) *Image {
	return &Image{
		Pix:    make([]byte, int(width)*int(height)*format.PixelSize()),
		Width:  width,
		Height: height,
		Format: format,
	}
}

// Size returns the image dimensions as a vector.
func (img *Image) Size() manifest.Vec2 {
	return manifest.Vec2{X: img.Width, Y: img.Height}
}

// channel orders shared by multiple formats; srgb-ness never changes
// the bytes, only their interpretation.
type channelOrder int

const (
	orderR channelOrder = iota
	orderRg
	orderRgba
	orderBgra
)

func orderOf(f manifest.Format) channelOrder {
	switch f {
	case manifest.R8Unorm:
		return orderR
	case manifest.Rg8Unorm:
		return orderRg
	case manifest.Bgra8Unorm, manifest.Bgra8UnormSrgb:
		return orderBgra
	default:
		return orderRgba
	}
}

// Convert returns the image in the target format. Same-format images
// pass through unchanged; reinterpretations (unorm vs srgb) share the
// source buffer. Channel expansions and swizzles allocate a new buffer.
// Conversions that would drop channels fail.
func (img *Image) Convert(target manifest.Format) (*Image, error) {
	if img.Format == target {
		return img, nil
	}

	src, dst := orderOf(img.Format), orderOf(target)
	if src == dst {
		return &Image{Pix: img.Pix, Width: img.Width, Height: img.Height, Format: target}, nil
	}

	if dst != orderRgba && dst != orderBgra {
		return nil, &FormatConversionError{Source: img.Format, Target: target}
	}

	out := NewImage(img.Width, img.Height, target)
	n := int(img.Width) * int(img.Height)
	switch src {
	case orderR:
		for i := 0; i < n; i++ {
			v := img.Pix[i]
			out.Pix[i*4] = v
			out.Pix[i*4+1] = v
			out.Pix[i*4+2] = v
			out.Pix[i*4+3] = 0xFF
		}
	case orderRg:
		for i := 0; i < n; i++ {
			r, g := img.Pix[i*2], img.Pix[i*2+1]
			if dst == orderBgra {
				out.Pix[i*4+1] = g
				out.Pix[i*4+2] = r
			} else {
				out.Pix[i*4] = r
				out.Pix[i*4+1] = g
			}
			out.Pix[i*4+3] = 0xFF
		}
	default: // rgba <-> bgra swizzle
		for i := 0; i < n; i++ {
			out.Pix[i*4] = img.Pix[i*4+2]
			out.Pix[i*4+1] = img.Pix[i*4+1]
			out.Pix[i*4+2] = img.Pix[i*4]
			out.Pix[i*4+3] = img.Pix[i*4+3]
		}
	}
	return out, nil
}

// ToNRGBA renders the image into an *image.NRGBA, for handing to the
// standard encoders. Every supported format converts to RGBA order.
func (img *Image) ToNRGBA() (*image.NRGBA, error) {
	conv, err := img.Convert(manifest.Rgba8UnormSrgb)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	copy(out.Pix, conv.Pix)
	return out, nil
}
