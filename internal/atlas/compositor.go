package atlas

import (
	"github.com/AnyUserName/spritepack/internal/manifest"
)

// composite allocates the zero-filled atlas buffer and copies every
// region into its placement. Padding bytes around each region keep
// their zero value. All images must already match the atlas format.
func composite(images []*Image, descs []Descriptor, placements map[Descriptor]Placement, pad, size manifest.Vec2, format manifest.Format) *Image {
	dst := NewImage(size.X, size.Y, format)
	for _, d := range descs {
		copyRegion(dst, images[d.Source], d, placements[d], pad)
	}
	return dst
}

// copyRegion copies the descriptor's pixels row by row into the atlas,
// offset by the padding inside the placement box. Every range here is
// derived from already-validated geometry.
func copyRegion(dst, src *Image, d Descriptor, p Placement, pad manifest.Vec2) {
	px := dst.Format.PixelSize()
	rowBytes := int(d.Size.X) * px
	dstX := int(p.X + pad.X)
	dstY := int(p.Y + pad.Y)
	srcX := int(d.Position.X)
	srcY := int(d.Position.Y)

	for i := 0; i < int(d.Size.Y); i++ {
		srcOff := ((srcY+i)*int(src.Width) + srcX) * px
		dstOff := ((dstY+i)*int(dst.Width) + dstX) * px
		copy(dst.Pix[dstOff:dstOff+rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}
}
