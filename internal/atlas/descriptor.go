package atlas

import (
	"github.com/AnyUserName/spritepack/internal/manifest"
)

// Descriptor identifies one validated packable region: a source image
// index plus a rectangle within that image. Its value identity doubles
// as the packing key, so equal descriptors share a placement.
type Descriptor struct {
	Source   int
	Position manifest.Vec2
	Size     manifest.Vec2
}

// deriveDescriptors expands an entry's sprite sheet against the decoded
// image size. Emission order is the order callers correlate with the
// final layout: grid cells row-major, explicit regions as listed.
func deriveDescriptors(entry manifest.Entry, source int, imageSize manifest.Vec2) ([]Descriptor, error) {
	switch s := entry.SpriteSheet.(type) {
	case manifest.Homogeneous:
		descs := make([]Descriptor, 0, int(s.Columns)*int(s.Rows))
		for i := uint32(0); i < s.Rows; i++ {
			for j := uint32(0); j < s.Columns; j++ {
				// Half a gutter before the first tile, a full gutter
				// between tiles.
				pos := manifest.Vec2{
					X: j*s.TileSize.X + s.Offset.X + (1+2*j)*s.Padding.X,
					Y: i*s.TileSize.Y + s.Offset.Y + (1+2*i)*s.Padding.Y,
				}
				d, ok := newDescriptor(source, pos, s.TileSize, imageSize)
				if !ok {
					return nil, &InvalidRegionError{Path: entry.Path, Position: pos, Size: s.TileSize}
				}
				descs = append(descs, d)
			}
		}
		return descs, nil

	case manifest.Heterogeneous:
		descs := make([]Descriptor, 0, len(s))
		for _, r := range s {
			d, ok := newDescriptor(source, r.Position, r.Size, imageSize)
			if !ok {
				return nil, &InvalidRegionError{Path: entry.Path, Position: r.Position, Size: r.Size}
			}
			descs = append(descs, d)
		}
		return descs, nil

	default: // manifest.None, or absent: the whole image is one region.
		return []Descriptor{{Source: source, Size: imageSize}}, nil
	}
}

// newDescriptor validates position+size against the image bounds,
// componentwise in 64-bit to rule out overflow.
func newDescriptor(source int, pos, size, imageSize manifest.Vec2) (Descriptor, bool) {
	if uint64(pos.X)+uint64(size.X) > uint64(imageSize.X) ||
		uint64(pos.Y)+uint64(size.Y) > uint64(imageSize.Y) {
		return Descriptor{}, false
	}
	return Descriptor{Source: source, Position: pos, Size: size}, true
}
