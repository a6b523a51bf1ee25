package manifest

// Format identifies a pixel format for source images and the atlas.
// Identifiers follow the wgpu naming scheme and are matched
// case-sensitively; unknown names are a hard decode error.
type Format int

const (
	R8Unorm Format = iota
	Rg8Unorm
	Rgba8Unorm
	Rgba8UnormSrgb
	Bgra8Unorm
	Bgra8UnormSrgb
)

var formatNames = [...]string{
	R8Unorm:        "R8Unorm",
	Rg8Unorm:       "Rg8Unorm",
	Rgba8Unorm:     "Rgba8Unorm",
	Rgba8UnormSrgb: "Rgba8UnormSrgb",
	Bgra8Unorm:     "Bgra8Unorm",
	Bgra8UnormSrgb: "Bgra8UnormSrgb",
}

// ParseFormat resolves a format identifier against the supported set.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return 0, &UnknownFormatError{Name: name}
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "Format(unknown)"
	}
	return formatNames[f]
}

// PixelSize returns the number of bytes per pixel.
func (f Format) PixelSize() int {
	switch f {
	case R8Unorm:
		return 1
	case Rg8Unorm:
		return 2
	default:
		return 4
	}
}
