// Package manifest defines the spritepack manifest schema: a declarative
// description of source images and how each one is sliced into regions
// before being packed into a texture atlas.
package manifest

// Vec2 is an unsigned 2D size or position. It is serialized as a
// two-element array [x, y] in both JSON and TOML manifests.
type Vec2 struct {
	X uint32
	Y uint32
}

// Manifest is the root of a spritepack manifest file.
type Manifest struct {
	Configuration Configuration
	Textures      []Entry
}

// Configuration controls how the atlas is assembled.
type Configuration struct {
	// AlwaysPack forces the bin packer to run even when the manifest
	// expands to a single region.
	AlwaysPack bool
	// InitialSize is the starting atlas size. The packer doubles each
	// axis on failure, up to MaxSize.
	InitialSize Vec2
	// MaxSize bounds atlas growth on both axes.
	MaxSize Vec2
	// Format is the destination pixel format.
	Format Format
	// AutoFormatConversion converts mismatched source images to Format
	// instead of rejecting them.
	AutoFormatConversion bool
	// Padding is the empty border inserted around each packed region.
	Padding Vec2
}

// DefaultConfiguration returns the configuration used when the manifest
// omits fields or the whole configuration block.
func DefaultConfiguration() Configuration {
	return Configuration{
		InitialSize:          Vec2{256, 256},
		MaxSize:              Vec2{2048, 2048},
		Format:               Rgba8UnormSrgb,
		AutoFormatConversion: true,
	}
}

// Entry names one source image and the scheme used to slice it.
type Entry struct {
	// Path is an opaque resource identifier, forwarded verbatim to the
	// image resolver.
	Path        string
	SpriteSheet SpriteSheet
}

// RegionCount returns the number of regions the entry expands to.
func (e Entry) RegionCount() int {
	switch s := e.SpriteSheet.(type) {
	case Homogeneous:
		return int(s.Columns) * int(s.Rows)
	case Heterogeneous:
		return len(s)
	default:
		return 1
	}
}

// SpriteSheet is the closed set of slicing schemes for an entry:
// None, Homogeneous or Heterogeneous.
type SpriteSheet interface {
	isSpriteSheet()
}

// None treats the whole source image as a single region.
type None struct{}

// Homogeneous slices a uniform Columns x Rows grid of TileSize cells.
// Offset shifts the whole grid. Padding describes the gutters of the
// sheet: half a padding before the first tile on each axis and a full
// padding between adjacent tiles.
type Homogeneous struct {
	TileSize Vec2
	Columns  uint32
	Rows     uint32
	Padding  Vec2
	Offset   Vec2
}

// Heterogeneous lists explicit regions, used verbatim.
type Heterogeneous []Region

// Region is one explicit (position, size) rectangle within an entry's
// source image.
type Region struct {
	Position Vec2
	Size     Vec2
}

func (None) isSpriteSheet()          {}
func (Homogeneous) isSpriteSheet()   {}
func (Heterogeneous) isSpriteSheet() {}

// Validate checks the manifest invariants that require no image data.
// It is called once after decoding, before any image is resolved.
func (m *Manifest) Validate() error {
	if len(m.Textures) == 0 {
		return ErrNoEntries
	}
	c := m.Configuration
	if c.MaxSize.X < c.InitialSize.X || c.MaxSize.Y < c.InitialSize.Y {
		return &ConfigSizeError{Initial: c.InitialSize, Max: c.MaxSize}
	}
	return nil
}

// RegionCount returns the total number of regions across all entries.
func (m *Manifest) RegionCount() int {
	total := 0
	for _, e := range m.Textures {
		total += e.RegionCount()
	}
	return total
}
