package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DecodeFile reads and decodes a manifest from disk, selecting the
// decoder by file extension (.json or .toml).
func DecodeFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return DecodeJSON(data)
	case ".toml":
		return DecodeTOML(data)
	default:
		return nil, &SchemaError{Err: fmt.Errorf("unsupported manifest extension %q (want .json or .toml)", ext)}
	}
}

// DecodeJSON decodes a JSON manifest and applies field defaults.
// Unknown object keys are ignored; unknown enum identifiers are not.
func DecodeJSON(data []byte) (*Manifest, error) {
	var raw struct {
		Configuration *rawConfiguration `json:"configuration"`
		Textures      []struct {
			Path        string          `json:"path"`
			SpriteSheet json.RawMessage `json:"sprite_sheet"`
		} `json:"textures"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Err: err}
	}

	cfg, err := raw.Configuration.resolve()
	if err != nil {
		return nil, &SchemaError{Err: err}
	}

	m := &Manifest{Configuration: cfg}
	for i, e := range raw.Textures {
		sheet, err := decodeJSONSpriteSheet(e.SpriteSheet)
		if err != nil {
			return nil, &SchemaError{Err: fmt.Errorf("textures[%d]: %w", i, err)}
		}
		m.Textures = append(m.Textures, Entry{Path: e.Path, SpriteSheet: sheet})
	}
	return m, nil
}

// DecodeTOML decodes a TOML manifest and applies field defaults.
func DecodeTOML(data []byte) (*Manifest, error) {
	var raw struct {
		Configuration *rawConfiguration `toml:"configuration"`
		Textures      []struct {
			Path        string           `toml:"path"`
			SpriteSheet *spriteSheetTOML `toml:"sprite_sheet"`
		} `toml:"textures"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Err: err}
	}

	cfg, err := raw.Configuration.resolve()
	if err != nil {
		return nil, &SchemaError{Err: err}
	}

	m := &Manifest{Configuration: cfg}
	for _, e := range raw.Textures {
		entry := Entry{Path: e.Path, SpriteSheet: None{}}
		if e.SpriteSheet != nil {
			entry.SpriteSheet = e.SpriteSheet.sheet
		}
		m.Textures = append(m.Textures, entry)
	}
	return m, nil
}

// rawConfiguration distinguishes absent fields from zero values so that
// defaults only fill what the manifest omits.
type rawConfiguration struct {
	AlwaysPack           *bool   `json:"always_pack" toml:"always_pack"`
	InitialSize          *Vec2   `json:"initial_size" toml:"initial_size"`
	MaxSize              *Vec2   `json:"max_size" toml:"max_size"`
	Format               *string `json:"format" toml:"format"`
	AutoFormatConversion *bool   `json:"auto_format_conversion" toml:"auto_format_conversion"`
	Padding              *Vec2   `json:"padding" toml:"padding"`
}

func (rc *rawConfiguration) resolve() (Configuration, error) {
	cfg := DefaultConfiguration()
	if rc == nil {
		return cfg, nil
	}
	if rc.AlwaysPack != nil {
		cfg.AlwaysPack = *rc.AlwaysPack
	}
	if rc.InitialSize != nil {
		cfg.InitialSize = *rc.InitialSize
	}
	if rc.MaxSize != nil {
		cfg.MaxSize = *rc.MaxSize
	}
	if rc.Format != nil {
		f, err := ParseFormat(*rc.Format)
		if err != nil {
			return cfg, err
		}
		cfg.Format = f
	}
	if rc.AutoFormatConversion != nil {
		cfg.AutoFormatConversion = *rc.AutoFormatConversion
	}
	if rc.Padding != nil {
		cfg.Padding = *rc.Padding
	}
	return cfg, nil
}

// MarshalJSON encodes the vector as [x, y].
func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{v.X, v.Y})
}

// UnmarshalJSON decodes a two-element [x, y] array.
func (v *Vec2) UnmarshalJSON(data []byte) error {
	var pair []uint32
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected [x, y], got %d elements", len(pair))
	}
	v.X, v.Y = pair[0], pair[1]
	return nil
}

// UnmarshalTOML decodes a two-element [x, y] array.
func (v *Vec2) UnmarshalTOML(value any) error {
	vec, err := vec2FromTOML(value)
	if err != nil {
		return err
	}
	*v = vec
	return nil
}

// rawHomogeneous keeps required fields as pointers so missing ones can
// be reported instead of silently defaulting to zero.
type rawHomogeneous struct {
	TileSize *Vec2   `json:"tile_size"`
	Columns  *uint32 `json:"columns"`
	Rows     *uint32 `json:"rows"`
	Padding  *Vec2   `json:"padding"`
	Offset   *Vec2   `json:"offset"`
}

func (rh *rawHomogeneous) resolve() (Homogeneous, error) {
	var h Homogeneous
	switch {
	case rh.TileSize == nil:
		return h, fmt.Errorf("Homogeneous: missing tile_size")
	case rh.Columns == nil:
		return h, fmt.Errorf("Homogeneous: missing columns")
	case rh.Rows == nil:
		return h, fmt.Errorf("Homogeneous: missing rows")
	}
	h.TileSize = *rh.TileSize
	h.Columns = *rh.Columns
	h.Rows = *rh.Rows
	if rh.Padding != nil {
		h.Padding = *rh.Padding
	}
	if rh.Offset != nil {
		h.Offset = *rh.Offset
	}
	return h, nil
}

// decodeJSONSpriteSheet resolves the tagged union: the string "None",
// or an object with exactly one of the keys "Homogeneous" or
// "Heterogeneous".
func decodeJSONSpriteSheet(raw json.RawMessage) (SpriteSheet, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return None{}, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if name == "None" {
			return None{}, nil
		}
		return nil, fmt.Errorf("unknown sprite_sheet variant %q", name)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("sprite_sheet: %w", err)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("sprite_sheet must name exactly one variant")
	}

	if body, ok := obj["Homogeneous"]; ok {
		var rh rawHomogeneous
		if err := json.Unmarshal(body, &rh); err != nil {
			return nil, fmt.Errorf("Homogeneous: %w", err)
		}
		return rh.resolve()
	}
	if body, ok := obj["Heterogeneous"]; ok {
		var pairs [][]Vec2
		if err := json.Unmarshal(body, &pairs); err != nil {
			return nil, fmt.Errorf("Heterogeneous: %w", err)
		}
		regions := make(Heterogeneous, 0, len(pairs))
		for i, p := range pairs {
			if len(p) != 2 {
				return nil, fmt.Errorf("Heterogeneous[%d]: expected [position, size] pair", i)
			}
			regions = append(regions, Region{Position: p[0], Size: p[1]})
		}
		return regions, nil
	}
	for name := range obj {
		return nil, fmt.Errorf("unknown sprite_sheet variant %q", name)
	}
	return None{}, nil
}

// spriteSheetTOML adapts the tagged union to TOML, where the variant is
// either the string "None" or a single-key table.
type spriteSheetTOML struct {
	sheet SpriteSheet
}

func (s *spriteSheetTOML) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		if v == "None" {
			s.sheet = None{}
			return nil
		}
		return fmt.Errorf("unknown sprite_sheet variant %q", v)
	case map[string]any:
		if len(v) != 1 {
			return fmt.Errorf("sprite_sheet must name exactly one variant")
		}
		for name, body := range v {
			sheet, err := spriteSheetVariantFromTOML(name, body)
			if err != nil {
				return err
			}
			s.sheet = sheet
		}
		return nil
	default:
		return fmt.Errorf("sprite_sheet: unsupported value of type %T", value)
	}
}

func spriteSheetVariantFromTOML(name string, body any) (SpriteSheet, error) {
	switch name {
	case "None":
		return None{}, nil
	case "Homogeneous":
		table, ok := body.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("Homogeneous: expected a table")
		}
		return homogeneousFromTOML(table)
	case "Heterogeneous":
		list, ok := body.([]any)
		if !ok {
			return nil, fmt.Errorf("Heterogeneous: expected an array of [position, size] pairs")
		}
		regions := make(Heterogeneous, 0, len(list))
		for i, item := range list {
			r, err := regionFromTOML(item)
			if err != nil {
				return nil, fmt.Errorf("Heterogeneous[%d]: %w", i, err)
			}
			regions = append(regions, r)
		}
		return regions, nil
	default:
		return nil, fmt.Errorf("unknown sprite_sheet variant %q", name)
	}
}

func homogeneousFromTOML(table map[string]any) (Homogeneous, error) {
	var h Homogeneous
	var sawTileSize, sawColumns, sawRows bool
	for key, val := range table {
		var err error
		switch key {
		case "tile_size":
			h.TileSize, err = vec2FromTOML(val)
			sawTileSize = true
		case "columns":
			h.Columns, err = uint32FromTOML(val)
			sawColumns = true
		case "rows":
			h.Rows, err = uint32FromTOML(val)
			sawRows = true
		case "padding":
			h.Padding, err = vec2FromTOML(val)
		case "offset":
			h.Offset, err = vec2FromTOML(val)
		}
		if err != nil {
			return h, fmt.Errorf("Homogeneous.%s: %w", key, err)
		}
	}
	switch {
	case !sawTileSize:
		return h, fmt.Errorf("Homogeneous: missing tile_size")
	case !sawColumns:
		return h, fmt.Errorf("Homogeneous: missing columns")
	case !sawRows:
		return h, fmt.Errorf("Homogeneous: missing rows")
	}
	return h, nil
}

func regionFromTOML(value any) (Region, error) {
	pair, ok := value.([]any)
	if !ok || len(pair) != 2 {
		return Region{}, fmt.Errorf("expected [position, size] pair")
	}
	pos, err := vec2FromTOML(pair[0])
	if err != nil {
		return Region{}, err
	}
	size, err := vec2FromTOML(pair[1])
	if err != nil {
		return Region{}, err
	}
	return Region{Position: pos, Size: size}, nil
}

func vec2FromTOML(value any) (Vec2, error) {
	arr, ok := value.([]any)
	if !ok || len(arr) != 2 {
		return Vec2{}, fmt.Errorf("expected [x, y], got %T", value)
	}
	x, err := uint32FromTOML(arr[0])
	if err != nil {
		return Vec2{}, err
	}
	y, err := uint32FromTOML(arr[1])
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

func uint32FromTOML(value any) (uint32, error) {
	n, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of range", n)
	}
	return uint32(n), nil
}
