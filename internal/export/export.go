// Package export writes the layout document that pairs an atlas image
// with the pixel rectangle of every manifest region.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AnyUserName/spritepack/internal/atlas"
	"github.com/AnyUserName/spritepack/internal/manifest"
)

// Version identifies the layout document schema.
const Version = 1

// Document is the JSON layout emitted next to the atlas image. Regions
// appear in manifest order, expanded the same way the builder expands
// them, so index i here is region i at runtime.
type Document struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Manifest    string    `json:"manifest"`
	Atlas       AtlasInfo `json:"atlas"`
	Regions     []Region  `json:"regions"`
	Stats       Stats     `json:"stats"`
}

// AtlasInfo describes the atlas image artifact.
type AtlasInfo struct {
	Path   string `json:"path"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Format string `json:"format"`
	Hash   string `json:"hash"`
}

// Region maps one expanded manifest region to its atlas rectangle.
// Min is inclusive, Max exclusive, both in atlas pixels.
type Region struct {
	Path  string        `json:"path"`
	Index int           `json:"index"`
	Min   manifest.Vec2 `json:"min"`
	Max   manifest.Vec2 `json:"max"`
}

// Stats summarizes the build for quick inspection.
type Stats struct {
	Entries    int     `json:"entries"`
	Regions    int     `json:"regions"`
	AtlasBytes int     `json:"atlas_bytes"`
	Occupancy  float64 `json:"occupancy"`
}

// NewDocument correlates an atlas layout back to the manifest entries
// that produced it. The layout length must equal the manifest's total
// region count.
func NewDocument(m *manifest.Manifest, a *atlas.Atlas, manifestPath, atlasPath, hash string) (*Document, error) {
	if got, want := len(a.Layout), m.RegionCount(); got != want {
		return nil, fmt.Errorf("layout has %d regions, manifest expands to %d", got, want)
	}

	doc := &Document{
		Version:     Version,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Manifest:    manifestPath,
		Atlas: AtlasInfo{
			Path:   atlasPath,
			Width:  a.Image.Width,
			Height: a.Image.Height,
			Format: a.Image.Format.String(),
			Hash:   hash,
		},
		Regions: make([]Region, 0, len(a.Layout)),
	}

	next := 0
	var used uint64
	for _, entry := range m.Textures {
		for k := 0; k < entry.RegionCount(); k++ {
			r := a.Layout[next]
			doc.Regions = append(doc.Regions, Region{
				Path:  entry.Path,
				Index: k,
				Min:   r.Min,
				Max:   r.Max,
			})
			used += uint64(r.Max.X-r.Min.X) * uint64(r.Max.Y-r.Min.Y)
			next++
		}
	}

	doc.Stats = Stats{
		Entries:    len(m.Textures),
		Regions:    len(a.Layout),
		AtlasBytes: len(a.Image.Pix),
	}
	if total := uint64(a.Image.Width) * uint64(a.Image.Height); total > 0 {
		doc.Stats.Occupancy = float64(used) / float64(total)
	}
	return doc, nil
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

// ReadJSON loads a previously written layout document.
func ReadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported layout version %d", doc.Version)
	}
	return &doc, nil
}
