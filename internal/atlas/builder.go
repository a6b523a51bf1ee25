package atlas

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

// Resolver supplies decoded images for manifest entry paths. Entries
// may be resolved concurrently; implementations must be safe for
// concurrent use.
type Resolver interface {
	Resolve(path string) (*Image, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (*Image, error)

func (f ResolverFunc) Resolve(path string) (*Image, error) { return f(path) }

// Rect is an atlas-local pixel rectangle, min inclusive, max exclusive.
type Rect struct {
	Min manifest.Vec2 `json:"min"`
	Max manifest.Vec2 `json:"max"`
}

// Atlas is the finished composite image plus the region layout table.
// Layout is index-aligned with the manifest's flattened region order:
// entry order, then within-entry region order.
type Atlas struct {
	Image  *Image
	Layout []Rect
}

type buildOptions struct {
	workers int
}

// BuildOption configures a single Build call.
type BuildOption func(*buildOptions)

// WithWorkers bounds the number of concurrent image resolutions.
// Values below 1 mean one worker per CPU.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) { o.workers = n }
}

// Build runs the whole engine over one manifest: validate, resolve,
// derive, normalize, pack, composite, emit. A build either completes or
// fails as a unit; no partial atlas is ever returned.
func Build(m *manifest.Manifest, resolver Resolver, opts ...BuildOption) (*Atlas, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}

	images, err := resolveAll(m.Textures, resolver, o.workers)
	if err != nil {
		return nil, err
	}

	cfg := m.Configuration

	// Derive and validate every region before any pixel work.
	descs := make([]Descriptor, 0, m.RegionCount())
	for i, entry := range m.Textures {
		ds, err := deriveDescriptors(entry, i, images[i].Size())
		if err != nil {
			return nil, err
		}
		descs = append(descs, ds...)
	}

	// Normalize formats so the compositor only ever copies same-format
	// bytes.
	for i, entry := range m.Textures {
		img := images[i]
		if img.Format == cfg.Format {
			continue
		}
		if !cfg.AutoFormatConversion {
			return nil, &FormatIncompatibleError{Path: entry.Path, Source: img.Format, Target: cfg.Format}
		}
		conv, err := img.Convert(cfg.Format)
		if err != nil {
			var fce *FormatConversionError
			if errors.As(err, &fce) {
				fce.Path = entry.Path
				return nil, fce
			}
			return nil, err
		}
		images[i] = conv
	}

	// Single-region bypass: the normalized source image becomes the
	// atlas as-is, skipping the packer and the copy.
	if len(descs) == 1 && !cfg.AlwaysPack {
		d := descs[0]
		return &Atlas{
			Image: images[d.Source],
			Layout: []Rect{{
				Min: d.Position,
				Max: manifest.Vec2{X: d.Position.X + d.Size.X, Y: d.Position.Y + d.Size.Y},
			}},
		}, nil
	}

	placements, size, err := pack(descs, cfg)
	if err != nil {
		return nil, err
	}

	img := composite(images, descs, placements, cfg.Padding, size, cfg.Format)

	layout := make([]Rect, len(descs))
	for i, d := range descs {
		p := placements[d]
		min := manifest.Vec2{X: p.X + cfg.Padding.X, Y: p.Y + cfg.Padding.Y}
		layout[i] = Rect{Min: min, Max: manifest.Vec2{X: min.X + d.Size.X, Y: min.Y + d.Size.Y}}
	}
	return &Atlas{Image: img, Layout: layout}, nil
}

// resolveAll loads every entry's image through the resolver with a
// bounded worker pool. The first failure in entry order aborts the
// build.
func resolveAll(entries []manifest.Entry, resolver Resolver, workers int) ([]*Image, error) {
	type result struct {
		img *Image
		err error
	}
	results := make([]result, len(entries))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			img, err := resolver.Resolve(path)
			results[idx] = result{img, err}
		}(i, entry.Path)
	}
	wg.Wait()

	images := make([]*Image, len(entries))
	for i, r := range results {
		if r.err != nil {
			return nil, &ResolveError{Path: entries[i].Path, Err: r.err}
		}
		if want := int(r.img.Width) * int(r.img.Height) * r.img.Format.PixelSize(); len(r.img.Pix) != want {
			return nil, &ResolveError{
				Path: entries[i].Path,
				Err:  fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d %s", len(r.img.Pix), want, r.img.Width, r.img.Height, r.img.Format),
			}
		}
		images[i] = r.img
	}
	return images, nil
}
