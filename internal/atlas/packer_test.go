package atlas

import (
	"errors"
	"reflect"
	"testing"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

func packConfig(initial, maxSize manifest.Vec2, pad manifest.Vec2) manifest.Configuration {
	cfg := manifest.DefaultConfiguration()
	cfg.InitialSize = initial
	cfg.MaxSize = maxSize
	cfg.Padding = pad
	return cfg
}

func regionDescs(sizes ...manifest.Vec2) []Descriptor {
	descs := make([]Descriptor, len(sizes))
	for i, s := range sizes {
		descs[i] = Descriptor{Source: i, Size: s}
	}
	return descs
}

func TestPackNoOverlapWithinBounds(t *testing.T) {
	descs := regionDescs(
		manifest.Vec2{X: 40, Y: 30},
		manifest.Vec2{X: 17, Y: 61},
		manifest.Vec2{X: 64, Y: 8},
		manifest.Vec2{X: 9, Y: 9},
		manifest.Vec2{X: 25, Y: 25},
	)
	cfg := packConfig(manifest.Vec2{X: 128, Y: 128}, manifest.Vec2{X: 128, Y: 128}, manifest.Vec2{})

	placements, size, err := pack(descs, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if size != cfg.InitialSize {
		t.Errorf("size grew to %+v without need", size)
	}
	if len(placements) != len(descs) {
		t.Fatalf("placed %d of %d", len(placements), len(descs))
	}

	all := make([]Placement, 0, len(placements))
	for d, p := range placements {
		if p.Width != d.Size.X || p.Height != d.Size.Y {
			t.Errorf("placement size %+v does not match descriptor %+v", p, d)
		}
		if p.X+p.Width > size.X || p.Y+p.Height > size.Y {
			t.Errorf("placement %+v outside bin %+v", p, size)
		}
		all = append(all, p)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height {
				t.Errorf("placements overlap: %+v and %+v", a, b)
			}
		}
	}
}

func TestPackGrowsByDoubling(t *testing.T) {
	// Four 30x30 boxes cannot fit 32x32 but fit 64x64 after one doubling.
	descs := regionDescs(
		manifest.Vec2{X: 30, Y: 30},
		manifest.Vec2{X: 30, Y: 30},
		manifest.Vec2{X: 30, Y: 30},
		manifest.Vec2{X: 30, Y: 30},
	)
	cfg := packConfig(manifest.Vec2{X: 32, Y: 32}, manifest.Vec2{X: 2048, Y: 2048}, manifest.Vec2{})

	_, size, err := pack(descs, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if size != (manifest.Vec2{X: 64, Y: 64}) {
		t.Errorf("size: got %+v, want one doubling to (64,64)", size)
	}
}

func TestPackGrowthClampsToMax(t *testing.T) {
	descs := regionDescs(
		manifest.Vec2{X: 40, Y: 40},
		manifest.Vec2{X: 40, Y: 40},
	)
	// Doubling 48 would overshoot 80, so the axis clamps to max.
	cfg := packConfig(manifest.Vec2{X: 48, Y: 48}, manifest.Vec2{X: 80, Y: 80}, manifest.Vec2{})

	_, size, err := pack(descs, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if size != (manifest.Vec2{X: 80, Y: 80}) {
		t.Errorf("size: got %+v, want clamp to (80,80)", size)
	}
}

func TestPackExhausted(t *testing.T) {
	descs := regionDescs(
		manifest.Vec2{X: 48, Y: 48},
		manifest.Vec2{X: 48, Y: 48},
	)
	cfg := packConfig(manifest.Vec2{X: 64, Y: 64}, manifest.Vec2{X: 64, Y: 64}, manifest.Vec2{})

	_, _, err := pack(descs, cfg)
	var pee *PackingExhaustedError
	if !errors.As(err, &pee) {
		t.Fatalf("got %v, want PackingExhaustedError", err)
	}
	if pee.MaxSize != cfg.MaxSize {
		t.Errorf("max size: got %+v", pee.MaxSize)
	}
	if pee.Regions != 2 {
		t.Errorf("regions: got %d", pee.Regions)
	}
}

func TestPackSingleOversizedRegion(t *testing.T) {
	descs := regionDescs(manifest.Vec2{X: 4096, Y: 4096})
	cfg := packConfig(manifest.Vec2{X: 256, Y: 256}, manifest.Vec2{X: 2048, Y: 2048}, manifest.Vec2{})

	_, _, err := pack(descs, cfg)
	var pee *PackingExhaustedError
	if !errors.As(err, &pee) {
		t.Fatalf("got %v, want PackingExhaustedError", err)
	}
}

func TestPackPaddingInflatesBoxes(t *testing.T) {
	descs := regionDescs(manifest.Vec2{X: 10, Y: 10}, manifest.Vec2{X: 10, Y: 10})
	pad := manifest.Vec2{X: 3, Y: 2}
	cfg := packConfig(manifest.Vec2{X: 64, Y: 64}, manifest.Vec2{X: 64, Y: 64}, pad)

	placements, _, err := pack(descs, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	for d, p := range placements {
		if p.Width != d.Size.X+2*pad.X || p.Height != d.Size.Y+2*pad.Y {
			t.Errorf("box %+v not inflated by padding: %+v", d.Size, p)
		}
	}
}

func TestPackDuplicatesSharePlacement(t *testing.T) {
	d := Descriptor{Source: 0, Size: manifest.Vec2{X: 12, Y: 12}}
	descs := []Descriptor{d, d, {Source: 1, Size: manifest.Vec2{X: 12, Y: 12}}}
	cfg := packConfig(manifest.Vec2{X: 64, Y: 64}, manifest.Vec2{X: 64, Y: 64}, manifest.Vec2{})

	placements, _, err := pack(descs, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(placements) != 2 {
		t.Errorf("got %d placements, want 2 (duplicates collapse)", len(placements))
	}
}

func TestPackDeterministic(t *testing.T) {
	descs := regionDescs(
		manifest.Vec2{X: 31, Y: 7},
		manifest.Vec2{X: 7, Y: 31},
		manifest.Vec2{X: 16, Y: 16},
		manifest.Vec2{X: 16, Y: 16},
		manifest.Vec2{X: 5, Y: 60},
	)
	cfg := packConfig(manifest.Vec2{X: 128, Y: 128}, manifest.Vec2{X: 128, Y: 128}, manifest.Vec2{X: 1, Y: 1})

	first, _, err := pack(descs, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _, err := pack(descs, cfg)
		if err != nil {
			t.Fatalf("pack: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestPackEmptySucceedsAtInitialSize(t *testing.T) {
	cfg := packConfig(manifest.Vec2{X: 16, Y: 16}, manifest.Vec2{X: 64, Y: 64}, manifest.Vec2{})
	placements, size, err := pack(nil, cfg)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(placements) != 0 || size != cfg.InitialSize {
		t.Errorf("got %d placements at %+v", len(placements), size)
	}
}
