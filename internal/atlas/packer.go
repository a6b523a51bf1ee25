package atlas

import (
	"sort"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

// Placement is a descriptor's assigned box inside the atlas. The box
// includes the configured padding on all sides; the region's pixels
// start padding-deep inside it.
type Placement struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// pack places every descriptor into a single bin, growing it from
// initial_size toward max_size by doubling each axis on failure. It
// returns the placements and the final bin size.
func pack(descs []Descriptor, cfg manifest.Configuration) (map[Descriptor]Placement, manifest.Vec2, error) {
	// Equal descriptors share one placement, so pack each only once.
	unique := make([]Descriptor, 0, len(descs))
	seen := make(map[Descriptor]struct{}, len(descs))
	for _, d := range descs {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}

	size := cfg.InitialSize
	for {
		placements, ok := packAttempt(unique, cfg.Padding, size)
		if ok {
			return placements, size, nil
		}
		if size == cfg.MaxSize {
			return nil, size, &PackingExhaustedError{MaxSize: cfg.MaxSize, Regions: len(unique)}
		}
		size = manifest.Vec2{
			X: doubleClamped(size.X, cfg.MaxSize.X),
			Y: doubleClamped(size.Y, cfg.MaxSize.Y),
		}
	}
}

func doubleClamped(v, limit uint32) uint32 {
	doubled := uint64(v) * 2
	if doubled == 0 {
		doubled = 1
	}
	if doubled > uint64(limit) {
		return limit
	}
	return uint32(doubled)
}

// packAttempt tries to place all boxes into a bin of the given size.
// Candidates are taken largest-area first; each is placed at the free
// anchor that keeps the bounding box of everything placed so far
// smallest, ties going to the earliest anchor.
func packAttempt(descs []Descriptor, pad, bin manifest.Vec2) (map[Descriptor]Placement, bool) {
	order := make([]Descriptor, len(descs))
	copy(order, descs)
	sort.SliceStable(order, func(i, j int) bool {
		return boxArea(order[i], pad) > boxArea(order[j], pad)
	})

	placements := make(map[Descriptor]Placement, len(order))
	placed := make([]Placement, 0, len(order))
	anchors := []manifest.Vec2{{X: 0, Y: 0}}
	var boundX, boundY uint32

	for _, d := range order {
		w64 := uint64(d.Size.X) + 2*uint64(pad.X)
		h64 := uint64(d.Size.Y) + 2*uint64(pad.Y)

		best := -1
		var bestArea uint64
		for idx, a := range anchors {
			if uint64(a.X)+w64 > uint64(bin.X) || uint64(a.Y)+h64 > uint64(bin.Y) {
				continue
			}
			w, h := uint32(w64), uint32(h64)
			if overlapsAny(placed, a.X, a.Y, w, h) {
				continue
			}
			area := uint64(max(boundX, a.X+w)) * uint64(max(boundY, a.Y+h))
			if best < 0 || area < bestArea {
				best, bestArea = idx, area
			}
		}
		if best < 0 {
			return nil, false
		}

		a := anchors[best]
		p := Placement{X: a.X, Y: a.Y, Width: uint32(w64), Height: uint32(h64)}
		placements[d] = p
		placed = append(placed, p)
		boundX = max(boundX, p.X+p.Width)
		boundY = max(boundY, p.Y+p.Height)
		anchors = append(anchors,
			manifest.Vec2{X: p.X + p.Width, Y: p.Y},
			manifest.Vec2{X: p.X, Y: p.Y + p.Height},
		)
	}
	return placements, true
}

func boxArea(d Descriptor, pad manifest.Vec2) uint64 {
	return (uint64(d.Size.X) + 2*uint64(pad.X)) * (uint64(d.Size.Y) + 2*uint64(pad.Y))
}

func overlapsAny(placed []Placement, x, y, w, h uint32) bool {
	for _, p := range placed {
		if x < p.X+p.Width && p.X < x+w && y < p.Y+p.Height && p.Y < y+h {
			return true
		}
	}
	return false
}
