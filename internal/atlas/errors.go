package atlas

import (
	"fmt"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

// ResolveError wraps a resolver failure with the offending entry path.
type ResolveError struct {
	Path string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve image %q: %v", e.Path, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// InvalidRegionError reports a derived region exceeding its source
// image bounds.
type InvalidRegionError struct {
	Path     string
	Position manifest.Vec2
	Size     manifest.Vec2
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("region at (%d,%d) size (%d,%d) exceeds bounds of image %q",
		e.Position.X, e.Position.Y, e.Size.X, e.Size.Y, e.Path)
}

// FormatIncompatibleError reports a source format differing from the
// atlas format while auto conversion is disabled.
type FormatIncompatibleError struct {
	Path   string
	Source manifest.Format
	Target manifest.Format
}

func (e *FormatIncompatibleError) Error() string {
	return fmt.Sprintf("image %q has format %s, atlas expects %s and conversion is disabled",
		e.Path, e.Source, e.Target)
}

// FormatConversionError reports a conversion the engine cannot perform.
// Path is filled in by the builder; conversions fail independently of
// any particular file.
type FormatConversionError struct {
	Path   string
	Source manifest.Format
	Target manifest.Format
}

func (e *FormatConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot convert from %s to %s", e.Source, e.Target)
	}
	return fmt.Sprintf("cannot convert image %q from %s to %s", e.Path, e.Source, e.Target)
}

// PackingExhaustedError reports that no arrangement of the regions fits
// within the configured maximum atlas size.
type PackingExhaustedError struct {
	MaxSize manifest.Vec2
	Regions int
}

func (e *PackingExhaustedError) Error() string {
	return fmt.Sprintf("could not pack %d regions within maximum atlas size (%d,%d)",
		e.Regions, e.MaxSize.X, e.MaxSize.Y)
}
