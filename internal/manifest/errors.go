package manifest

import (
	"errors"
	"fmt"
)

// ErrNoEntries reports a manifest whose textures list is empty.
var ErrNoEntries = errors.New("manifest: no texture entries")

// SchemaError wraps any failure to decode a manifest into the schema:
// malformed syntax, wrong value shapes, or unknown enum identifiers.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return "manifest: " + e.Err.Error() }
func (e *SchemaError) Unwrap() error { return e.Err }

// UnknownFormatError reports a pixel format identifier outside the
// supported set.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown pixel format %q", e.Name)
}

// ConfigSizeError reports a max_size smaller than initial_size on at
// least one axis.
type ConfigSizeError struct {
	Initial Vec2
	Max     Vec2
}

func (e *ConfigSizeError) Error() string {
	return fmt.Sprintf("manifest: max_size (%d,%d) smaller than initial_size (%d,%d)",
		e.Max.X, e.Max.Y, e.Initial.X, e.Initial.Y)
}
