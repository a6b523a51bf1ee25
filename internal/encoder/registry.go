package encoder

import "strings"

// Registry holds the known encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{
		&PNGEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns the encoder for the given format, or nil if unknown.
// Format names are matched case-insensitively; "tif" aliases "tiff".
func (r *Registry) Get(format string) Encoder {
	f := strings.ToLower(format)
	if f == "tif" {
		f = "tiff"
	}
	return r.encoders[f]
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"png", "bmp", "tiff"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}
