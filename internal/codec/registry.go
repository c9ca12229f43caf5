package codec

import (
	"image"
	"io"
	"path/filepath"
	"strings"
)

// Decoded is the fully materialised output of a decoder.
type Decoded struct {
	// Image is the decoded raster. Its concrete type depends on the format
	// and the color model stored in the file.
	Image image.Image

	// Orientation is the raw EXIF orientation tag, or 0 when the tag is absent.
	Orientation int

	// ICC is the embedded color profile, nil when the file carries none.
	ICC []byte
}

// DecodeFunc decodes a complete file held in memory.
type DecodeFunc func(data []byte, flags Flags) (*Decoded, error)

// EncodeFunc writes img to w. icc is only passed to formats that can embed
// profiles and may be nil.
type EncodeFunc func(w io.Writer, img image.Image, icc []byte, flags Flags) error

// NormalizeFunc prepares a raster for encoding. It must not modify img or icc
// in place; it returns the raster and profile that will actually be encoded.
type NormalizeFunc func(img image.Image, icc []byte) (image.Image, []byte)

// Entry describes one registered container format.
type Entry struct {
	Format     Format
	Extensions []string // lower case, with leading dot
	Sniff      func(header []byte) bool

	CanRead     bool
	CanWrite    bool
	ICCProfiles bool

	// Default flags passed to Decode / Encode by the imaging pipeline.
	DecodeFlags Flags
	EncodeFlags Flags

	Decode    DecodeFunc
	Encode    EncodeFunc
	Normalize NormalizeFunc // optional pre-encode hook
}

// Registry resolves formats and hands out their entries. A Registry is
// immutable once built.
type Registry struct {
	entries  []Entry
	byFormat map[Format]int
	byExt    map[string]int
}

// NewRegistry builds a registry from entries. Sniffers are tried in the
// order the entries are given; a later entry with an already registered
// format or extension does not override the earlier one.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		entries:  make([]Entry, 0, len(entries)),
		byFormat: make(map[Format]int),
		byExt:    make(map[string]int),
	}
	for _, e := range entries {
		if e.Format == FormatUnknown {
			continue
		}
		if _, dup := r.byFormat[e.Format]; dup {
			continue
		}
		idx := len(r.entries)
		r.entries = append(r.entries, e)
		r.byFormat[e.Format] = idx
		for _, ext := range e.Extensions {
			ext = strings.ToLower(ext)
			if _, dup := r.byExt[ext]; !dup {
				r.byExt[ext] = idx
			}
		}
	}
	return r
}

var defaultRegistry = NewRegistry(
	pngEntry(),
	jpegEntry(),
	gifEntry(),
	bmpEntry(),
	tiffEntry(),
	webpEntry(),
)

// Default returns the process-wide registry of built-in formats.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the entry registered for f.
func (r *Registry) Lookup(f Format) (Entry, bool) {
	idx, ok := r.byFormat[f]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Formats lists the registered formats in registration order.
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Format
	}
	return out
}

// Sniff identifies a format from the leading bytes of its content.
func (r *Registry) Sniff(header []byte) Format {
	for _, e := range r.entries {
		if e.Sniff != nil && e.Sniff(header) {
			return e.Format
		}
	}
	return FormatUnknown
}

// FromFilename maps the extension of name to a format.
func (r *Registry) FromFilename(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return FormatUnknown
	}
	if idx, ok := r.byExt[ext]; ok {
		return r.entries[idx].Format
	}
	return FormatUnknown
}

// Resolve sniffs header first and falls back to the extension of path.
// Either argument may be empty.
func (r *Registry) Resolve(path string, header []byte) Format {
	if len(header) > 0 {
		if f := r.Sniff(header); f != FormatUnknown {
			return f
		}
	}
	if path == "" {
		return FormatUnknown
	}
	return r.FromFilename(path)
}

// SupportsReading reports whether f is registered with a decoder.
func (r *Registry) SupportsReading(f Format) bool {
	e, ok := r.Lookup(f)
	return ok && e.CanRead && e.Decode != nil
}

// SupportsWriting reports whether f is registered with an encoder.
func (r *Registry) SupportsWriting(f Format) bool {
	e, ok := r.Lookup(f)
	return ok && e.CanWrite && e.Encode != nil
}

// SupportsICC reports whether f can carry an embedded color profile.
func (r *Registry) SupportsICC(f Format) bool {
	e, ok := r.Lookup(f)
	return ok && e.ICCProfiles
}
