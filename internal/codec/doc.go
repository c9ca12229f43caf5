// Package codec maps image container formats to decode/encode adapters.
//
// The package holds the format registry used by the imaging package: every
// supported container (PNG, JPEG, GIF, BMP, TIFF, WebP) is described by an
// Entry carrying its magic-byte sniffer, filename extensions, capability flags
// and the functions that turn bytes into a Go raster and back.
//
// # Format Resolution
//
// Resolution follows a fixed order:
//  1. Sniff the magic bytes of the content when content is available.
//  2. Fall back to the filename extension.
//
// A format that matches neither resolves to FormatUnknown.
//
// # Metadata
//
// Decoders materialise the two pieces of metadata the imaging pipeline needs:
// the EXIF orientation tag (0 when absent) and the embedded ICC profile as an
// opaque byte blob. Nothing else from EXIF or ICC is interpreted.
//
// # Thread Safety
//
// The default registry is built during package initialisation and never
// mutated afterwards, so it can be shared freely between goroutines. Lookup
// returns entries by value.
package codec
