package codec

// Format identifies a registered image container format.
type Format string

const (
	FormatUnknown Format = ""
	FormatPNG     Format = "PNG"
	FormatJPEG    Format = "JPEG"
	FormatGIF     Format = "GIF"
	FormatBMP     Format = "BMP"
	FormatTIFF    Format = "TIFF"
	FormatWebP    Format = "WEBP"
)

// String returns the format name, or "???" for FormatUnknown.
func (f Format) String() string {
	if f == FormatUnknown {
		return "???"
	}
	return string(f)
}

// Flags are opaque, format-defined decode/encode options. Each adapter only
// looks at the bits it understands and ignores the rest.
type Flags uint32

const (
	// JPEGAccurate asks the JPEG decoder for accurate rather than fast IDCT.
	// The Go decoder is always accurate, so the bit is accepted and ignored.
	JPEGAccurate Flags = 0x0080

	// JPEG encode quality presets. The low seven bits may alternatively carry
	// an explicit quality between 1 and 100.
	JPEGQualitySuperb  Flags = 0x0080
	JPEGQualityGood    Flags = 0x0100
	JPEGQualityNormal  Flags = 0x0200
	JPEGQualityAverage Flags = 0x0400
	JPEGQualityBad     Flags = 0x0800

	PNGBestSpeed       Flags = 0x0001
	PNGBestCompression Flags = 0x0009
	PNGNoCompression   Flags = 0x0100

	WebPLossless Flags = 0x0100
)

const defaultJPEGQuality = 75

// jpegQuality maps encode flags to a quality factor.
func jpegQuality(flags Flags) int {
	switch {
	case flags&JPEGQualitySuperb != 0:
		return 100
	case flags&JPEGQualityGood != 0:
		return 75
	case flags&JPEGQualityNormal != 0:
		return 50
	case flags&JPEGQualityAverage != 0:
		return 25
	case flags&JPEGQualityBad != 0:
		return 10
	}
	if q := int(flags & 0x7f); q > 0 && q <= 100 {
		return q
	}
	return defaultJPEGQuality
}
