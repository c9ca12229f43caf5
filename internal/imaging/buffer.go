package imaging

import (
	"image"
	"image/color"

	"github.com/ironsheep/image-science/internal/codec"
)

// ColorType re-exports the codec color type so callers only need this package.
type ColorType = codec.ColorType

const (
	ColorMinIsWhite = codec.ColorMinIsWhite
	ColorGrayscale  = codec.ColorGrayscale
	ColorRGB        = codec.ColorRGB
	ColorPalette    = codec.ColorPalette
	ColorRGBA       = codec.ColorRGBA
	ColorCMYK       = codec.ColorCMYK
)

// PixelBuffer is a decoded raster together with its color metadata.
//
// A PixelBuffer has exactly one owner. Once Release has been called every
// accessor fails with ErrUseAfterRelease.
type PixelBuffer struct {
	img    image.Image
	icc    []byte
	format codec.Format

	released bool
}

// NewPixelBuffer wraps img. The buffer carries no profile and no format tag.
func NewPixelBuffer(img image.Image) (*PixelBuffer, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, invalidArgument("empty image")
	}
	return newPixelBuffer(img, nil, codec.FormatUnknown), nil
}

func newPixelBuffer(img image.Image, icc []byte, format codec.Format) *PixelBuffer {
	return &PixelBuffer{img: img, icc: icc, format: format}
}

func (b *PixelBuffer) check() error {
	if b == nil || b.released {
		return ErrUseAfterRelease
	}
	return nil
}

// Released reports whether the buffer has been released.
func (b *PixelBuffer) Released() bool {
	return b == nil || b.released
}

// Release frees the pixel storage. A second call fails with ErrUseAfterRelease.
func (b *PixelBuffer) Release() error {
	if err := b.check(); err != nil {
		return err
	}
	b.img = nil
	b.icc = nil
	b.released = true
	return nil
}

// Width returns the width in pixels.
func (b *PixelBuffer) Width() (int, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	return b.img.Bounds().Dx(), nil
}

// Height returns the height in pixels.
func (b *PixelBuffer) Height() (int, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	return b.img.Bounds().Dy(), nil
}

// BitDepth returns the number of bits per pixel.
func (b *PixelBuffer) BitDepth() (int, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	_, bpp := codec.Describe(b.img)
	return bpp, nil
}

// ColorType returns the color layout of the pixel storage.
func (b *PixelBuffer) ColorType() (ColorType, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	ct, _ := codec.Describe(b.img)
	return ct, nil
}

// Palette returns a copy of the color table, or nil unless the raster is
// palette-indexed. Gray-ramp tables are returned even though the color type
// reports them as grayscale.
func (b *PixelBuffer) Palette() (color.Palette, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	p, ok := b.img.(*image.Paletted)
	if !ok {
		return nil, nil
	}
	return append(color.Palette(nil), p.Palette...), nil
}

// ICCProfile returns the embedded color profile, nil when there is none.
func (b *PixelBuffer) ICCProfile() ([]byte, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return b.icc, nil
}

// Format returns the codec that produced the buffer, or FormatUnknown for
// derived buffers.
func (b *PixelBuffer) Format() codec.Format {
	if b == nil {
		return codec.FormatUnknown
	}
	return b.format
}

// Image exposes the underlying raster. Callers must not keep it past Release.
func (b *PixelBuffer) Image() (image.Image, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return b.img, nil
}

func cloneBytes(p []byte) []byte {
	if p == nil {
		return nil
	}
	return append([]byte(nil), p...)
}
