package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/image-science/internal/codec"
)

// Resize returns a new buffer of exactly width x height pixels, resampled
// with a separable 4-tap Catmull-Rom filter clamped at the edges.
//
// The result keeps the input's precision: 16-bit rasters are filtered at 16
// bits, grayscale and CMYK inputs are quantized back to their own layout.
// Palette inputs are resolved to true color first, with indices past the
// palette read as opaque black, and the result is never palette-indexed. The color profile is copied unchanged.
//
// The output only depends on the input pixels and the target size.
func Resize(b *PixelBuffer, width, height int) (*PixelBuffer, error) {
	if width <= 0 {
		return nil, invalidArgument("width <= 0")
	}
	if height <= 0 {
		return nil, invalidArgument("height <= 0")
	}
	if err := b.check(); err != nil {
		return nil, err
	}

	src := codec.PadPalette(b.img)
	var out image.Image
	if codec.IsDeep(src) {
		dst := image.NewRGBA64(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		out = dst
	} else {
		out = imaging.Resize(src, width, height, imaging.CatmullRom)
	}

	return newPixelBuffer(conformTo(b.img, out), cloneBytes(b.icc), codec.FormatUnknown), nil
}
