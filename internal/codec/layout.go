package codec

import (
	"image"
	"image/color"
)

// ColorType describes how pixel storage maps to color. The numbering follows
// the classic bitmap library convention so values stay stable on the wire.
type ColorType int

const (
	ColorMinIsWhite ColorType = 0
	ColorGrayscale  ColorType = 1 // min-is-black
	ColorRGB        ColorType = 2
	ColorPalette    ColorType = 3
	ColorRGBA       ColorType = 4
	ColorCMYK       ColorType = 5
)

func (c ColorType) String() string {
	switch c {
	case ColorMinIsWhite:
		return "MinIsWhite"
	case ColorGrayscale:
		return "Grayscale"
	case ColorRGB:
		return "RGB"
	case ColorPalette:
		return "Palette"
	case ColorRGBA:
		return "RGBA"
	case ColorCMYK:
		return "CMYK"
	}
	return "Unknown"
}

type opaquer interface {
	Opaque() bool
}

// Describe reports the color type and bits per pixel of a decoded raster.
func Describe(img image.Image) (ColorType, int) {
	switch m := img.(type) {
	case *image.Paletted:
		return paletteType(m.Palette), paletteDepth(len(m.Palette))
	case *image.Gray:
		return ColorGrayscale, 8
	case *image.Gray16:
		return ColorGrayscale, 16
	case *image.CMYK:
		return ColorCMYK, 32
	case *image.RGBA64, *image.NRGBA64:
		if m.(opaquer).Opaque() {
			return ColorRGB, 48
		}
		return ColorRGBA, 64
	case *image.YCbCr:
		return ColorRGB, 24
	}
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return ColorRGB, 24
	}
	return ColorRGBA, 32
}

// IsDeep reports whether the raster stores more than 8 bits per channel.
func IsDeep(img image.Image) bool {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

// paletteType reports a full-size linear gray ramp as grayscale, ascending
// from black or, for ColorMinIsWhite, descending from white. Any other table
// is ColorPalette.
func paletteType(p color.Palette) ColorType {
	n := len(p)
	if n < 2 || n != 1<<paletteDepth(n) {
		return ColorPalette
	}

	ascending, descending := true, true
	for i, c := range p {
		if c == nil {
			return ColorPalette
		}
		g, ok := color.NRGBAModel.Convert(c).(color.NRGBA)
		if !ok || g.A != 0xff || g.R != g.G || g.R != g.B {
			return ColorPalette
		}
		v := uint8(i * 255 / (n - 1))
		ascending = ascending && g.R == v
		descending = descending && g.R == 255-v
	}
	switch {
	case ascending:
		return ColorGrayscale
	case descending:
		return ColorMinIsWhite
	}
	return ColorPalette
}

// PadPalette returns img unchanged unless it is palette-indexed with stored
// indices past the end of its palette. Such images get a copy whose palette
// is extended with opaque black up to the largest index, the way image/png
// reads them, so that encoders and resamplers can look up every pixel.
func PadPalette(img image.Image) image.Image {
	m, ok := img.(*image.Paletted)
	if !ok {
		return img
	}

	top := -1
	for _, idx := range m.Pix {
		top = max(top, int(idx))
	}
	if top < len(m.Palette) {
		return img
	}

	pal := make(color.Palette, top+1)
	copy(pal, m.Palette)
	for i := len(m.Palette); i < len(pal); i++ {
		pal[i] = color.RGBA{0, 0, 0, 0xff}
	}
	return &image.Paletted{
		Pix:     append([]uint8(nil), m.Pix...),
		Stride:  m.Stride,
		Rect:    m.Rect,
		Palette: pal,
	}
}

func paletteDepth(n int) int {
	switch {
	case n <= 2:
		return 1
	case n <= 16:
		return 4
	}
	return 8
}
