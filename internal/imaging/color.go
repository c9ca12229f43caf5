package imaging

import (
	"image"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a pixel color in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// PixelColor returns the color stored at (x, y), with (0,0) at the top-left.
//
// For palette images the stored index is resolved through the palette. The
// lookup is soft: coordinates outside the image, or an index past the end of
// the palette, return nil with a nil error. The only error is
// ErrUseAfterRelease.
func PixelColor(b *PixelBuffer, x, y int) (*RGBColor, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	bounds := b.img.Bounds()
	p := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
	if !p.In(bounds) {
		return nil, nil
	}

	if pm, ok := b.img.(*image.Paletted); ok {
		idx := int(pm.ColorIndexAt(p.X, p.Y))
		if idx >= len(pm.Palette) {
			return nil, nil
		}
		return toRGB(pm.Palette[idx]), nil
	}
	return toRGB(b.img.At(p.X, p.Y)), nil
}

// toRGB reads the stored (non-premultiplied) channels scaled to 8 bits.
func toRGB(c color.Color) *RGBColor {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return &RGBColor{R: uint8(n.R >> 8), G: uint8(n.G >> 8), B: uint8(n.B >> 8)}
}

// SampleColor is PixelColor reported as hex, RGB and HSL. It follows the same
// soft contract: nil, nil for coordinates that resolve to no color.
func SampleColor(b *PixelBuffer, x, y int) (*ColorResult, error) {
	rgb, err := PixelColor(b, x, y)
	if err != nil || rgb == nil {
		return nil, err
	}

	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: *rgb,
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}

// Colorspace names the color model of a color type at the given depth.
func Colorspace(ct ColorType, depth int) string {
	switch ct {
	case ColorMinIsWhite:
		if depth == 1 {
			return "InvertedMonochrome"
		}
		return "InvertedGrayscale"
	case ColorGrayscale:
		if depth == 1 {
			return "Monochrome"
		}
		return "Grayscale"
	case ColorRGB:
		return "RGB"
	case ColorPalette:
		return "Indexed"
	case ColorRGBA:
		return "RGBA"
	case ColorCMYK:
		return "CMYK"
	}
	return ""
}
