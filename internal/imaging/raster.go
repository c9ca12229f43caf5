package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// raster is the Pix-backed view shared by the standard in-memory image types.
type raster struct {
	pix    []byte
	stride int
	size   int // bytes per pixel
	rect   image.Rectangle
}

func rasterOf(img image.Image) (raster, bool) {
	switch m := img.(type) {
	case *image.Paletted:
		return raster{m.Pix, m.Stride, 1, m.Rect}, true
	case *image.Gray:
		return raster{m.Pix, m.Stride, 1, m.Rect}, true
	case *image.Gray16:
		return raster{m.Pix, m.Stride, 2, m.Rect}, true
	case *image.RGBA:
		return raster{m.Pix, m.Stride, 4, m.Rect}, true
	case *image.NRGBA:
		return raster{m.Pix, m.Stride, 4, m.Rect}, true
	case *image.CMYK:
		return raster{m.Pix, m.Stride, 4, m.Rect}, true
	case *image.RGBA64:
		return raster{m.Pix, m.Stride, 8, m.Rect}, true
	case *image.NRGBA64:
		return raster{m.Pix, m.Stride, 8, m.Rect}, true
	}
	return raster{}, false
}

func (r raster) offset(x, y int) int {
	return (y-r.rect.Min.Y)*r.stride + (x-r.rect.Min.X)*r.size
}

// blank returns a zeroed w x h image of the same concrete type as img,
// sharing a copy of its palette. Types without a Pix layout get NRGBA.
func blank(img image.Image, w, h int) image.Image {
	rect := image.Rect(0, 0, w, h)
	switch m := img.(type) {
	case *image.Paletted:
		return image.NewPaletted(rect, append(color.Palette(nil), m.Palette...))
	case *image.Gray:
		return image.NewGray(rect)
	case *image.Gray16:
		return image.NewGray16(rect)
	case *image.RGBA:
		return image.NewRGBA(rect)
	case *image.CMYK:
		return image.NewCMYK(rect)
	case *image.RGBA64:
		return image.NewRGBA64(rect)
	case *image.NRGBA64:
		return image.NewNRGBA64(rect)
	}
	return image.NewNRGBA(rect)
}

// pixelBacked returns img when it has a Pix layout, otherwise an NRGBA copy.
func pixelBacked(img image.Image) image.Image {
	if _, ok := rasterOf(img); ok {
		return img
	}
	return imaging.Clone(img)
}

// copyRegion copies r out of src into a new image anchored at the origin,
// keeping the concrete type and the stored values.
func copyRegion(src image.Image, r image.Rectangle) image.Image {
	sr, ok := rasterOf(src)
	if !ok {
		return imaging.Crop(src, r)
	}

	dst := blank(src, r.Dx(), r.Dy())
	dr, _ := rasterOf(dst)
	rowBytes := r.Dx() * sr.size
	for y := 0; y < r.Dy(); y++ {
		so := sr.offset(r.Min.X, r.Min.Y+y)
		do := y * dr.stride
		copy(dr.pix[do:do+rowBytes], sr.pix[so:so+rowBytes])
	}
	return dst
}

// conformTo converts img to the storage layout of like where that layout can
// represent the result. Palette layouts are never reproduced, since filtered
// colors no longer come from the table.
func conformTo(like, img image.Image) image.Image {
	b := img.Bounds()
	var dst image.Image
	switch like.(type) {
	case *image.Gray:
		dst = image.NewGray(b)
	case *image.Gray16:
		dst = image.NewGray16(b)
	case *image.CMYK:
		dst = image.NewCMYK(b)
	default:
		return img
	}

	set := dst.(interface{ Set(x, y int, c color.Color) })
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			set.Set(x, y, img.At(x, y))
		}
	}
	return dst
}
