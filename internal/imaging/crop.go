package imaging

import (
	"image"

	"github.com/ironsheep/image-science/internal/codec"
)

// Crop returns a new buffer holding an exact copy of the region
// [left, right) x [top, bottom) of b. Storage layout, bit depth, palette and
// color profile are preserved.
//
// The rectangle must satisfy 0 <= left < right <= width and
// 0 <= top < bottom <= height, otherwise ErrInvalidArgument is returned.
func Crop(b *PixelBuffer, left, top, right, bottom int) (*PixelBuffer, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	bounds := b.img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Validate coordinates
	if left < 0 || top < 0 || right > w || bottom > h {
		return nil, invalidArgument("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			left, top, right, bottom, w, h)
	}
	if left >= right || top >= bottom {
		return nil, invalidArgument("invalid crop region: left must be < right, top must be < bottom")
	}

	r := image.Rect(left, top, right, bottom).Add(bounds.Min)
	return newPixelBuffer(copyRegion(b.img, r), cloneBytes(b.icc), codec.FormatUnknown), nil
}

// QuadrantRect maps a named region to a crop rectangle for a w x h image.
//
// Supported regions: top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half and center (the middle 50%).
func QuadrantRect(w, h int, region string) (image.Rectangle, error) {
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return image.Rectangle{}, invalidArgument("unknown region: %s", region)
	}

	return image.Rect(x1, y1, x2, y2), nil
}

// squareRect returns the centered square crop used by square thumbnails.
func squareRect(w, h int) image.Rectangle {
	half := w - h
	if half < 0 {
		half = -half
	}
	half /= 2

	l, t, r, b := 0, 0, w, h
	if w > h {
		l, r = half, half+h
	}
	if h > w {
		t, b = half, half+w
	}
	return image.Rect(l, t, r, b)
}
