package imaging

import (
	"image"
)

// EXIF orientation tag values that need a rotation.
const (
	OrientationRotate180 = 3
	OrientationRotate270 = 6 // stored rotated 90° clockwise, needs 270° counter-clockwise
	OrientationRotate90  = 8
)

// Orient applies the rotation implied by an EXIF orientation tag:
//
//	6 -> rotate 270° counter-clockwise
//	3 -> rotate 180°
//	8 -> rotate 90° counter-clockwise
//
// Any other value, including 0 for a missing tag, returns b itself. The
// rotation is exact and keeps the storage layout, palette and profile.
func Orient(b *PixelBuffer, tag int) (*PixelBuffer, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	var turns int
	switch tag {
	case OrientationRotate270:
		turns = 3
	case OrientationRotate180:
		turns = 2
	case OrientationRotate90:
		turns = 1
	default:
		return b, nil
	}
	return newPixelBuffer(rotate(b.img, turns), cloneBytes(b.icc), b.format), nil
}

// rotate turns img counter-clockwise by quarter turns (1, 2 or 3).
func rotate(img image.Image, turns int) image.Image {
	src := pixelBacked(img)
	sr, _ := rasterOf(src)
	w, h := sr.rect.Dx(), sr.rect.Dy()

	dw, dh := w, h
	if turns%2 == 1 {
		dw, dh = h, w
	}
	dst := blank(src, dw, dh)
	dr, _ := rasterOf(dst)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch turns {
			case 1:
				dx, dy = y, w-1-x
			case 2:
				dx, dy = w-1-x, h-1-y
			case 3:
				dx, dy = h-1-y, x
			}
			so := sr.offset(sr.rect.Min.X+x, sr.rect.Min.Y+y)
			do := dr.offset(dx, dy)
			copy(dr.pix[do:do+dr.size], sr.pix[so:so+sr.size])
		}
	}
	return dst
}
