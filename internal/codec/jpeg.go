package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

func jpegEntry() Entry {
	return Entry{
		Format:      FormatJPEG,
		Extensions:  []string{".jpg", ".jpeg", ".jpe", ".jif", ".jfif"},
		Sniff:       sniffJPEG,
		CanRead:     true,
		CanWrite:    true,
		ICCProfiles: true,
		DecodeFlags: JPEGAccurate,
		EncodeFlags: JPEGQualitySuperb,
		Decode:      decodeJPEG,
		Encode:      encodeJPEG,
		Normalize:   forceRGB24,
	}
}

func decodeJPEG(data []byte, _ Flags) (*Decoded, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(FormatJPEG, err)
	}
	return &Decoded{
		Image:       img,
		Orientation: jpegOrientation(data),
		ICC:         jpegICC(data),
	}, nil
}

func encodeJPEG(w io.Writer, img image.Image, icc []byte, flags Flags) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, PadPalette(img), imaging.JPEG, imaging.JPEGQuality(jpegQuality(flags))); err != nil {
		return encodeError(FormatJPEG, err)
	}

	out := buf.Bytes()
	if len(icc) > 0 {
		var err error
		if out, err = embedJPEGICC(out, icc); err != nil {
			return encodeError(FormatJPEG, err)
		}
	}
	if _, err := w.Write(out); err != nil {
		return encodeError(FormatJPEG, err)
	}
	return nil
}

// forceRGB24 converts anything that is not 24-bit RGB to opaque 8-bit RGB.
// Alpha is dropped, not composited.
func forceRGB24(img image.Image, icc []byte) (image.Image, []byte) {
	if ct, bpp := Describe(img); ct == ColorRGB && bpp == 24 {
		return img, icc
	}

	src := imaging.Clone(PadPalette(img))
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst, icc
}
