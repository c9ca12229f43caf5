package codec

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

func pngEntry() Entry {
	return Entry{
		Format:     FormatPNG,
		Extensions: []string{".png"},
		Sniff:      sniffPNG,
		CanRead:    true,
		CanWrite:   true,
		// Profiles are read so derived images can carry them into other
		// formats, but PNG output never embeds one.
		ICCProfiles: false,
		Decode:      decodePNG,
		Encode:      encodePNG,
		Normalize:   stripProfile,
	}
}

func decodePNG(data []byte, _ Flags) (*Decoded, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(FormatPNG, err)
	}
	icc, orientation := pngMetadata(data)
	return &Decoded{Image: img, Orientation: orientation, ICC: icc}, nil
}

func encodePNG(w io.Writer, img image.Image, _ []byte, flags Flags) error {
	level := png.DefaultCompression
	switch {
	case flags&PNGNoCompression != 0:
		level = png.NoCompression
	case flags&0x0f == PNGBestCompression:
		level = png.BestCompression
	case flags&0x0f == PNGBestSpeed:
		level = png.BestSpeed
	}
	if err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(level)); err != nil {
		return encodeError(FormatPNG, err)
	}
	return nil
}

// stripProfile drops the color profile before encoding.
func stripProfile(img image.Image, _ []byte) (image.Image, []byte) {
	return img, nil
}
