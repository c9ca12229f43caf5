package codec

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

func bmpEntry() Entry {
	return Entry{
		Format:     FormatBMP,
		Extensions: []string{".bmp", ".dib"},
		Sniff:      sniffBMP,
		CanRead:    true,
		CanWrite:   true,
		Decode:     decodeBMP,
		Encode:     encodeBMP,
	}
}

func decodeBMP(data []byte, _ Flags) (*Decoded, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(FormatBMP, err)
	}
	return &Decoded{Image: img}, nil
}

func encodeBMP(w io.Writer, img image.Image, _ []byte, _ Flags) error {
	if err := imaging.Encode(w, img, imaging.BMP); err != nil {
		return encodeError(FormatBMP, err)
	}
	return nil
}
