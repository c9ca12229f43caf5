package codec

import (
	"bytes"
	"image"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"
)

func gifEntry() Entry {
	return Entry{
		Format:     FormatGIF,
		Extensions: []string{".gif"},
		Sniff:      sniffGIF,
		CanRead:    true,
		CanWrite:   true,
		Decode:     decodeGIF,
		Encode:     encodeGIF,
	}
}

// decodeGIF returns the first frame.
func decodeGIF(data []byte, _ Flags) (*Decoded, error) {
	img, err := gif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(FormatGIF, err)
	}
	return &Decoded{Image: img}, nil
}

func encodeGIF(w io.Writer, img image.Image, _ []byte, _ Flags) error {
	if err := imaging.Encode(w, img, imaging.GIF, imaging.GIFNumColors(256)); err != nil {
		return encodeError(FormatGIF, err)
	}
	return nil
}
