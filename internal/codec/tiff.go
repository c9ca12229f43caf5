package codec

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

func tiffEntry() Entry {
	return Entry{
		Format:     FormatTIFF,
		Extensions: []string{".tif", ".tiff"},
		Sniff:      sniffTIFF,
		CanRead:    true,
		CanWrite:   true,
		Decode:     decodeTIFF,
		Encode:     encodeTIFF,
	}
}

// The TIFF container doubles as the EXIF container, so the orientation tag
// lives in the first IFD.
func decodeTIFF(data []byte, _ Flags) (*Decoded, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(FormatTIFF, err)
	}
	return &Decoded{
		Image:       img,
		Orientation: readOrientation(bytes.NewReader(data)),
	}, nil
}

func encodeTIFF(w io.Writer, img image.Image, _ []byte, _ Flags) error {
	if err := imaging.Encode(w, img, imaging.TIFF); err != nil {
		return encodeError(FormatTIFF, err)
	}
	return nil
}
