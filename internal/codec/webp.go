package codec

import (
	"bytes"
	"image"
	"io"

	"github.com/chai2010/webp"
)

const defaultWebPQuality = 90

func webpEntry() Entry {
	return Entry{
		Format:      FormatWebP,
		Extensions:  []string{".webp"},
		Sniff:       sniffWebP,
		CanRead:     true,
		CanWrite:    true,
		ICCProfiles: true,
		Decode:      decodeWebP,
		Encode:      encodeWebP,
	}
}

func decodeWebP(data []byte, _ Flags) (*Decoded, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(FormatWebP, err)
	}

	d := &Decoded{Image: img}
	if icc, err := webp.GetMetadata(data, "ICCP"); err == nil && len(icc) > 0 {
		d.ICC = icc
	}
	if raw, err := webp.GetMetadata(data, "EXIF"); err == nil && len(raw) > 0 {
		raw = bytes.TrimPrefix(raw, []byte(exifHeader))
		d.Orientation = readOrientation(bytes.NewReader(raw))
	}
	return d, nil
}

func encodeWebP(w io.Writer, img image.Image, icc []byte, flags Flags) error {
	opts := &webp.Options{
		Lossless: flags&WebPLossless != 0,
		Quality:  defaultWebPQuality,
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, PadPalette(img), opts); err != nil {
		return encodeError(FormatWebP, err)
	}

	out := buf.Bytes()
	if len(icc) > 0 {
		var err error
		if out, err = webp.SetMetadata(out, icc, "ICCP"); err != nil {
			return encodeError(FormatWebP, err)
		}
	}
	if _, err := w.Write(out); err != nil {
		return encodeError(FormatWebP, err)
	}
	return nil
}
