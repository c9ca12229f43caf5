package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"
)

const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1
	markerAPP2 = 0xE2

	iccIdentifier = "ICC_PROFILE\x00"
	exifHeader    = "Exif\x00\x00"

	// 65535 (segment length) - 2 (length field) - 14 (identifier + seq + count)
	iccChunkMax = 65519
)

// readOrientation returns the EXIF orientation tag found in r, or 0. r may
// hold a JPEG stream, a TIFF stream or a raw EXIF block.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// jpegSegments walks the marker segments ahead of the first scan, calling fn
// with each marker and its payload until fn returns false.
func jpegSegments(data []byte, fn func(marker byte, payload []byte) bool) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return
	}
	i := 2
	for i+1 < len(data) {
		if data[i] != 0xFF {
			return
		}
		// Skip fill bytes
		for i+1 < len(data) && data[i+1] == 0xFF {
			i++
		}
		if i+1 >= len(data) {
			return
		}
		marker := data[i+1]
		i += 2

		switch {
		case marker == markerEOI || marker == markerSOS:
			return
		case marker >= 0xD0 && marker <= 0xD7, marker == 0x01:
			// RSTn and TEM have no length
			continue
		}

		if i+2 > len(data) {
			return
		}
		length := int(binary.BigEndian.Uint16(data[i : i+2]))
		if length < 2 || i+length > len(data) {
			return
		}
		if !fn(marker, data[i+2:i+length]) {
			return
		}
		i += length
	}
}

// jpegICC reassembles an ICC profile split over APP2 segments.
func jpegICC(data []byte) []byte {
	var (
		chunks = map[int][]byte{}
		count  int
	)
	jpegSegments(data, func(marker byte, payload []byte) bool {
		if marker != markerAPP2 || len(payload) < 14 || string(payload[:12]) != iccIdentifier {
			return true
		}
		seq, n := int(payload[12]), int(payload[13])
		if count == 0 {
			count = n
		}
		chunks[seq] = payload[14:]
		return true
	})
	if count == 0 {
		return nil
	}

	var profile []byte
	for seq := 1; seq <= count; seq++ {
		chunk, ok := chunks[seq]
		if !ok {
			return nil
		}
		profile = append(profile, chunk...)
	}
	return profile
}

// InsertJPEGSegment returns a copy of data with a marker segment placed
// directly after the SOI marker.
func InsertJPEGSegment(data []byte, marker byte, payload []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, errors.New("not a JPEG stream")
	}
	if len(payload)+2 > 0xFFFF {
		return nil, errors.Errorf("segment payload too large: %d bytes", len(payload))
	}

	out := make([]byte, 0, len(data)+len(payload)+4)
	out = append(out, data[:2]...)
	out = append(out, 0xFF, marker)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)+2))
	out = append(out, payload...)
	out = append(out, data[2:]...)
	return out, nil
}

// embedJPEGICC writes icc as a sequence of APP2 ICC_PROFILE segments.
func embedJPEGICC(data, icc []byte) ([]byte, error) {
	n := (len(icc) + iccChunkMax - 1) / iccChunkMax
	if n == 0 {
		return data, nil
	}
	if n > 255 {
		return nil, errors.Errorf("ICC profile too large: %d bytes", len(icc))
	}

	// Segments are inserted right after SOI, so walk backwards to keep them in order.
	out := data
	for seq := n; seq >= 1; seq-- {
		start := (seq - 1) * iccChunkMax
		end := min(start+iccChunkMax, len(icc))

		payload := make([]byte, 0, 14+end-start)
		payload = append(payload, iccIdentifier...)
		payload = append(payload, byte(seq), byte(n))
		payload = append(payload, icc[start:end]...)

		var err error
		if out, err = InsertJPEGSegment(out, markerAPP2, payload); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// jpegOrientation reads the orientation from the APP1 EXIF segment.
func jpegOrientation(data []byte) int {
	orientation := 0
	jpegSegments(data, func(marker byte, payload []byte) bool {
		if marker != markerAPP1 || !bytes.HasPrefix(payload, []byte(exifHeader)) {
			return true
		}
		orientation = readOrientation(bytes.NewReader(payload[len(exifHeader):]))
		return false
	})
	return orientation
}

// pngChunks walks the chunk stream of a PNG file.
func pngChunks(data []byte, fn func(typ string, payload []byte) bool) {
	if !sniffPNG(data) {
		return
	}
	i := len(pngSignature)
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i : i+4]))
		typ := string(data[i+4 : i+8])
		if length < 0 || i+12+length > len(data) {
			return
		}
		if !fn(typ, data[i+8:i+8+length]) || typ == "IEND" {
			return
		}
		i += 12 + length
	}
}

// pngMetadata extracts the iCCP profile and the eXIf orientation.
func pngMetadata(data []byte) (icc []byte, orientation int) {
	pngChunks(data, func(typ string, payload []byte) bool {
		switch typ {
		case "iCCP":
			icc = inflateICCP(payload)
		case "eXIf":
			orientation = readOrientation(bytes.NewReader(payload))
		}
		return true
	})
	return icc, orientation
}

// inflateICCP decodes an iCCP chunk: name, NUL, compression method, zlib data.
func inflateICCP(payload []byte) []byte {
	sep := bytes.IndexByte(payload, 0)
	if sep < 1 || sep+2 > len(payload) || payload[sep+1] != 0 {
		return nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(payload[sep+2:]))
	if err != nil {
		return nil
	}
	defer zr.Close()

	profile, err := io.ReadAll(zr)
	if err != nil || len(profile) == 0 {
		return nil
	}
	return profile
}
