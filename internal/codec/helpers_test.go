package codec

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// createSolidImage returns an opaque RGBA image filled with c.
func createSolidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func encodePNGBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEGBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode JPEG: %v", err)
	}
	return buf.Bytes()
}

// exifOrientationBlock builds a big-endian TIFF structure holding a single
// IFD0 entry: Orientation (0x0112, SHORT) = v.
func exifOrientationBlock(v uint16) []byte {
	var b bytes.Buffer
	b.WriteString("MM\x00\x2a")
	binary.Write(&b, binary.BigEndian, uint32(8))
	binary.Write(&b, binary.BigEndian, uint16(1))
	binary.Write(&b, binary.BigEndian, uint16(0x0112))
	binary.Write(&b, binary.BigEndian, uint16(3))
	binary.Write(&b, binary.BigEndian, uint32(1))
	binary.Write(&b, binary.BigEndian, v)
	binary.Write(&b, binary.BigEndian, uint16(0))
	binary.Write(&b, binary.BigEndian, uint32(0))
	return b.Bytes()
}

// withJPEGOrientation injects an APP1 EXIF segment carrying the orientation tag.
func withJPEGOrientation(t *testing.T, data []byte, v uint16) []byte {
	t.Helper()
	payload := append([]byte(exifHeader), exifOrientationBlock(v)...)
	out, err := InsertJPEGSegment(data, markerAPP1, payload)
	if err != nil {
		t.Fatalf("failed to insert EXIF segment: %v", err)
	}
	return out
}

// insertPNGChunk places a chunk directly after IHDR.
func insertPNGChunk(t *testing.T, data []byte, typ string, payload []byte) []byte {
	t.Helper()
	const afterIHDR = 8 + 4 + 4 + 13 + 4
	if len(data) < afterIHDR {
		t.Fatal("PNG too short")
	}

	var chunk bytes.Buffer
	binary.Write(&chunk, binary.BigEndian, uint32(len(payload)))
	chunk.WriteString(typ)
	chunk.Write(payload)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	binary.Write(&chunk, binary.BigEndian, crc.Sum32())

	out := make([]byte, 0, len(data)+chunk.Len())
	out = append(out, data[:afterIHDR]...)
	out = append(out, chunk.Bytes()...)
	out = append(out, data[afterIHDR:]...)
	return out
}

// iccpPayload builds an iCCP chunk body for profile.
func iccpPayload(t *testing.T, profile []byte) []byte {
	t.Helper()
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(profile); err != nil {
		t.Fatalf("failed to compress profile: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zlib writer: %v", err)
	}
	out := append([]byte("test profile\x00\x00"), z.Bytes()...)
	return out
}

// fakeProfile returns deterministic bytes standing in for an ICC profile.
func fakeProfile(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i * 7)
	}
	return p
}
