package imaging

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ironsheep/image-science/internal/codec"
)

// createInMemoryImage creates an opaque image filled with a solid color.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates a quadrant pattern: red top-left, green
// top-right, blue bottom-left, white bottom-right.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// createGradientImage gives every pixel a distinct value so layout bugs show up.
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 17), uint8(y * 29), uint8(x*5 + y*3), 255})
		}
	}
	return img
}

// createPalettedImage creates an image whose index at (x, y) is (x+y) % len(palette).
func createPalettedImage(width, height int, palette color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetColorIndex(x, y, uint8((x+y)%len(palette)))
		}
	}
	return img
}

var testPalette = color.Palette{
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 255, 0, 255},
	color.RGBA{0, 0, 255, 255},
	color.RGBA{10, 20, 30, 255},
}

func newBuffer(t *testing.T, img image.Image) *PixelBuffer {
	t.Helper()
	b, err := NewPixelBuffer(img)
	if err != nil {
		t.Fatalf("NewPixelBuffer failed: %v", err)
	}
	return b
}

// createTestImage writes a solid PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	return writeTestFile(t, "test-image.png", encodePNG(t, createInMemoryImage(width, height, c)))
}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode JPEG: %v", err)
	}
	return buf.Bytes()
}

// withOrientation adds an APP1 EXIF segment whose IFD0 holds a single
// Orientation entry.
func withOrientation(t *testing.T, data []byte, v uint16) []byte {
	t.Helper()
	var b bytes.Buffer
	b.WriteString("Exif\x00\x00")
	b.WriteString("MM\x00\x2a")
	binary.Write(&b, binary.BigEndian, uint32(8))
	binary.Write(&b, binary.BigEndian, uint16(1))
	binary.Write(&b, binary.BigEndian, uint16(0x0112))
	binary.Write(&b, binary.BigEndian, uint16(3))
	binary.Write(&b, binary.BigEndian, uint32(1))
	binary.Write(&b, binary.BigEndian, v)
	binary.Write(&b, binary.BigEndian, uint16(0))
	binary.Write(&b, binary.BigEndian, uint32(0))

	out, err := codec.InsertJPEGSegment(data, 0xE1, b.Bytes())
	if err != nil {
		t.Fatalf("failed to insert EXIF segment: %v", err)
	}
	return out
}

// withICC adds a single APP2 ICC_PROFILE segment.
func withICC(t *testing.T, data, profile []byte) []byte {
	t.Helper()
	payload := append([]byte("ICC_PROFILE\x00\x01\x01"), profile...)
	out, err := codec.InsertJPEGSegment(data, 0xE2, payload)
	if err != nil {
		t.Fatalf("failed to insert ICC segment: %v", err)
	}
	return out
}

func fakeProfile(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*13 + 1)
	}
	return p
}

// shortPaletteBMP is a 2x2 8-bit BMP with a two entry palette (red, white)
// whose right column stores index 9.
func shortPaletteBMP() []byte {
	var buf bytes.Buffer
	le := func(v interface{}) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("BM")
	le(uint32(70)) // file size
	le(uint32(0))  // reserved
	le(uint32(62)) // pixel data offset
	le(uint32(40)) // BITMAPINFOHEADER
	le(int32(2))   // width
	le(int32(2))   // height, bottom-up
	le(uint16(1))  // planes
	le(uint16(8))  // bits per pixel
	le(uint32(0))  // no compression
	le(uint32(8))  // image size
	le(int32(0))
	le(int32(0))
	le(uint32(2)) // colors used
	le(uint32(0))
	buf.Write([]byte{0, 0, 255, 0, 255, 255, 255, 0}) // BGRx
	for row := 0; row < 2; row++ {
		buf.Write([]byte{0, 9, 0, 0})
	}
	return buf.Bytes()
}

// memFS is an in-memory FileSystem.
type memFS struct {
	files    map[string][]byte
	writeErr error
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *memFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

// newTestEngine returns an engine on a fresh memFS with a captured logger.
func newTestEngine(opts ...Option) (*Engine, *memFS, *test.Hook) {
	fs := newMemFS()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts = append([]Option{WithFileSystem(fs), WithLogger(logger)}, opts...)
	return NewEngine(opts...), fs, hook
}

func assertSameRaster(t *testing.T, got, want image.Image) {
	t.Helper()
	if got.Bounds().Size() != want.Bounds().Size() {
		t.Fatalf("size: got %v, want %v", got.Bounds().Size(), want.Bounds().Size())
	}
	gb, wb := got.Bounds(), want.Bounds()
	for y := 0; y < gb.Dy(); y++ {
		for x := 0; x < gb.Dx(); x++ {
			g := color.NRGBA64Model.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			w := color.NRGBA64Model.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			if g != w {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, g, w)
			}
		}
	}
}
