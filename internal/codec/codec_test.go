package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

// Decoding, re-encoding and decoding again keeps the structural metadata.
func TestRoundTrip_StructurePreserved(t *testing.T) {
	rgb := createSolidImage(12, 7, color.RGBA{200, 100, 50, 255})

	gray := image.NewGray(image.Rect(0, 0, 9, 5))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 5)
	}

	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{0, 0, 255, 255},
	})
	for i := range pal.Pix {
		pal.Pix[i] = uint8(i % 4)
	}

	tests := []struct {
		name   string
		format Format
		img    image.Image
	}{
		{"png rgb", FormatPNG, rgb},
		{"png gray", FormatPNG, gray},
		{"png palette", FormatPNG, pal},
		{"jpeg rgb", FormatJPEG, rgb},
		{"jpeg gray", FormatJPEG, gray},
		{"gif palette", FormatGIF, pal},
		{"bmp rgb", FormatBMP, rgb},
		{"tiff rgb", FormatTIFF, rgb},
		{"tiff gray", FormatTIFF, gray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Default().Lookup(tt.format)
			if !ok {
				t.Fatalf("format %s not registered", tt.format)
			}

			var first bytes.Buffer
			if err := e.Encode(&first, tt.img, nil, e.EncodeFlags); err != nil {
				t.Fatalf("first encode failed: %v", err)
			}
			d1, err := e.Decode(first.Bytes(), e.DecodeFlags)
			if err != nil {
				t.Fatalf("first decode failed: %v", err)
			}

			var second bytes.Buffer
			if err := e.Encode(&second, d1.Image, nil, e.EncodeFlags); err != nil {
				t.Fatalf("second encode failed: %v", err)
			}
			d2, err := e.Decode(second.Bytes(), e.DecodeFlags)
			if err != nil {
				t.Fatalf("second decode failed: %v", err)
			}

			b1, b2 := d1.Image.Bounds(), d2.Image.Bounds()
			if b1.Dx() != b2.Dx() || b1.Dy() != b2.Dy() {
				t.Errorf("dimensions: %dx%d then %dx%d", b1.Dx(), b1.Dy(), b2.Dx(), b2.Dy())
			}
			if b1.Dx() != tt.img.Bounds().Dx() || b1.Dy() != tt.img.Bounds().Dy() {
				t.Errorf("dimensions changed from source: got %dx%d", b1.Dx(), b1.Dy())
			}
			ct1, bpp1 := Describe(d1.Image)
			ct2, bpp2 := Describe(d2.Image)
			if ct1 != ct2 || bpp1 != bpp2 {
				t.Errorf("layout: %s/%d then %s/%d", ct1, bpp1, ct2, bpp2)
			}
		})
	}
}

func TestDecode_InvalidData(t *testing.T) {
	for _, f := range Default().Formats() {
		t.Run(f.String(), func(t *testing.T) {
			e, _ := Default().Lookup(f)
			_, err := e.Decode([]byte("definitely not an image"), e.DecodeFlags)
			if err == nil {
				t.Fatal("Decode should fail for garbage input")
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("error should match ErrDecode: %v", err)
			}
			if errors.Is(err, ErrEncode) {
				t.Errorf("decode error should not match ErrEncode: %v", err)
			}
			var cerr *Error
			if !errors.As(err, &cerr) || cerr.Format != f {
				t.Errorf("error should carry format %s: %v", f, err)
			}
		})
	}
}

func TestJPEG_Orientation(t *testing.T) {
	base := encodeJPEGBytes(t, createSolidImage(6, 4, color.RGBA{10, 20, 30, 255}))

	for _, v := range []uint16{1, 3, 6, 8} {
		data := withJPEGOrientation(t, base, v)
		d, err := decodeJPEG(data, JPEGAccurate)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if d.Orientation != int(v) {
			t.Errorf("Orientation: got %d, want %d", d.Orientation, v)
		}
	}

	d, err := decodeJPEG(base, JPEGAccurate)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if d.Orientation != 0 {
		t.Errorf("Orientation without EXIF: got %d, want 0", d.Orientation)
	}
}

func TestPNG_MetadataChunks(t *testing.T) {
	profile := fakeProfile(300)
	data := encodePNGBytes(t, createSolidImage(5, 5, color.RGBA{1, 1, 1, 255}))
	data = insertPNGChunk(t, data, "iCCP", iccpPayload(t, profile))
	data = insertPNGChunk(t, data, "eXIf", exifOrientationBlock(8))

	d, err := decodePNG(data, 0)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(d.ICC, profile) {
		t.Errorf("ICC: got %d bytes, want %d", len(d.ICC), len(profile))
	}
	if d.Orientation != 8 {
		t.Errorf("Orientation: got %d, want 8", d.Orientation)
	}
}

func TestJPEG_ICCRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"single segment", 1000},
		{"multi segment", iccChunkMax*2 + 17},
	}

	img := createSolidImage(8, 8, color.RGBA{90, 90, 90, 255})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := fakeProfile(tt.size)
			var buf bytes.Buffer
			if err := encodeJPEG(&buf, img, profile, JPEGQualitySuperb); err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			d, err := decodeJPEG(buf.Bytes(), JPEGAccurate)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !bytes.Equal(d.ICC, profile) {
				t.Errorf("ICC: got %d bytes, want %d", len(d.ICC), len(profile))
			}
		})
	}
}

func TestJPEG_MissingICCChunk(t *testing.T) {
	base := encodeJPEGBytes(t, createSolidImage(2, 2, color.RGBA{A: 255}))
	// Claims two chunks but only carries the first one
	payload := append([]byte(iccIdentifier), 1, 2)
	payload = append(payload, fakeProfile(10)...)
	data, err := InsertJPEGSegment(base, markerAPP2, payload)
	if err != nil {
		t.Fatalf("InsertJPEGSegment failed: %v", err)
	}
	if icc := jpegICC(data); icc != nil {
		t.Errorf("incomplete profile should be dropped, got %d bytes", len(icc))
	}
}

func TestInsertJPEGSegment_NotJPEG(t *testing.T) {
	if _, err := InsertJPEGSegment([]byte("PNG"), markerAPP1, nil); err == nil {
		t.Error("InsertJPEGSegment should reject non-JPEG data")
	}
}

func TestForceRGB24(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 10})
	nrgba.SetNRGBA(1, 0, color.NRGBA{1, 2, 3, 255})

	out, icc := forceRGB24(nrgba, []byte{1})
	if len(icc) != 1 {
		t.Error("forceRGB24 should keep the profile")
	}
	ct, bpp := Describe(out)
	if ct != ColorRGB || bpp != 24 {
		t.Errorf("layout: got %s/%d, want RGB/24", ct, bpp)
	}
	// Alpha is dropped, channels are kept as stored
	r, g, b, a := out.At(0, 0).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 || a>>8 != 255 {
		t.Errorf("pixel: got (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
	// Source untouched
	if nrgba.NRGBAAt(0, 0).A != 10 {
		t.Error("forceRGB24 modified its input")
	}

	rgb := createSolidImage(2, 2, color.RGBA{1, 2, 3, 255})
	if same, _ := forceRGB24(rgb, nil); same != image.Image(rgb) {
		t.Error("24-bit input should pass through unchanged")
	}
}

func TestJPEGQuality(t *testing.T) {
	tests := []struct {
		flags Flags
		want  int
	}{
		{0, defaultJPEGQuality},
		{JPEGQualitySuperb, 100},
		{JPEGQualityGood, 75},
		{JPEGQualityNormal, 50},
		{JPEGQualityAverage, 25},
		{JPEGQualityBad, 10},
		{Flags(42), 42},
		{Flags(101), defaultJPEGQuality},
	}
	for _, tt := range tests {
		if got := jpegQuality(tt.flags); got != tt.want {
			t.Errorf("jpegQuality(%#x): got %d, want %d", uint32(tt.flags), got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	translucent := image.NewNRGBA(rect)
	opaque64 := image.NewNRGBA64(rect)
	opaque64.SetNRGBA64(0, 0, color.NRGBA64{A: 0xffff})

	tests := []struct {
		name string
		img  image.Image
		ct   ColorType
		bpp  int
	}{
		{"palette 2", image.NewPaletted(rect, make(color.Palette, 2)), ColorPalette, 1},
		{"palette 16", image.NewPaletted(rect, make(color.Palette, 16)), ColorPalette, 4},
		{"palette 256", image.NewPaletted(rect, make(color.Palette, 256)), ColorPalette, 8},
		{"black and white palette", image.NewPaletted(rect, color.Palette{color.Black, color.White}), ColorGrayscale, 1},
		{"white and black palette", image.NewPaletted(rect, color.Palette{color.White, color.Black}), ColorMinIsWhite, 1},
		{"gray ramp", image.NewPaletted(rect, grayRamp(16, false)), ColorGrayscale, 4},
		{"reversed gray ramp", image.NewPaletted(rect, grayRamp(256, true)), ColorMinIsWhite, 8},
		{"short gray palette", image.NewPaletted(rect, grayRamp(16, false)[:3]), ColorPalette, 4},
		{"gray", image.NewGray(rect), ColorGrayscale, 8},
		{"gray16", image.NewGray16(rect), ColorGrayscale, 16},
		{"cmyk", image.NewCMYK(rect), ColorCMYK, 32},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), ColorRGB, 24},
		{"rgba opaque", createSolidImage(1, 1, color.RGBA{A: 255}), ColorRGB, 24},
		{"nrgba translucent", translucent, ColorRGBA, 32},
		{"nrgba64 opaque", opaque64, ColorRGB, 48},
		{"rgba64 translucent", image.NewRGBA64(rect), ColorRGBA, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, bpp := Describe(tt.img)
			if ct != tt.ct || bpp != tt.bpp {
				t.Errorf("Describe: got %s/%d, want %s/%d", ct, bpp, tt.ct, tt.bpp)
			}
		})
	}
}

func grayRamp(n int, reversed bool) color.Palette {
	p := make(color.Palette, n)
	for i := range p {
		v := uint8(i * 255 / (n - 1))
		if reversed {
			v = 255 - v
		}
		p[i] = color.Gray{Y: v}
	}
	return p
}

func TestPadPalette(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 3, 1), color.Palette{color.White, color.RGBA{255, 0, 0, 255}})
	img.Pix = []uint8{0, 1, 1}
	if got := PadPalette(img); got != image.Image(img) {
		t.Error("in-range image should pass through unchanged")
	}

	img.Pix[2] = 5
	got, ok := PadPalette(img).(*image.Paletted)
	if !ok {
		t.Fatal("padded image should stay palette-indexed")
	}
	if len(got.Palette) != 6 {
		t.Fatalf("palette: got %d entries, want 6", len(got.Palette))
	}
	if r, g, b, a := got.At(2, 0).RGBA(); r|g|b != 0 || a != 0xffff {
		t.Errorf("padded entry: got (%d,%d,%d,%d), want opaque black", r, g, b, a)
	}
	if got.ColorIndexAt(1, 0) != 1 || got.Palette[1] != img.Palette[1] {
		t.Error("existing entries changed")
	}
	if len(img.Palette) != 2 {
		t.Error("PadPalette modified its input")
	}

	rgb := createSolidImage(1, 1, color.RGBA{A: 255})
	if PadPalette(rgb) != image.Image(rgb) {
		t.Error("true color input should pass through unchanged")
	}
}

func TestForceRGB24_PaletteIndexPastTable(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.RGBA{0, 0, 255, 255}})
	img.Pix = []uint8{0, 9}

	out, _ := forceRGB24(img, nil)
	if r, g, b, _ := out.At(0, 0).RGBA(); r != 0 || g != 0 || b>>8 != 255 {
		t.Errorf("(0, 0): got (%d,%d,%d), want blue", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := out.At(1, 0).RGBA(); r|g|b != 0 {
		t.Errorf("(1, 0): got (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}

	var buf bytes.Buffer
	if err := encodeJPEG(&buf, img, nil, JPEGQualitySuperb); err != nil {
		t.Errorf("encodeJPEG failed: %v", err)
	}
}
