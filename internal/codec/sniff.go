package codec

import "bytes"

// HeaderSize is the number of leading bytes every sniffer needs at most.
const HeaderSize = 16

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	gif87a        = []byte("GIF87a")
	gif89a        = []byte("GIF89a")
	bmpSignature  = []byte("BM")
	tiffLittle    = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffBig       = []byte{0x4D, 0x4D, 0x00, 0x2A}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
)

func sniffPNG(h []byte) bool {
	return bytes.HasPrefix(h, pngSignature)
}

func sniffJPEG(h []byte) bool {
	return bytes.HasPrefix(h, jpegSignature)
}

func sniffGIF(h []byte) bool {
	return bytes.HasPrefix(h, gif87a) || bytes.HasPrefix(h, gif89a)
}

// BMP only has a two byte magic, so the reserved header fields are checked as well.
func sniffBMP(h []byte) bool {
	if !bytes.HasPrefix(h, bmpSignature) || len(h) < 10 {
		return false
	}
	return h[6] == 0 && h[7] == 0 && h[8] == 0 && h[9] == 0
}

func sniffTIFF(h []byte) bool {
	return bytes.HasPrefix(h, tiffLittle) || bytes.HasPrefix(h, tiffBig)
}

// WebP: RIFF <size> WEBP
func sniffWebP(h []byte) bool {
	return len(h) >= 12 && bytes.HasPrefix(h, riffSignature) && bytes.Equal(h[8:12], webpSignature)
}
