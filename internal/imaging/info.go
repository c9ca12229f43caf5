package imaging

import (
	"github.com/ironsheep/image-science/internal/codec"
)

// ImageInfo contains metadata about a loaded image.
//
// This struct provides essential information about an image without requiring
// the caller to analyze the image data directly.
type ImageInfo struct {
	// Width is the image width in pixels, after orientation correction.
	Width int `json:"width"`

	// Height is the image height in pixels, after orientation correction.
	Height int `json:"height"`

	// Format is the detected format name, e.g. "PNG" or "JPEG". Detection
	// is based on file contents and falls back to the extension.
	Format string `json:"format"`

	// Colorspace names the color layout: "RGB", "RGBA", "Indexed", ...
	Colorspace string `json:"colorspace"`

	// ColorType is the numeric color type.
	ColorType ColorType `json:"color_type"`

	// BitDepth is the number of bits per pixel.
	BitDepth int `json:"bit_depth"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// HasICCProfile reports an embedded color profile.
	HasICCProfile bool `json:"has_icc_profile"`

	// FileSizeBytes is the size of the encoded input in bytes. Zero for
	// derived images.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info summarizes the session's image.
func (s *Session) Info() (*ImageInfo, error) {
	ct, err := s.buf.ColorType()
	if err != nil {
		return nil, err
	}
	w, h, _ := s.dims()
	depth, _ := s.buf.BitDepth()

	colorDepth := "8-bit"
	if codec.IsDeep(s.buf.img) {
		colorDepth = "16-bit"
	}

	info := &ImageInfo{
		Width:         w,
		Height:        h,
		Format:        string(s.Format()),
		Colorspace:    Colorspace(ct, depth),
		ColorType:     ct,
		BitDepth:      depth,
		ColorDepth:    colorDepth,
		HasAlpha:      ct == ColorRGBA,
		HasICCProfile: len(s.buf.icc) > 0,
	}
	if t, ok := s.target.(FreshLoad); ok {
		info.FileSizeBytes = int64(t.SourceBytes)
	}
	return info, nil
}

// LoadImageInfo loads the image at path and returns its summary.
func (e *Engine) LoadImageInfo(path string) (*ImageInfo, error) {
	var info *ImageInfo
	err := e.Load(path, func(s *Session) error {
		var err error
		info, err = s.Info()
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}
