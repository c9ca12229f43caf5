package imaging

import (
	"bytes"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-science/internal/codec"
)

// LoadTarget records where a session's image came from. It is either a
// FreshLoad or a DerivedFrom.
type LoadTarget interface {
	format() codec.Format
}

// FreshLoad is the target of a session opened by Load or LoadBytes.
type FreshLoad struct {
	Format      codec.Format
	SourceBytes int // size of the encoded input
}

func (t FreshLoad) format() codec.Format { return t.Format }

// DerivedFrom is the target of a session produced by Crop, Resize or one of
// the thumbnail operations.
type DerivedFrom struct {
	ParentFormat codec.Format
}

func (t DerivedFrom) format() codec.Format { return t.ParentFormat }

// Session owns exactly one PixelBuffer for the duration of a callback.
//
// Sessions are handed out by Engine.Load, Engine.LoadBytes and the derived
// operations below. The buffer is released as soon as the callback returns;
// a Session kept past that point fails every call with ErrUseAfterRelease.
// A Session must not be used from more than one goroutine.
type Session struct {
	buf    *PixelBuffer
	target LoadTarget
	engine *Engine
}

// Target reports how the session's image was obtained.
func (s *Session) Target() LoadTarget {
	return s.target
}

// Format returns the session's format tag: the decoded format for a load, the
// parent's tag for derived images.
func (s *Session) Format() codec.Format {
	return s.target.format()
}

// Pixels returns the session's buffer. It is released with the session.
func (s *Session) Pixels() *PixelBuffer {
	return s.buf
}

func (s *Session) Width() (int, error)           { return s.buf.Width() }
func (s *Session) Height() (int, error)          { return s.buf.Height() }
func (s *Session) BitDepth() (int, error)        { return s.buf.BitDepth() }
func (s *Session) ColorType() (ColorType, error) { return s.buf.ColorType() }

// Colorspace names the session's color layout, e.g. "RGB" or "Indexed".
func (s *Session) Colorspace() (string, error) {
	ct, err := s.buf.ColorType()
	if err != nil {
		return "", err
	}
	depth, _ := s.buf.BitDepth()
	return Colorspace(ct, depth), nil
}

// PixelColor returns the color at (x, y). See the package-level PixelColor.
func (s *Session) PixelColor(x, y int) (*RGBColor, error) {
	return PixelColor(s.buf, x, y)
}

// SampleColor returns the color at (x, y) as hex, RGB and HSL.
func (s *Session) SampleColor(x, y int) (*ColorResult, error) {
	return SampleColor(s.buf, x, y)
}

// Crop opens a child session on the region [left, right) x [top, bottom).
func (s *Session) Crop(left, top, right, bottom int, fn func(*Session) error) error {
	out, err := Crop(s.buf, left, top, right, bottom)
	if err != nil {
		return err
	}
	return s.child(out, fn)
}

// Resize opens a child session on a width x height Catmull-Rom resample.
func (s *Session) Resize(width, height int, fn func(*Session) error) error {
	out, err := Resize(s.buf, width, height)
	if err != nil {
		return err
	}
	return s.child(out, fn)
}

// child wraps a derived buffer in a nested session. The profile is kept only
// when the parent's format can carry one.
func (s *Session) child(buf *PixelBuffer, fn func(*Session) error) error {
	parent := s.Format()
	if !s.engine.registry.SupportsICC(parent) {
		buf.icc = nil
	}
	return s.engine.open(buf, DerivedFrom{ParentFormat: parent}, fn)
}

// release ends the session.
func (s *Session) release() error {
	return s.buf.Release()
}

// Save encodes the image to path. The format comes from the extension of
// path, or from the session's format tag when the extension is not known.
//
// A format that cannot be written fails with ErrUnsupportedFormat. Encoder
// and filesystem failures are not errors: they are logged and Save returns
// false.
func (s *Session) Save(path string) (bool, error) {
	if err := s.buf.check(); err != nil {
		return false, err
	}

	format := s.engine.registry.FromFilename(path)
	if format == codec.FormatUnknown {
		format = s.Format()
	}
	if !s.engine.registry.SupportsWriting(format) {
		return false, unsupportedFormat("cannot write %s", path)
	}

	log := s.engine.log.WithFields(logrus.Fields{"path": path, "format": format, "op": "save"})

	data, err := s.encode(format)
	if err != nil {
		log.WithError(err).Warn("encode failed")
		return false, nil
	}
	if err := s.engine.fs.WriteFile(path, data, 0o644); err != nil {
		log.WithError(err).Warn("write failed")
		return false, nil
	}

	log.WithField("bytes", len(data)).Debug("image saved")
	return true, nil
}

// Encode returns the image encoded in the format registered for ext, given
// with or without the leading dot. Unlike Save, encoder failures are returned.
func (s *Session) Encode(ext string) ([]byte, error) {
	if err := s.buf.check(); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	format := s.engine.registry.FromFilename(ext)
	if !s.engine.registry.SupportsWriting(format) {
		return nil, unsupportedFormat("cannot write %s", ext)
	}
	return s.encode(format)
}

// encode runs the format's pre-encode hook on a private view of the buffer,
// then the encoder. Palette indices past the table are written as black.
func (s *Session) encode(format codec.Format) ([]byte, error) {
	entry, _ := s.engine.registry.Lookup(format)

	img, icc := codec.PadPalette(s.buf.img), s.buf.icc
	if entry.Normalize != nil {
		img, icc = entry.Normalize(img, icc)
	}
	if !entry.ICCProfiles {
		icc = nil
	}

	var out bytes.Buffer
	if err := entry.Encode(&out, img, icc, entry.EncodeFlags); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
