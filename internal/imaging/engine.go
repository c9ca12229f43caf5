package imaging

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-science/internal/codec"
)

// FileSystem is the byte-level file access the engine needs.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Engine loads images into scoped sessions. It binds a codec registry, a
// filesystem and a logger; the zero configuration uses the built-in formats,
// the OS filesystem and the standard logrus logger.
//
// An Engine holds no mutable state and can be shared between goroutines.
// Sessions it hands out cannot.
type Engine struct {
	registry *codec.Registry
	fs       FileSystem
	log      logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the codec registry.
func WithRegistry(r *codec.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithFileSystem replaces the filesystem used by Load and Save.
func WithFileSystem(fs FileSystem) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLogger replaces the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: codec.Default(),
		fs:       osFS{},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's codec registry.
func (e *Engine) Registry() *codec.Registry {
	return e.registry
}

// Load opens the image at path, corrects its EXIF orientation and runs fn
// with a session owning the result. The buffer is released when fn returns,
// whether it succeeds, fails or panics.
//
// The format is sniffed from the file content and falls back to the file
// extension. An undetermined or unreadable format fails with
// ErrUnsupportedFormat; a codec failure matches ErrDecode.
func (e *Engine) Load(path string, fn func(*Session) error) error {
	data, readErr := e.fs.ReadFile(path)

	format := e.registry.Resolve(path, header(data))
	if format == codec.FormatUnknown || !e.registry.SupportsReading(format) {
		return unsupportedFormat("%s", path)
	}
	if readErr != nil {
		return errors.Wrapf(readErr, "failed to open image")
	}

	buf, err := e.decode(format, data)
	if err != nil {
		e.log.WithFields(logrus.Fields{"path": path, "format": format}).WithError(err).Debug("decode failed")
		return err
	}
	e.log.WithFields(logrus.Fields{"path": path, "format": format}).Debug("image loaded")

	return e.open(buf, FreshLoad{Format: format, SourceBytes: len(data)}, fn)
}

// LoadBytes is Load for an image held in memory. The format is resolved from
// the content only. Empty data fails with ErrInvalidArgument.
func (e *Engine) LoadBytes(data []byte, fn func(*Session) error) error {
	if len(data) == 0 {
		return invalidArgument("unable to open image data")
	}

	format := e.registry.Sniff(header(data))
	if format == codec.FormatUnknown || !e.registry.SupportsReading(format) {
		return unsupportedFormat("image data")
	}

	buf, err := e.decode(format, data)
	if err != nil {
		e.log.WithField("format", format).WithError(err).Debug("decode failed")
		return err
	}

	return e.open(buf, FreshLoad{Format: format, SourceBytes: len(data)}, fn)
}

// decode runs the format's decoder and the orientation correction.
func (e *Engine) decode(format codec.Format, data []byte) (*PixelBuffer, error) {
	entry, _ := e.registry.Lookup(format)
	d, err := entry.Decode(data, entry.DecodeFlags)
	if err != nil {
		return nil, err
	}
	if d.Image == nil || d.Image.Bounds().Empty() {
		return nil, &codec.Error{Op: "decode", Format: format, Err: errors.New("empty image")}
	}

	buf := newPixelBuffer(d.Image, d.ICC, format)
	oriented, err := Orient(buf, d.Orientation)
	if err != nil {
		return nil, err
	}
	if oriented != buf {
		e.log.WithFields(logrus.Fields{"format": format, "orientation": d.Orientation}).Debug("orientation corrected")
		_ = buf.Release()
	}
	return oriented, nil
}

// open wraps buf in a session, runs fn and releases the buffer on the way out.
func (e *Engine) open(buf *PixelBuffer, target LoadTarget, fn func(*Session) error) (err error) {
	s := &Session{buf: buf, target: target, engine: e}
	defer func() {
		if rerr := s.release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(s)
}

// ResolveFormat reports the format of the file at path, or FormatUnknown.
func (e *Engine) ResolveFormat(path string) codec.Format {
	data, _ := e.fs.ReadFile(path)
	return e.registry.Resolve(path, header(data))
}

// ImageType returns the format name of the file at path, or "" when unknown.
func (e *Engine) ImageType(path string) string {
	return string(e.ResolveFormat(path))
}

func header(data []byte) []byte {
	if len(data) > codec.HeaderSize {
		return data[:codec.HeaderSize]
	}
	return data
}

var defaultEngine = NewEngine()

// Load opens path with the default engine. See Engine.Load.
func Load(path string, fn func(*Session) error) error {
	return defaultEngine.Load(path, fn)
}

// LoadBytes opens data with the default engine. See Engine.LoadBytes.
func LoadBytes(data []byte, fn func(*Session) error) error {
	return defaultEngine.LoadBytes(data, fn)
}

// ResolveFormat resolves the format of path with the default engine.
func ResolveFormat(path string) codec.Format {
	return defaultEngine.ResolveFormat(path)
}

// Version reports the underlying codec library version.
func Version() string {
	return codec.Version()
}
