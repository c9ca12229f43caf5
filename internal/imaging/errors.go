package imaging

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/image-science/internal/codec"
)

var (
	// ErrUnsupportedFormat is returned when a format cannot be determined or
	// lacks the read/write capability the operation needs.
	ErrUnsupportedFormat = errors.New("unknown file format")

	// ErrInvalidArgument is returned for non-positive sizes, malformed crop
	// rectangles and empty in-memory images. No work is done when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUseAfterRelease is returned by any access to a released bitmap.
	ErrUseAfterRelease = errors.New("bitmap has already been freed")

	// ErrDecode and ErrEncode match failures reported by the format codecs.
	ErrDecode = codec.ErrDecode
	ErrEncode = codec.ErrEncode
)

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func unsupportedFormat(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupportedFormat, format, args...)
}
