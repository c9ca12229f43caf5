package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDecode is matched by every error a decoder returns.
	ErrDecode = errors.New("codec: decode failed")

	// ErrEncode is matched by every error an encoder returns.
	ErrEncode = errors.New("codec: encode failed")
)

// Error carries the codec's own diagnostic together with the format name.
type Error struct {
	Op     string // "decode" or "encode"
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec exception for type %s: %s: %v", e.Format, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrDecode / ErrEncode by operation.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrDecode:
		return e.Op == "decode"
	case ErrEncode:
		return e.Op == "encode"
	}
	return false
}

func decodeError(f Format, err error) error {
	return &Error{Op: "decode", Format: f, Err: err}
}

func encodeError(f Format, err error) error {
	return &Error{Op: "encode", Format: f, Err: err}
}
