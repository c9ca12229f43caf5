// Package imaging provides the bitmap core of image-science: decoded pixel
// buffers, exact crops, Catmull-Rom resampling, EXIF orientation correction,
// pixel inspection and scoped sessions that guarantee every buffer is
// released.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (left,top) is inclusive and (right,bottom) is exclusive
//
// # Sessions
//
// Images are only reachable inside a callback:
//
//	err := imaging.Load("photo.jpg", func(img *imaging.Session) error {
//	    return img.Thumbnail(100, func(thumb *imaging.Session) error {
//	        _, err := thumb.Save("thumb.png")
//	        return err
//	    })
//	})
//
// Each session owns one PixelBuffer. When its callback returns, normally or
// with an error, the buffer is released and further calls fail with
// ErrUseAfterRelease. Nested sessions are released in reverse order.
//
// # Thread Safety
//
// An Engine and the codec registry it uses are safe for concurrent use.
// Sessions and PixelBuffers are not; each belongs to the goroutine running
// its callback.
//
// # Error Handling
//
// Failures are reported as errors matching one of ErrUnsupportedFormat,
// ErrInvalidArgument, ErrUseAfterRelease, ErrDecode or ErrEncode with
// errors.Is. Two lookups are soft instead: PixelColor returns nil for a
// coordinate that resolves to no color, and Session.Save returns false when
// the encoder or the filesystem fails.
package imaging
