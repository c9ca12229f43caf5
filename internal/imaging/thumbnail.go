package imaging

// Thumbnail opens a child session scaled so the longest edge is size pixels,
// keeping the aspect ratio. Edges that would round down to zero are kept at
// one pixel.
func (s *Session) Thumbnail(size int, fn func(*Session) error) error {
	if size <= 0 {
		return invalidArgument("size <= 0")
	}
	w, h, err := s.dims()
	if err != nil {
		return err
	}

	scale := float64(size) / float64(max(w, h))
	return s.Resize(scaled(w, scale), scaled(h, scale), fn)
}

// CroppedThumbnail crops the longest edge to match the shortest, centered,
// and opens a size x size thumbnail of the square.
func (s *Session) CroppedThumbnail(size int, fn func(*Session) error) error {
	if size <= 0 {
		return invalidArgument("size <= 0")
	}
	w, h, err := s.dims()
	if err != nil {
		return err
	}

	r := squareRect(w, h)
	return s.Crop(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, func(square *Session) error {
		return square.Thumbnail(size, fn)
	})
}

// FitWithin opens a child session no larger than maxWidth x maxHeight. The
// image is only ever shrunk; one that already fits is passed through as an
// exact copy.
func (s *Session) FitWithin(maxWidth, maxHeight int, fn func(*Session) error) error {
	if maxWidth <= 0 || maxHeight <= 0 {
		return invalidArgument("bounds must be positive, got %dx%d", maxWidth, maxHeight)
	}
	w, h, err := s.dims()
	if err != nil {
		return err
	}

	if w <= maxWidth && h <= maxHeight {
		return s.Crop(0, 0, w, h, fn)
	}

	// Scale by whichever edge is the tighter fit.
	nw, nh := maxWidth, max(h*maxWidth/w, 1)
	if w*maxHeight < h*maxWidth {
		nw, nh = max(w*maxHeight/h, 1), maxHeight
	}
	return s.Resize(nw, nh, fn)
}

func (s *Session) dims() (int, int, error) {
	w, err := s.buf.Width()
	if err != nil {
		return 0, 0, err
	}
	h, _ := s.buf.Height()
	return w, h, nil
}

func scaled(n int, scale float64) int {
	return max(int(float64(n)*scale), 1)
}
