package reader

type settings struct {
	page      int
	zoom      Zoom
	double    bool
	threshold float64
}

func defaults() settings {
	return settings{page: 1, zoom: DefaultZoom, threshold: DefaultThreshold}
}

type Option func(*settings)

// WithPage opens the chapter on page p (or LastPage). Out of range values are ignored.
func WithPage(p int) Option {
	return func(s *settings) { s.page = p }
}

func WithZoom(z int) Option {
	return func(s *settings) { s.zoom = clampZoom(z) }
}

func WithDoublePage(on bool) Option {
	return func(s *settings) { s.double = on }
}

// WithThreshold sets how much of the end sentinel must be visible before the
// scroller loads the next chapter.
func WithThreshold(f float64) Option {
	return func(s *settings) {
		if f > 0 && f <= 1 {
			s.threshold = f
		}
	}
}
