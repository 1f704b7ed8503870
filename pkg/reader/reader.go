package reader

import "github.com/kerbaras/mangaverse/pkg/data"

// Reader is the paged reading state of one chapter.
type Reader struct {
	chapter *data.Chapter
	page    int
	zoom    Zoom
	double  bool
}

func New(ch *data.Chapter, opts ...Option) (*Reader, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}

	r := &Reader{
		chapter: ch,
		page:    ResolvePage(s.page, ch.PageCount),
		zoom:    s.zoom,
		double:  s.double,
	}
	// A trailing even page is a valid double-page position; any other even
	// page snaps back to its pair's anchor.
	if r.double && r.page%2 == 0 && r.page < ch.PageCount {
		r.page--
	}
	return r, nil
}

func (r *Reader) Chapter() *data.Chapter { return r.chapter }
func (r *Reader) Page() int              { return r.page }
func (r *Reader) PageCount() int         { return r.chapter.PageCount }
func (r *Reader) Zoom() int              { return int(r.zoom) }
func (r *Reader) DoublePage() bool       { return r.double }

func (r *Reader) NextPage() *Intent {
	n := r.chapter.PageCount
	if r.double {
		switch {
		case r.page+2 <= n:
			if r.page%2 == 0 {
				r.page++
			} else {
				r.page += 2
			}
			return nil
		case r.page < n:
			r.page = n
			return nil
		}
	} else if r.page < n {
		r.page++
		return nil
	}

	if !r.chapter.HasNext() {
		return nil
	}
	return toChapter(r.chapter, r.chapter.NextChapter, 1, Paged)
}

func (r *Reader) PrevPage() *Intent {
	if r.double {
		switch {
		case r.page > 2:
			if r.page%2 == 0 {
				r.page--
			} else {
				r.page -= 2
			}
			return nil
		case r.page > 1:
			r.page = 1
			return nil
		}
	} else if r.page > 1 {
		r.page--
		return nil
	}

	if !r.chapter.HasPrev() {
		return nil
	}
	return toChapter(r.chapter, r.chapter.PrevChapter, LastPage, Paged)
}

func (r *Reader) ToggleDoublePage() {
	r.double = !r.double
	if r.double && r.page%2 == 0 {
		r.page--
	}
}

func (r *Reader) SetZoom(delta int) { r.zoom = r.zoom.Step(delta) }
func (r *Reader) ZoomIn()           { r.SetZoom(ZoomStep) }
func (r *Reader) ZoomOut()          { r.SetZoom(-ZoomStep) }

// JumpToChapter always lands on the first page of chapter n.
func (r *Reader) JumpToChapter(n int) *Intent {
	if n < 1 {
		return nil
	}
	return toChapter(r.chapter, n, 1, Paged)
}

// NextChapter and PrevChapter jump without walking the pages.
func (r *Reader) NextChapter() *Intent {
	if !r.chapter.HasNext() {
		return nil
	}
	return r.JumpToChapter(r.chapter.NextChapter)
}

func (r *Reader) PrevChapter() *Intent {
	if !r.chapter.HasPrev() {
		return nil
	}
	return r.JumpToChapter(r.chapter.PrevChapter)
}

func (r *Reader) SwitchMode() *Intent {
	return toMode(r.chapter, InfiniteScroll)
}

// Spread returns the pages on screen. second is 0 when only one page shows.
func (r *Reader) Spread() (first, second int) {
	if !r.double {
		return r.page, 0
	}
	return pair(r.page, r.chapter.PageCount)
}

// Anchor is the first page on screen; odd whenever double-page mode is on.
func (r *Reader) Anchor() int {
	first, _ := r.Spread()
	return first
}

func pair(page, pageCount int) (first, second int) {
	first = page
	if first%2 == 0 {
		first--
	}
	if first+1 <= pageCount {
		second = first + 1
	}
	return first, second
}
