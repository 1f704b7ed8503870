package reader

import (
	"context"

	"github.com/kerbaras/mangaverse/pkg/data"
)

const DefaultThreshold = 0.5

type ChapterFetcher interface {
	GetChapter(ctx context.Context, slug string, number int) (*data.Chapter, error)
}

// Loaded is the outcome of a Load.
type Loaded struct {
	seq     uint64
	Chapter *data.Chapter
	Err     error
}

// Load fetches the next chapter. It is safe to run off the event loop.
type Load func(ctx context.Context) Loaded

// Scroller is the infinite-scroll reading state. It has no page index; every
// page of the chapter is rendered and reaching the end sentinel loads the
// next chapter.
type Scroller struct {
	chapter   *data.Chapter
	fetcher   ChapterFetcher
	zoom      Zoom
	double    bool
	threshold float64

	loading bool
	seq     uint64
	err     error
}

func NewScroller(ch *data.Chapter, fetcher ChapterFetcher, opts ...Option) (*Scroller, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}

	return &Scroller{
		chapter:   ch,
		fetcher:   fetcher,
		zoom:      s.zoom,
		double:    s.double,
		threshold: s.threshold,
	}, nil
}

func (s *Scroller) Chapter() *data.Chapter { return s.chapter }
func (s *Scroller) Zoom() int              { return int(s.zoom) }
func (s *Scroller) DoublePage() bool       { return s.double }
func (s *Scroller) Loading() bool          { return s.loading }
func (s *Scroller) HasNext() bool          { return s.chapter.HasNext() }
func (s *Scroller) HasPrev() bool          { return s.chapter.HasPrev() }

// Err is the last failed fetch; cleared by Retry.
func (s *Scroller) Err() error { return s.err }

func (s *Scroller) ToggleDoublePage() { s.double = !s.double }
func (s *Scroller) SetZoom(delta int) { s.zoom = s.zoom.Step(delta) }
func (s *Scroller) ZoomIn()           { s.SetZoom(ZoomStep) }
func (s *Scroller) ZoomOut()          { s.SetZoom(-ZoomStep) }

// Rows lists the pages in render order, paired when double-page mode is on.
func (s *Scroller) Rows() [][]int {
	n := s.chapter.PageCount
	var rows [][]int
	if !s.double {
		rows = make([][]int, 0, n)
		for p := 1; p <= n; p++ {
			rows = append(rows, []int{p})
		}
		return rows
	}

	rows = make([][]int, 0, (n+1)/2)
	for p := 1; p <= n; p += 2 {
		first, second := pair(p, n)
		if second == 0 {
			rows = append(rows, []int{first})
		} else {
			rows = append(rows, []int{first, second})
		}
	}
	return rows
}

// ReachEnd reports how much of the end sentinel is visible (0..1). It returns
// a Load when the next chapter should be fetched. Repeated calls while a load
// is pending, or after a failure that has not been retried, are ignored.
func (s *Scroller) ReachEnd(visible float64) (Load, bool) {
	if s.loading || s.err != nil || !s.chapter.HasNext() || visible < s.threshold {
		return nil, false
	}
	return s.begin(), true
}

// Retry re-issues the fetch after a failure.
func (s *Scroller) Retry() (Load, bool) {
	if s.err == nil || s.loading {
		return nil, false
	}
	s.err = nil
	return s.begin(), true
}

func (s *Scroller) begin() Load {
	s.loading = true
	s.seq++

	seq := s.seq
	slug, next := s.chapter.MangaSlug, s.chapter.NextChapter
	fetcher := s.fetcher

	return func(ctx context.Context) Loaded {
		ch, err := fetcher.GetChapter(ctx, slug, next)
		if err == nil {
			err = ch.Validate()
		}
		return Loaded{seq: seq, Chapter: ch, Err: err}
	}
}

// Complete consumes a finished Load. A successful fetch yields the chapter
// transition; results from cancelled loads are dropped.
func (s *Scroller) Complete(res Loaded) *Intent {
	if !s.loading || res.seq != s.seq {
		return nil
	}
	s.loading = false

	if res.Err != nil {
		s.err = res.Err
		return nil
	}

	intent := toChapter(s.chapter, s.chapter.NextChapter, 1, InfiniteScroll)
	intent.Prefetched = res.Chapter
	return intent
}

// Cancel abandons a pending load; its result will be ignored.
func (s *Scroller) Cancel() {
	if s.loading {
		s.loading = false
		s.seq++
	}
}

func (s *Scroller) NextChapter() *Intent {
	if !s.chapter.HasNext() {
		return nil
	}
	return toChapter(s.chapter, s.chapter.NextChapter, 1, InfiniteScroll)
}

func (s *Scroller) PrevChapter() *Intent {
	if !s.chapter.HasPrev() {
		return nil
	}
	return toChapter(s.chapter, s.chapter.PrevChapter, 1, InfiniteScroll)
}

func (s *Scroller) JumpToChapter(n int) *Intent {
	if n < 1 {
		return nil
	}
	return toChapter(s.chapter, n, 1, InfiniteScroll)
}

func (s *Scroller) SwitchMode() *Intent {
	return toMode(s.chapter, Paged)
}
