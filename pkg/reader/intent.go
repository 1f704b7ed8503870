// Package reader holds the page-navigation state of an open chapter.
//
// Nothing here talks to a terminal or a network. Commands mutate local state
// and, when a chapter edge is crossed, return an *Intent describing where the
// caller should navigate instead.
package reader

import (
	"strings"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
)

type Mode int

const (
	Paged Mode = iota
	InfiniteScroll
)

func (m Mode) String() string {
	if m == InfiniteScroll {
		return "infinite"
	}
	return "paged"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "paged", "":
		return Paged, nil
	case "infinite", "scroll":
		return InfiniteScroll, nil
	}
	return Paged, errors.Errorf("unknown reader mode %q", s)
}

// LastPage asks whoever opens the chapter to start on its final page.
const LastPage = -1

type IntentKind int

const (
	NavigateToChapter IntentKind = iota
	NavigateToReaderMode
)

// Intent is a navigation request handed to the router.
type Intent struct {
	Kind      IntentKind
	MangaSlug string
	Chapter   int
	Page      int // 1-based, or LastPage
	Mode      Mode

	// Prefetched is set when the target chapter was already loaded.
	Prefetched *data.Chapter
}

func toChapter(ch *data.Chapter, number, page int, mode Mode) *Intent {
	return &Intent{
		Kind:      NavigateToChapter,
		MangaSlug: ch.MangaSlug,
		Chapter:   number,
		Page:      page,
		Mode:      mode,
	}
}

func toMode(ch *data.Chapter, mode Mode) *Intent {
	return &Intent{
		Kind:      NavigateToReaderMode,
		MangaSlug: ch.MangaSlug,
		Chapter:   ch.Number,
		Page:      1,
		Mode:      mode,
	}
}

// ResolvePage maps a requested page onto [1, pageCount]. LastPage resolves to
// pageCount; anything else out of range falls back to the first page.
func ResolvePage(requested, pageCount int) int {
	if requested == LastPage {
		return pageCount
	}
	if requested < 1 || requested > pageCount {
		return 1
	}
	return requested
}
