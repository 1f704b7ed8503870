package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const bookmarksKey = "bookmarks"

// BookmarkStore is the set of bookmarked manga keyed by slug. The whole
// collection is written back on every change.
type BookmarkStore struct {
	kv  data.KV
	log zerolog.Logger

	mu        sync.RWMutex
	bookmarks []data.Bookmark
	loaded    bool
}

func NewBookmarkStore(kv data.KV, log zerolog.Logger) *BookmarkStore {
	return &BookmarkStore{
		kv:  kv,
		log: log.With().Str("module", "bookmarks").Logger(),
	}
}

// Load reads the persisted collection. Missing or unreadable data leaves the
// store empty; only storage failures are returned.
func (s *BookmarkStore) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, bookmarksKey)
	if err != nil {
		return errors.Wrap(err, "failed to load bookmarks")
	}

	var bookmarks []data.Bookmark
	if ok {
		if err := json.Unmarshal([]byte(raw), &bookmarks); err != nil {
			s.log.Warn().Err(err).Msg("Failed to parse bookmarks, starting empty")
			bookmarks = nil
		}
	}
	bookmarks = dedupe(bookmarks)

	s.mu.Lock()
	s.bookmarks = bookmarks
	s.loaded = true
	s.mu.Unlock()

	s.log.Debug().Int("count", len(bookmarks)).Msg("Loaded bookmarks")
	return nil
}

func (s *BookmarkStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *BookmarkStore) IsBookmarked(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.bookmarks, slug) >= 0
}

// List returns a copy in insertion order.
func (s *BookmarkStore) List() []data.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]data.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

func (s *BookmarkStore) Add(ctx context.Context, b data.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, b)
}

func (s *BookmarkStore) Remove(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, slug)
}

// Toggle removes b if present and adds it otherwise. It reports whether b is
// bookmarked afterwards.
func (s *BookmarkStore) Toggle(ctx context.Context, b data.Bookmark) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.bookmarks, b.Slug) >= 0 {
		return false, s.remove(ctx, b.Slug)
	}
	return true, s.add(ctx, b)
}

func (s *BookmarkStore) add(ctx context.Context, b data.Bookmark) error {
	if b.Slug == "" {
		return errors.New("bookmark slug cannot be empty")
	}
	if indexOf(s.bookmarks, b.Slug) >= 0 {
		return nil
	}

	next := make([]data.Bookmark, len(s.bookmarks), len(s.bookmarks)+1)
	copy(next, s.bookmarks)
	next = append(next, b)
	return s.commit(ctx, next)
}

func (s *BookmarkStore) remove(ctx context.Context, slug string) error {
	if indexOf(s.bookmarks, slug) < 0 {
		return nil
	}

	next := make([]data.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if b.Slug != slug {
			next = append(next, b)
		}
	}
	return s.commit(ctx, next)
}

// commit persists next and only then makes it the current collection.
func (s *BookmarkStore) commit(ctx context.Context, next []data.Bookmark) error {
	if next == nil {
		next = []data.Bookmark{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return errors.Wrap(err, "failed to encode bookmarks")
	}
	if err := s.kv.Set(ctx, bookmarksKey, string(raw)); err != nil {
		return errors.Wrap(err, "failed to save bookmarks")
	}
	s.bookmarks = next
	return nil
}

func indexOf(bookmarks []data.Bookmark, slug string) int {
	for i, b := range bookmarks {
		if b.Slug == slug {
			return i
		}
	}
	return -1
}

func dedupe(bookmarks []data.Bookmark) []data.Bookmark {
	seen := make(map[string]bool, len(bookmarks))
	out := make([]data.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Slug == "" || seen[b.Slug] {
			continue
		}
		seen[b.Slug] = true
		out = append(out, b)
	}
	return out
}

// BookmarkFor builds the bookmark record for a manga at a given chapter.
func BookmarkFor(m *data.Manga, chapter int) data.Bookmark {
	b := data.Bookmark{
		Title:  m.Title,
		Slug:   m.Slug,
		Cover:  m.Cover,
		Rating: m.Rating,
		Genres: m.Genres,
	}
	if chapter > 0 {
		b.Chapter = chapterLabel(chapter)
	}
	return b
}
