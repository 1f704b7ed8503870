package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var ErrLoginRequired = errors.New("login required")

// MangaController wires a source to the persisted stores. Screens and CLI
// commands share one instance.
type MangaController struct {
	source    sources.Provider
	store     data.Store
	bookmarks *BookmarkStore
	session   *SessionStore
	log       zerolog.Logger
}

func NewMangaController(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*MangaController, error) {
	store, err := data.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path, log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage")
	}

	source, err := sources.New(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return NewMangaControllerWith(source, store, log), nil
}

func NewMangaControllerWith(source sources.Provider, store data.Store, log zerolog.Logger) *MangaController {
	return &MangaController{
		source:    source,
		store:     store,
		bookmarks: NewBookmarkStore(store, log),
		session:   NewSessionStore(store, log),
		log:       log.With().Str("module", "controller").Logger(),
	}
}

// Load reads both stores from persistence.
func (c *MangaController) Load(ctx context.Context) error {
	if err := c.session.Load(ctx); err != nil {
		return err
	}
	return c.bookmarks.Load(ctx)
}

func (c *MangaController) Source() sources.Provider  { return c.source }
func (c *MangaController) Bookmarks() *BookmarkStore { return c.bookmarks }
func (c *MangaController) Session() *SessionStore    { return c.session }
func (c *MangaController) Logger() zerolog.Logger    { return c.log }

func (c *MangaController) SearchManga(ctx context.Context, query string) ([]*data.Manga, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	return c.source.Search(ctx, query)
}

func (c *MangaController) GetManga(ctx context.Context, slug string) (*data.Manga, error) {
	if slug == "" {
		return nil, errors.New("manga slug cannot be empty")
	}
	return c.source.GetManga(ctx, slug)
}

// FindMangaByName resolves a slug, an exact title, or the best search hit.
func (c *MangaController) FindMangaByName(ctx context.Context, name string) (*data.Manga, error) {
	if m, err := c.source.GetManga(ctx, name); err == nil {
		return m, nil
	} else if errors.Cause(err) != sources.ErrNotFound {
		return nil, err
	}

	results, err := c.SearchManga(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.Wrapf(sources.ErrNotFound, "no manga matching %q", name)
	}
	for _, m := range results {
		if strings.EqualFold(m.Title, name) {
			return m, nil
		}
	}
	return results[0], nil
}

func (c *MangaController) GetChapter(ctx context.Context, slug string, number int) (*data.Chapter, error) {
	ch, err := c.source.GetChapter(ctx, slug, number)
	if err != nil {
		return nil, err
	}
	if err := ch.Validate(); err != nil {
		return nil, errors.Wrapf(err, "source returned a bad chapter for %s", slug)
	}
	return ch, nil
}

// ToggleBookmark bookmarks slug for the logged in user, labelled with chapter
// when chapter > 0.
func (c *MangaController) ToggleBookmark(ctx context.Context, slug string, chapter int) (bool, error) {
	if !c.session.LoggedIn() {
		return false, ErrLoginRequired
	}
	m, err := c.GetManga(ctx, slug)
	if err != nil {
		return false, err
	}
	if chapter == 0 {
		chapter = m.ChapterCount
	}
	return c.bookmarks.Toggle(ctx, BookmarkFor(m, chapter))
}

func (c *MangaController) Close() error {
	return c.store.Close()
}

func chapterLabel(n int) string {
	return fmt.Sprintf("Chapter %d", n)
}
